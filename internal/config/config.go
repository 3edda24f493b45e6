package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/zhubert/toolazy/internal/errors"
)

const (
	// DefaultPrefix is the test-case series used when none is configured.
	// "AFE" yields TC_AFE_01.png, TC_AFE_02.png, ...
	DefaultPrefix = "AFE"

	// DefaultIntervalMS is the clipboard poll interval.
	DefaultIntervalMS = 1000
)

// Config holds the application configuration
type Config struct {
	Prefix               string `json:"prefix"`                          // Series name in TC_<prefix>_<NN>.png
	SaveDir              string `json:"save_dir,omitempty"`              // Empty means the executable's directory
	IntervalMS           int    `json:"interval_ms"`                     // Poll interval in milliseconds
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification on every save

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".toolazy"), nil
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Default returns a config populated with defaults that will be saved to path.
func Default(path string) *Config {
	return &Config{
		Prefix:     DefaultPrefix,
		IntervalMS: DefaultIntervalMS,
		filePath:   path,
	}
}

// Load reads the config from the default location, or returns defaults if it
// doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, or returns defaults if it doesn't exist
func LoadFrom(path string) (*Config, error) {
	cfg := Default(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Fill in fields omitted from the file before validating
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized restores defaults for fields left empty in the file.
// Not thread-safe; only called from LoadFrom before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.IntervalMS == 0 {
		c.IntervalMS = DefaultIntervalMS
	}
}

// Validate checks that the config can produce valid file names and a usable
// poll interval.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ValidatePrefix(c.Prefix); err != nil {
		return err
	}
	if c.IntervalMS <= 0 {
		return errors.ConfigInvalid("interval_ms must be positive")
	}
	return nil
}

// ValidatePrefix rejects prefixes that cannot be embedded in a file name.
func ValidatePrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return errors.ConfigInvalid("prefix must not be empty")
	}
	if strings.ContainsAny(prefix, `/\`) || strings.ContainsRune(prefix, os.PathSeparator) {
		return errors.ConfigInvalid("prefix must not contain path separators: " + prefix)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is loaded from and saved to
func (c *Config) Path() string {
	return c.filePath
}

// GetPrefix returns the file name prefix
func (c *Config) GetPrefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Prefix
}

// SetPrefix sets the file name prefix
func (c *Config) SetPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Prefix = prefix
}

// GetInterval returns the poll interval
func (c *Config) GetInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// SetInterval sets the poll interval, truncated to milliseconds
func (c *Config) SetInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.IntervalMS = int(d / time.Millisecond)
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// SetSaveDir sets the directory images are written to
func (c *Config) SetSaveDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SaveDir = dir
}

// ResolveSaveDir returns the absolute directory images are written to. When
// no directory is configured this is the directory holding the executable.
func (c *Config) ResolveSaveDir() (string, error) {
	c.mu.RLock()
	dir := c.SaveDir
	c.mu.RUnlock()

	if dir != "" {
		return filepath.Abs(dir)
	}
	return executableDir()
}

// InTempDir reports whether dir lies inside the system temporary directory.
func InTempDir(dir string) bool {
	tmp := os.TempDir()
	if resolved, err := filepath.EvalSymlinks(tmp); err == nil {
		tmp = resolved
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	rel, err := filepath.Rel(tmp, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

var executablePath = os.Executable

func executableDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", errors.E(errors.Op("config.ResolveSaveDir"), errors.KindNotFound, "cannot locate executable", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
