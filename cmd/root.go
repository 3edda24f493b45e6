package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhubert/toolazy/internal/clipboard"
	"github.com/zhubert/toolazy/internal/config"
	"github.com/zhubert/toolazy/internal/logger"
	"github.com/zhubert/toolazy/internal/notification"
	"github.com/zhubert/toolazy/internal/ui"
	"github.com/zhubert/toolazy/internal/watcher"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	logFilePath           string
	prefixFlag            string
	dirFlag               string
	intervalFlag          time.Duration
	watchOnce             bool
	notifyFlag            bool
	version, commit, date string
)

// newSource is replaced in tests so no system clipboard is needed.
var newSource = func() clipboard.Source {
	return clipboard.NewSystem()
}

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "toolazy",
	Short: "Save every screenshot you copy as a numbered test-case image",
	Long: `toolazy watches the clipboard and writes each new image to disk as
TC_<prefix>_<NN>.png, using the lowest number not already taken.

Both copied images and copied image files (.png, .jpg, .jpeg, .bmp) are
picked up. Copying the same image again is ignored until the clipboard
holds something else.

Examples:
  toolazy                          # Watch with the configured prefix
  toolazy -p FEATURE_LOGIN         # TC_FEATURE_LOGIN_01.png, ...
  toolazy -d ~/shots --notify      # Save elsewhere, with desktop notifications
  toolazy --once                   # Save the current clipboard image and exit`,
	RunE:          runWatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", logger.DefaultLogPath, "Log file")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Log errors only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.toolazy/config.json)")
	rootCmd.PersistentFlags().StringVarP(&prefixFlag, "prefix", "p", config.DefaultPrefix, "Test-case series in TC_<prefix>_<NN>.png")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Directory to save images in (default: the executable's directory; required with go run)")

	rootCmd.Flags().DurationVar(&intervalFlag, "interval", time.Duration(config.DefaultIntervalMS)*time.Millisecond, "Clipboard poll interval")
	rootCmd.Flags().BoolVar(&watchOnce, "once", false, "Check the clipboard once and exit")
	rootCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Send a desktop notification for every saved image")
}

func initConfig() {
	if err := logger.Init(logFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if quietMode {
		logger.SetLevel(logger.LevelError)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command. Errors are reported on stderr.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	err := rootCmd.Execute()
	if err != nil {
		ui.NewConsole(os.Stderr).Error(err)
	}
	return err
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("toolazy %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("toolazy %s\n", version)
}

// loadConfig loads the config file and applies any flags the user set
// explicitly. Flags win over the file, the file wins over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.SetPrefix(prefixFlag)
	}
	if flags.Changed("dir") {
		cfg.SetSaveDir(dirFlag)
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.SetInterval(intervalFlag)
	}
	if flags.Lookup("notify") != nil && flags.Changed("notify") {
		cfg.SetNotificationsEnabled(notifyFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, err := cfg.ResolveSaveDir()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	console := ui.NewConsole(cmd.OutOrStdout())
	notify := cfg.GetNotificationsEnabled()

	w := watcher.New(newSource(), dir, cfg.GetPrefix(),
		watcher.WithPollInterval(cfg.GetInterval()),
		watcher.WithOnce(watchOnce),
		watcher.WithOnSave(func(s watcher.Saved) {
			console.Saved(s.Name)
			if notify {
				// Best effort; failures are logged by the notification package
				_ = notification.ImageSaved(s.Name)
			}
		}),
	)

	console.Banner(dir, cfg.GetPrefix(), cfg.GetInterval())
	if config.InTempDir(dir) {
		console.TempDirWarning(dir)
	}
	if debugMode && !quietMode {
		console.DebugLog(logger.Path())
	}

	// Set up signal handling
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal %v, shutting down", sig)
			cancel()
		case <-done:
			return
		}
		// On second signal, force exit
		select {
		case sig := <-sigCh:
			logger.Warn("received second signal %v, force exiting", sig)
			os.Exit(1)
		case <-done:
		}
	}()

	if err := w.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil {
		console.Stopped()
	}
	return nil
}
