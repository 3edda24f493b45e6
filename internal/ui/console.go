// Package ui renders toolazy's human-readable console output. Nothing written
// here is meant to be parsed.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zhubert/toolazy/internal/numbering"
)

// Console writes styled status lines.
type Console struct {
	out io.Writer
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Banner announces the watcher and where it saves.
func (c *Console) Banner(dir, prefix string, interval time.Duration) {
	fmt.Fprintln(c.out, TitleStyle.Render("🚀 Screenshot Watcher Started."))
	fmt.Fprintln(c.out, LabelStyle.Render("Saving files to:")+" "+ValueStyle.Render(dir))
	fmt.Fprintln(c.out, LabelStyle.Render("Files will be named:")+" "+
		ValueStyle.Render(fmt.Sprintf("%s, %s, etc.", numbering.FileName(prefix, 1), numbering.FileName(prefix, 2))))
	fmt.Fprintln(c.out, LabelStyle.Render("Polling every:")+" "+ValueStyle.Render(interval.String()))
	fmt.Fprintln(c.out, HintStyle.Render("Press Ctrl+C to stop."))
}

// TempDirWarning points out that dir is removed by the system, as happens
// to the executable's directory under go run.
func (c *Console) TempDirWarning(dir string) {
	fmt.Fprintln(c.out, WarningStyle.Render("⚠ "+dir+" is a temporary directory; use --dir to keep the images."))
}

// DebugLog shows where debug output goes.
func (c *Console) DebugLog(path string) {
	fmt.Fprintln(c.out, LabelStyle.Render("Debug log:")+" "+ValueStyle.Render(path))
}

// Saved confirms a written file.
func (c *Console) Saved(filename string) {
	fmt.Fprintln(c.out, SuccessStyle.Render("✅ Saved: "+filename))
}

// Stopped is printed on interrupt.
func (c *Console) Stopped() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, WarningStyle.Render("🛑 Watcher stopped. Goodbye!"))
}

// Error reports the error that ended the watcher.
func (c *Console) Error(err error) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, ErrorStyle.Render("An error occurred: "+err.Error()))
}

// NextName prints the file name the next save would use, followed by the
// numbers already taken.
func (c *Console) NextName(filename string, used []int) {
	fmt.Fprintln(c.out, LabelStyle.Render("Next file:")+" "+ValueStyle.Render(filename))
	if len(used) == 0 {
		fmt.Fprintln(c.out, HintStyle.Render("No existing files."))
		return
	}
	parts := make([]string, len(used))
	for i, n := range used {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	fmt.Fprintln(c.out, LabelStyle.Render("In use:")+" "+ValueStyle.Render(strings.Join(parts, ", ")))
}
