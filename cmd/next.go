package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zhubert/toolazy/internal/numbering"
	"github.com/zhubert/toolazy/internal/ui"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the file name the next saved image will get",
	Long: `Scans the save directory and prints the next free TC_<prefix>_<NN>.png
name along with the numbers already in use. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, err := cfg.ResolveSaveDir()
	if err != nil {
		return err
	}

	prefix := cfg.GetPrefix()
	used, err := numbering.Existing(dir, prefix)
	if err != nil {
		return err
	}
	n, err := numbering.Next(dir, prefix)
	if err != nil {
		return err
	}

	ui.NewConsole(cmd.OutOrStdout()).NextName(numbering.FileName(prefix, n), used)
	return nil
}
