package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/promptslim/promptslim/internal/config"
	"github.com/promptslim/promptslim/internal/engine"
	"github.com/promptslim/promptslim/internal/output"
	"github.com/promptslim/promptslim/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file> [file ...]",
	Short: "Re-optimize files as they change",
	Long: `Watch one or more files and re-run the optimizer whenever they are
written, printing a savings summary line for each run. Useful while
iterating on a prompt draft or watching a growing log.

Examples:
  promptslim watch draft.md
  promptslim watch --debounce 500ms app.log
  promptslim watch --no-color prompt.txt notes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "quiet period after a write before re-optimizing")
	watchCmd.Flags().Int("min-savings", 0, "minimum shrink percent to keep a rewrite (default from config)")
	watchCmd.Flags().Int("max-frames", 0, "stack frames kept per error in log mode (default from config)")
	watchCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")
	noColor, _ := cmd.Flags().GetBool("no-color")

	// Validate files exist up front
	for _, path := range args {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file does not exist: %s", path)
		}
	}

	eng, err := engineFromFlags(cmd)
	if err != nil {
		return err
	}

	colorMode := output.ParseColorMode(viper.GetString("color"))
	if noColor {
		colorMode = output.ColorNever
	}

	writer := output.New(os.Stdout, output.FormatText)
	outputFunc := func(path string, r engine.Result) error {
		mode := config.ModePrompt
		if r.Intent == engine.IntentDebug {
			mode = config.ModeLog
		}
		return writer.WriteColoredReport(output.Report{
			Source: path,
			Mode:   mode,
			Result: r,
		}, colorMode)
	}

	watcher := watch.New(watch.Options{
		Paths:      args,
		Debounce:   debounce,
		Engine:     eng,
		OutputFunc: outputFunc,
	})

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		// Give it a moment to clean up
		select {
		case <-errChan:
		case <-time.After(time.Second):
		}
		return nil
	case err := <-errChan:
		return err
	}
}
