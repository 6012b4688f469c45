package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/promptslim/promptslim/internal/config"
	"github.com/promptslim/promptslim/internal/engine"
	"github.com/promptslim/promptslim/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [flags] [file ...]",
	Short: "Optimize prompts and error logs for token efficiency",
	Long: `Reduce the token footprint of text inputs. Conversational prompts
are stripped of filler and restructured; inputs detected as error logs
are condensed to unique errors with capped stack traces.

Reads from stdin when no files are given (or when the file is "-").

Examples:
  promptslim optimize prompt.txt
  cat build.log | promptslim optimize
  promptslim optimize --stats drafts/*.md
  promptslim optimize --min-savings 10 --max-frames 5 crash.log`,
	Args: cobra.ArbitraryArgs,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().Bool("stats", false, "print a savings summary to stderr")
	optimizeCmd.Flags().Int("min-savings", 0, "minimum shrink percent to keep a rewrite (default from config)")
	optimizeCmd.Flags().Int("max-frames", 0, "stack frames kept per error in log mode (default from config)")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	eng, err := engineFromFlags(cmd)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	reports := make([]output.Report, 0, len(inputs))
	for _, in := range inputs {
		mode := config.ModePrompt
		if eng.Classify(in.text) {
			mode = config.ModeLog
		}
		reports = append(reports, output.Report{
			Source: in.source,
			Mode:   mode,
			Result: eng.Optimize(in.text),
		})
	}

	format := output.ParseFormat(viper.GetString("format"))
	writer := output.New(cmd.OutOrStdout(), format)
	if err := writer.WriteReports(reports); err != nil {
		return err
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		writeStats(cmd.ErrOrStderr(), reports)
	}

	return nil
}

// engineFromFlags builds an engine from config defaults with any flag overrides.
func engineFromFlags(cmd *cobra.Command) (*engine.Engine, error) {
	minSavings := viper.GetInt("engine.min_savings")
	if cmd.Flags().Changed("min-savings") {
		minSavings, _ = cmd.Flags().GetInt("min-savings")
	}
	if minSavings < 0 || minSavings > 100 {
		return nil, fmt.Errorf("invalid --min-savings value: %d (must be 0-100)", minSavings)
	}

	maxFrames := viper.GetInt("engine.stack_frame_limit")
	if cmd.Flags().Changed("max-frames") {
		maxFrames, _ = cmd.Flags().GetInt("max-frames")
	}
	if maxFrames < 1 {
		return nil, fmt.Errorf("invalid --max-frames value: %d (must be at least 1)", maxFrames)
	}

	return engine.New(
		engine.WithMinSavings(minSavings),
		engine.WithStackFrameLimit(maxFrames),
		engine.WithClassifyThreshold(viper.GetInt("engine.classify_threshold")),
	), nil
}

type input struct {
	source string
	text   string
}

// readInputs collects input texts from the given files, or stdin when
// no files are named.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []input{{text: string(data)}}, nil
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return nil, err
	}

	inputs := make([]input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		inputs = append(inputs, input{source: file, text: string(data)})
	}
	return inputs, nil
}

// writeStats prints a colored savings summary.
func writeStats(w io.Writer, reports []output.Report) {
	boldColor := color.New(color.Bold)
	dimColor := color.New(color.Faint)

	totalOriginal := 0
	totalOptimized := 0
	for _, r := range reports {
		totalOriginal += r.OriginalTokens
		totalOptimized += r.OptimizedTokens

		label := r.Source
		if label == "" {
			label = "(stdin)"
		}
		fmt.Fprintf(w, "%s %d -> %d tokens (%s, %s)\n",
			boldColor.Sprintf("%s:", label),
			r.OriginalTokens,
			r.OptimizedTokens,
			savingsColor(r.SavingsPercent).Sprintf("%d%% saved", r.SavingsPercent),
			dimColor.Sprint(r.Mode))
	}

	if len(reports) > 1 {
		saved := 0
		if totalOriginal > 0 {
			saved = (totalOriginal - totalOptimized) * 100 / totalOriginal
		}
		fmt.Fprintf(w, "\n%s %d -> %d tokens (%s)\n",
			boldColor.Sprint("Total:"),
			totalOriginal,
			totalOptimized,
			savingsColor(saved).Sprintf("%d%% saved", saved))
	}
}

func savingsColor(percent int) *color.Color {
	switch {
	case percent >= 25:
		return color.New(color.FgGreen)
	case percent > 0:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}
