package cmd

import (
	"fmt"

	"github.com/promptslim/promptslim/internal/classify"
	"github.com/promptslim/promptslim/internal/config"
	"github.com/promptslim/promptslim/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] [file ...]",
	Short: "Detect whether inputs are prompts or error logs",
	Long: `Classify each input as conversational prompt text or an error log.
Detection counts distinct error-log signatures (stack frames, tracebacks,
severity-tagged lines); inputs at or above the threshold are logs.

Examples:
  promptslim classify build.log
  cat paste.txt | promptslim classify
  promptslim classify --format json *.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// classification is the JSON form of a classify result.
type classification struct {
	Source     string      `json:"source,omitempty"`
	Mode       config.Mode `json:"mode"`
	Signatures []string    `json:"signatures"`
	Matches    int         `json:"matches"`
	Threshold  int         `json:"threshold"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	threshold := viper.GetInt("engine.classify_threshold")
	if threshold < 1 {
		threshold = classify.DefaultThreshold
	}

	results := make([]classification, 0, len(inputs))
	for _, in := range inputs {
		names := classify.MatchNames(in.text)
		mode := config.ModePrompt
		if len(names) >= threshold {
			mode = config.ModeLog
		}
		results = append(results, classification{
			Source:     in.source,
			Mode:       mode,
			Signatures: names,
			Matches:    len(names),
			Threshold:  threshold,
		})
	}

	format := output.ParseFormat(viper.GetString("format"))
	if format == output.FormatJSON {
		writer := output.New(cmd.OutOrStdout(), format)
		return writer.WriteJSON(results)
	}

	for _, r := range results {
		if r.Source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", r.Source, r.Mode)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.Mode)
	}
	return nil
}
