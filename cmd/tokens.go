package cmd

import (
	"fmt"

	"github.com/promptslim/promptslim/internal/output"
	"github.com/promptslim/promptslim/internal/token"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] [file ...]",
	Short: "Estimate the token count of inputs",
	Long: `Estimate how many LLM tokens each input uses. The estimate is
character-based, with a denser ratio for inputs containing code.

Examples:
  promptslim tokens prompt.txt
  cat draft.md | promptslim tokens
  promptslim tokens --format json *.txt`,
	Args: cobra.ArbitraryArgs,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

// tokenCount is the JSON form of a tokens result.
type tokenCount struct {
	Source string `json:"source,omitempty"`
	Tokens int    `json:"tokens"`
	Chars  int    `json:"chars"`
	Code   bool   `json:"code"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	results := make([]tokenCount, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, tokenCount{
			Source: in.source,
			Tokens: token.Estimate(in.text),
			Chars:  len(in.text),
			Code:   token.ContainsCode(in.text),
		})
	}

	format := output.ParseFormat(viper.GetString("format"))
	if format == output.FormatJSON {
		writer := output.New(cmd.OutOrStdout(), format)
		return writer.WriteJSON(results)
	}

	for _, r := range results {
		if r.Source != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", r.Source, r.Tokens)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.Tokens)
	}
	return nil
}
