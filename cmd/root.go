package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "promptslim",
	Short: "Shrink prompts and error logs before they hit your token budget",
	Long: `Promptslim is a CLI tool for reducing the token footprint of LLM
prompts and error logs without losing the information that matters.

Conversational text is stripped of filler and restructured; pasted error
logs are detected automatically and condensed to unique errors, capped
stack traces, and their context.

Examples:
  promptslim optimize prompt.txt
  cat build.log | promptslim optimize
  promptslim optimize --stats --format json *.txt
  promptslim watch draft.md`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.promptslim.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("color", "auto", "when to use colored output (auto, always, never)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".promptslim")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PROMPTSLIM")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("color", "auto")
	viper.SetDefault("engine.min_savings", 5)
	viper.SetDefault("engine.stack_frame_limit", 3)
	viper.SetDefault("engine.classify_threshold", 2)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
