// Package config provides configuration types and helpers for promptslim.
package config

import "strings"

// Config holds the application-wide configuration.
type Config struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	Color   string `mapstructure:"color"`

	Engine EngineConfig `mapstructure:"engine"`
}

// EngineConfig holds the optimizer tuning knobs.
type EngineConfig struct {
	// MinSavings is the minimum shrink percentage a rewrite must achieve
	// to replace the original text.
	MinSavings int `mapstructure:"min_savings"`

	// StackFrameLimit caps stack-frame lines kept per error in log mode.
	StackFrameLimit int `mapstructure:"stack_frame_limit"`

	// ClassifyThreshold is the number of distinct log signatures required
	// to treat input as a log.
	ClassifyThreshold int `mapstructure:"classify_threshold"`
}

// Mode says which branch of the pipeline handled an input.
type Mode string

const (
	ModePrompt Mode = "prompt"
	ModeLog    Mode = "log"
)

// ParseMode converts a string to a Mode, defaulting to prompt.
func ParseMode(s string) Mode {
	if strings.EqualFold(s, string(ModeLog)) {
		return ModeLog
	}
	return ModePrompt
}
