package config

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Mode
	}{
		{name: "prompt", input: "prompt", want: ModePrompt},
		{name: "log", input: "log", want: ModeLog},
		{name: "log uppercase", input: "LOG", want: ModeLog},
		{name: "unknown defaults to prompt", input: "whatever", want: ModePrompt},
		{name: "empty defaults to prompt", input: "", want: ModePrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMode(tt.input); got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
