// Package token provides a character-based token count heuristic.
//
// This is not a tokenizer. The estimate exists so that savings percentages
// are comparable between runs and implementations, which requires the exact
// same divisor and rounding everywhere.
package token

import (
	"math"
	"regexp"
	"strings"
)

// Characters per token. Code tokenizes denser than prose, so text that
// contains code spans uses the smaller divisor.
const (
	charsPerTokenProse = 4.0
	charsPerTokenCode  = 3.5
)

// inlineCodeRe matches a backtick-delimited inline code span.
var inlineCodeRe = regexp.MustCompile("`[^`\n]+`")

// Estimate approximates the token count of text.
// Whitespace-only input counts as zero tokens.
func Estimate(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	divisor := charsPerTokenProse
	if ContainsCode(text) {
		divisor = charsPerTokenCode
	}

	return int(math.Ceil(float64(len(text)) / divisor))
}

// ContainsCode reports whether text carries a fenced code block or an
// inline backtick span.
func ContainsCode(text string) bool {
	if strings.Contains(text, "```") {
		return true
	}
	return inlineCodeRe.MatchString(text)
}
