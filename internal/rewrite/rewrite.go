// Package rewrite compacts conversational developer prompts.
//
// The pipeline is a fixed sequence of total, side-effect-free stages:
//
//  1. Normalize whitespace
//  2. Extract code spans to opaque placeholders
//  3. Strip fluff (greetings, hedging, emotional filler, sign-offs)
//  4. Condense verbose constructions into terse labels
//  5. Deduplicate repeated lines
//  6. Extract tech-stack/requirement/constraint metadata (from the
//     original text, so earlier stages cannot eat it)
//  7. Detect intent
//  8. Restore code placeholders
//  9. Reassemble a structured prompt
//
// The caller decides whether the rewrite shrank the input enough to keep;
// this package always returns its best attempt.
package rewrite

import "strings"

// Minimum trimmed length for a line to participate in deduplication.
// Shorter lines (list bullets, "yes", braces) are kept unconditionally.
// Chosen empirically, not load-bearing.
const dedupMinLen = 10

// Output is the result of one rewrite pass.
type Output struct {
	Text         string
	Intent       string
	Stack        []string
	Requirements []string
	Constraints  []string
}

// Rewrite runs the full pipeline over a conversational prompt.
func Rewrite(text string) Output {
	original := text

	body := normalize(text)

	vault := &codeVault{}
	body = vault.extract(body)

	for _, re := range fluffPatterns {
		body = re.ReplaceAllString(body, "")
	}

	for _, rule := range condenserRules {
		body = rule.re.ReplaceAllString(body, rule.repl)
	}

	body = dedupLines(body)

	md := extractMetadata(original)
	intent := DetectIntent(original)

	body = vault.restore(body)

	return Output{
		Text:         assemble(intent, body, md),
		Intent:       intent,
		Stack:        md.Stack,
		Requirements: md.Requirements,
		Constraints:  md.Constraints,
	}
}

// normalize collapses CRLF to LF, tabs to two spaces, runs of spaces to
// one, and runs of blank lines to a single blank line, then trims.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "  ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// dedupLines drops a line when its trimmed, lower-cased form has already
// been seen. Lines shorter than dedupMinLen always survive.
func dedupLines(s string) string {
	seen := make(map[string]struct{})
	var kept []string

	for _, line := range strings.Split(s, "\n") {
		key := strings.ToLower(strings.TrimSpace(line))
		if len(key) < dedupMinLen {
			kept = append(kept, line)
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// assemble emits the intent header, cleaned body, and metadata blocks,
// then runs a final normalize pass over the whole thing.
func assemble(intent, body string, md Metadata) string {
	var sb strings.Builder

	sb.WriteString("Intent: ")
	sb.WriteString(intent)
	sb.WriteString("\n\n")
	sb.WriteString(body)

	if len(md.Stack) > 0 {
		sb.WriteString("\n\nStack: ")
		sb.WriteString(strings.Join(md.Stack, ", "))
	}
	if len(md.Requirements) > 0 {
		sb.WriteString("\n\nRequirements:")
		for _, r := range md.Requirements {
			sb.WriteString("\n- ")
			sb.WriteString(r)
		}
	}
	if len(md.Constraints) > 0 {
		sb.WriteString("\n\nConstraints:")
		for _, c := range md.Constraints {
			sb.WriteString("\n- ")
			sb.WriteString(c)
		}
	}

	return normalize(sb.String())
}
