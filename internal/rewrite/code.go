package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`\n]+`")
)

// codeVault swaps code spans for opaque placeholders so the fluff and
// condenser stages can never mangle code, then restores them verbatim.
// Fenced blocks are extracted before inline spans so a backtick inside a
// fence is not double-captured.
type codeVault struct {
	saved []string
}

func (v *codeVault) extract(text string) string {
	text = fencedBlockRe.ReplaceAllStringFunc(text, v.stash)
	text = inlineCodeRe.ReplaceAllStringFunc(text, v.stash)
	return text
}

func (v *codeVault) stash(code string) string {
	placeholder := fmt.Sprintf("__CODE_SPAN_%d__", len(v.saved))
	v.saved = append(v.saved, code)
	return placeholder
}

func (v *codeVault) restore(text string) string {
	for i, code := range v.saved {
		text = strings.Replace(text, fmt.Sprintf("__CODE_SPAN_%d__", i), code, 1)
	}
	return text
}
