package rewrite

import "regexp"

// Fluff patterns strip greetings, hedging, emotional filler, help-begging
// and sign-offs. The table is ordered and every pattern is applied, so
// overlapping phrasings ("please help, I'm so stuck, thanks in advance")
// are all removed in one pass over the table.
var fluffPatterns = []*regexp.Regexp{
	// Greetings at the start of a line.
	regexp.MustCompile(`(?im)^(?:hi|hey|hello|good (?:morning|afternoon|evening))(?:\s+(?:there|everyone|all|guys|folks))?[!,. ]*`),

	// Hedging.
	regexp.MustCompile(`(?i)\b(?:i think|i believe|i guess|i feel like|i suppose|if i'?m honest)\b,?\s*`),
	regexp.MustCompile(`(?i)\b(?:basically|honestly|actually|literally|obviously|to be honest|frankly)\b,?\s*`),
	regexp.MustCompile(`(?i)\b(?:kind of|sort of|a little bit|a bit|pretty much|more or less)\s+`),

	// Emotional filler.
	regexp.MustCompile(`(?i)i'?m (?:so|really|very|super|getting) (?:frustrated|confused|stuck|lost|annoyed|desperate)[^.!?\n]*[.!?]?\s*`),
	regexp.MustCompile(`(?i)i(?:'ve| have) been (?:trying|struggling|stuck|at this|working on this)[^.!?\n]*?for (?:hours|days|weeks|ages|a while)[^.!?\n]*[.!?]?\s*`),
	regexp.MustCompile(`(?i)(?:this is|it'?s) driving me (?:crazy|insane|nuts)[.!?]*\s*`),

	// Help-begging.
	regexp.MustCompile(`(?i)(?:please|pls|plz)?\s*(?:can|could|would) (?:you|someone|anyone)(?: please)? help(?: me)?(?: out)?(?: with this)?[?.! ]*`),
	regexp.MustCompile(`(?i)\bplease help(?: me)?(?: out)?(?: with this)?[?.! ]*`),
	regexp.MustCompile(`(?i)\bany help (?:would be|is) (?:greatly |much |really )?appreciated[.! ]*`),
	regexp.MustCompile(`(?i)\bi'?d (?:really )?appreciate (?:any|some|your) help[^.!?\n]*[.!?]?\s*`),

	// Sign-offs.
	regexp.MustCompile(`(?i)\bthanks?(?: (?:in advance|so much|a lot|a ton|very much))?[.! ]*$`),
	regexp.MustCompile(`(?i)\bthank you(?: (?:in advance|so much|very much))?[.! ]*$`),
	regexp.MustCompile(`(?i)\bsorry (?:for|if|about)[^.!?\n]*[.!?]?\s*`),
}

// phrase matches sentence content while letting dotted names (Next.js,
// app.py) through: a period only continues the phrase when a word
// character follows it immediately.
const phrasePat = `(?:[^\n.!?]|\.\w)+`

// condenserRule rewrites one verbose construction into a terse label.
type condenserRule struct {
	re   *regexp.Regexp
	repl string
}

// Condenser rules are template-level rewrites of verbose phrasing. Order
// matters: later rules assume earlier ones already fired (the build/goal
// forms consume their whole sentence before the shorter "it should" forms
// get a chance to chew on the remainder).
var condenserRules = []condenserRule{
	{regexp.MustCompile(`(?i)i\s*(?:want|would like|need)\s+to\s+(?:build|create|make)\s+(?:a|an)?\s*(` + phrasePat + `)[.!?]?`), "Build: $1"},
	{regexp.MustCompile(`(?i)i(?:'m| am)\s+(?:trying|attempting)\s+to\s+(` + phrasePat + `)[.!?]?`), "Goal: $1"},
	{regexp.MustCompile(`(?i)i(?:'m| am)\s+getting\s+(?:an?\s+)?(?:error|exception)\s*(?:that says|saying|:)?\s*([^\n]+)`), "Error: $1"},
	{regexp.MustCompile(`(?i)\bthe (?:problem|issue) is(?: that)?\s+(` + phrasePat + `)[.!?]?`), "Problem: $1"},
	{regexp.MustCompile(`(?i)\bit (?:should|needs? to|must|has to) use\s+(` + phrasePat + `)[.!?]?`), "Use: $1"},
	{regexp.MustCompile(`(?i)\bit (?:should|must) (?:be able to|support)\s+(` + phrasePat + `)[.!?]?`), "Support: $1"},
	{regexp.MustCompile(`(?i)\bhow (?:do|can|would) i\s+(` + phrasePat + `)\??`), "How to: $1"},
	{regexp.MustCompile(`(?i)\bwhat(?:'s| is) the best way to\s+(` + phrasePat + `)[?.]?`), "How to: $1"},
}

// Normalization patterns shared by the first and last pipeline stages.
var (
	spaceRunRe = regexp.MustCompile(`[^\S\n]{2,}`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)
