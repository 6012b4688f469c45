package rewrite

import "regexp"

// Conversational intent tags. Log mode has its own vocabulary (always
// "debug"); these are only the prompt-side tags.
const (
	IntentFix       = "fix"
	IntentExplain   = "explain"
	IntentImplement = "implement"
	IntentOptimize  = "optimize"
	IntentGeneral   = "general"
)

// intentBucket pairs a tag with its keyword set. Buckets are evaluated in
// order and the first match wins, so "fix this slow query" is a fix, not
// an optimize.
type intentBucket struct {
	tag string
	re  *regexp.Regexp
}

var intentBuckets = []intentBucket{
	{IntentFix, regexp.MustCompile(`(?i)\b(?:fix|bug|broken|crash(?:es|ing)?|fail(?:s|ing|ed)?|(?:isn'?t|not|stopped) working|throws?|debug)\b`)},
	{IntentExplain, regexp.MustCompile(`(?i)\b(?:explain|understand|what (?:is|are|does)|how does|why (?:is|does|do)|difference between|meaning of)\b`)},
	{IntentImplement, regexp.MustCompile(`(?i)\b(?:implement|build|create|add|make|write|develop|integrate|set ?up)\b`)},
	{IntentOptimize, regexp.MustCompile(`(?i)\b(?:optimi[sz]e|improve|speed up|faster|slow|performance|refactor|clean ?up|reduce|shrink)\b`)},
}

// DetectIntent classifies a prompt into one of the conversational intent
// tags, falling back to "general".
func DetectIntent(text string) string {
	for _, b := range intentBuckets {
		if b.re.MatchString(text) {
			return b.tag
		}
	}
	return IntentGeneral
}
