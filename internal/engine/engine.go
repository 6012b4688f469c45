// Package engine is the public entry point of the optimizer.
//
// It orchestrates classify → rewrite/condense → metrics. The engine is a
// deterministic function of its input string and the fixed rule tables:
// no I/O, no persistence, no state shared between calls. A single Engine
// may be used from any number of goroutines.
package engine

import (
	"strings"

	"github.com/promptslim/promptslim/internal/classify"
	"github.com/promptslim/promptslim/internal/condense"
	"github.com/promptslim/promptslim/internal/rewrite"
	"github.com/promptslim/promptslim/internal/token"
)

// Intent tags an optimization result with what the text is asking for.
// Log mode always yields IntentDebug; conversational mode uses the
// remaining vocabulary.
type Intent string

const (
	IntentFix       Intent = "fix"
	IntentDebug     Intent = "debug"
	IntentExplain   Intent = "explain"
	IntentImplement Intent = "implement"
	IntentOptimize  Intent = "optimize"
	IntentGeneral   Intent = "general"
	IntentCreate    Intent = "create"
)

// Result is the outcome of one Optimize call.
//
// When no transformation shrank the text meaningfully, Optimized equals
// Original and SavingsPercent is zero.
type Result struct {
	Original        string `json:"original"`
	Optimized       string `json:"optimized"`
	OriginalTokens  int    `json:"originalTokens"`
	OptimizedTokens int    `json:"optimizedTokens"`
	SavingsPercent  int    `json:"savingsPercent"`
	Intent          Intent `json:"intent"`
}

// DefaultMinSavingsPercent is the shrink a rewrite must achieve to be
// kept instead of the original text.
const DefaultMinSavingsPercent = 5

// Engine runs the optimization pipeline.
type Engine struct {
	classifyThreshold int
	stackFrameLimit   int
	minSavingsPct     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifyThreshold sets how many distinct log signatures must match
// before input is treated as a log. Default is classify.DefaultThreshold.
func WithClassifyThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.classifyThreshold = n
		}
	}
}

// WithStackFrameLimit sets the per-error stack frame cap used in log
// mode. Default is condense.DefaultStackFrameLimit.
func WithStackFrameLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.stackFrameLimit = n
		}
	}
}

// WithMinSavings sets the minimum shrink percentage a transformation must
// achieve; anything under it falls back to the original text.
func WithMinSavings(pct int) Option {
	return func(e *Engine) {
		if pct >= 0 && pct <= 100 {
			e.minSavingsPct = pct
		}
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		classifyThreshold: classify.DefaultThreshold,
		stackFrameLimit:   condense.DefaultStackFrameLimit,
		minSavingsPct:     DefaultMinSavingsPercent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify reports whether text is error/log output.
func (e *Engine) Classify(text string) bool {
	return classify.IsErrorLogThreshold(text, e.classifyThreshold)
}

// EstimateTokens approximates the token count of text.
func (e *Engine) EstimateTokens(text string) int {
	return token.Estimate(text)
}

// Optimize runs the full pipeline: classify the input, rewrite or
// condense it, and compute token metrics. It never fails: degenerate
// results fall back to the original text with zero savings.
func (e *Engine) Optimize(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Original: text, Optimized: text, Intent: IntentGeneral}
	}

	var optimized string
	var intent Intent

	if e.Classify(text) {
		optimized = condense.New(condense.WithStackFrameLimit(e.stackFrameLimit)).Condense(text)
		intent = IntentDebug
	} else {
		out := rewrite.Rewrite(text)
		optimized = out.Text
		intent = Intent(out.Intent)
	}

	// Single fallback rule: keep the rewrite only when it shrank the
	// text enough and produced something non-degenerate.
	if strings.TrimSpace(optimized) == "" || !shrankEnough(len(text), len(optimized), e.minSavingsPct) {
		optimized = text
	}

	originalTokens := token.Estimate(text)
	optimizedTokens := token.Estimate(optimized)

	savings := 0
	if optimized != text && originalTokens > 0 && optimizedTokens < originalTokens {
		savings = (originalTokens - optimizedTokens) * 100 / originalTokens
	}
	if savings == 0 {
		optimized = text
		optimizedTokens = originalTokens
	}

	return Result{
		Original:        text,
		Optimized:       optimized,
		OriginalTokens:  originalTokens,
		OptimizedTokens: optimizedTokens,
		SavingsPercent:  savings,
		Intent:          intent,
	}
}

// shrankEnough reports whether newLen is at least minPct percent smaller
// than oldLen.
func shrankEnough(oldLen, newLen, minPct int) bool {
	return newLen*100 <= oldLen*(100-minPct)
}

// Optimize is a convenience for one-off optimization with defaults.
func Optimize(text string) Result {
	return New().Optimize(text)
}

// Classify is a convenience using the default threshold.
func Classify(text string) bool {
	return New().Classify(text)
}

// EstimateTokens is a convenience wrapper around the token heuristic.
func EstimateTokens(text string) int {
	return token.Estimate(text)
}
