// Package condense shrinks raw error/log output into a short report.
//
// Raw CI and server logs repeat the same root cause dozens of times
// (retries, repeated test runs) and bury it under deep library stack
// frames. The condenser keeps exactly one instance of each distinct
// failure with at most a few frames of context to localize it, and drops
// everything else.
//
// The scan is a line-oriented state machine. Each line is dispatched
// through a fixed priority order: failure banner, noise, source-code
// context, traceback openers, stack frames, error declarations,
// structured one-liners, generic context, ignore.
package condense

import "strings"

// Header prefixes the condensed report whenever any error was found.
const Header = "Fix these errors:"

// DefaultStackFrameLimit caps how many stack-frame lines survive per
// distinct error.
const DefaultStackFrameLimit = 3

// maxContextLines bounds the supporting context (SQL dumps, parameter
// lines) attached to one error. Empirical, not load-bearing.
const maxContextLines = 4

// Context lines outside these length bounds are dropped.
const (
	contextMinLen = 3
	contextMaxLen = 200
)

// sigMaxLen truncates messages inside dedup signatures.
const sigMaxLen = 60

type scanState int

const (
	stateIdle scanState = iota
	stateInError
	stateInStackTrace
	stateInCodeContext
	stateInFailureBanner
)

// Condenser condenses error logs. The zero value is not usable; construct
// with New.
type Condenser struct {
	frameLimit int
}

// Option configures a Condenser.
type Option func(*Condenser)

// WithStackFrameLimit overrides the per-error stack frame cap.
func WithStackFrameLimit(n int) Option {
	return func(c *Condenser) {
		if n > 0 {
			c.frameLimit = n
		}
	}
}

// New creates a Condenser.
func New(opts ...Option) *Condenser {
	c := &Condenser{frameLimit: DefaultStackFrameLimit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Condense scans text line by line and returns the condensed report.
// When no error sections are recognized the input is returned unchanged.
func (c *Condenser) Condense(text string) string {
	s := &scanner{
		frameLimit:    c.frameLimit,
		seenErrors:    make(map[string]struct{}),
		seenOneLiners: make(map[string]struct{}),
	}

	for _, line := range strings.Split(text, "\n") {
		s.scan(line)
	}

	return s.finish(text)
}

// scanner holds the per-call state. A fresh scanner per Condense call
// means no cross-call memory and trivially safe concurrent use.
type scanner struct {
	frameLimit int

	state        scanState
	current      []string
	frameCount   int
	contextCount int

	// tracebackOpen marks a block opened by a traceback/panic line whose
	// closing exception declaration has not arrived yet.
	tracebackOpen bool
	// discarding is set while skipping the remainder of a duplicate error.
	discarding bool

	codeContext []string
	banner      []string

	seenErrors    map[string]struct{}
	seenOneLiners map[string]struct{}

	sections []string
}

func (s *scanner) scan(line string) {
	// Failure banner: capture verbatim until a dated line or separator.
	if s.state == stateInFailureBanner {
		if !bannerEndRe.MatchString(line) {
			if !starRuleRe.MatchString(line) {
				s.banner = append(s.banner, strings.TrimRight(line, " \t"))
			}
			return
		}
		s.state = stateIdle
		// The terminating line falls through to normal dispatch.
	}
	if len(s.banner) == 0 && failureBannerRe.MatchString(line) {
		s.flushError()
		s.banner = append(s.banner, strings.TrimSpace(line))
		s.state = stateInFailureBanner
		return
	}

	// Noise.
	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return
		}
	}

	// Source-code context lines and their caret pointer.
	if codeContextRe.MatchString(line) || (s.state == stateInCodeContext && caretRe.MatchString(line)) {
		if s.state != stateInCodeContext {
			s.flushError()
		}
		s.codeContext = append(s.codeContext, strings.TrimRight(line, " \t"))
		s.state = stateInCodeContext
		return
	}

	// Traceback/panic openers.
	if pyTracebackRe.MatchString(line) || goPanicRe.MatchString(line) || goroutineRe.MatchString(line) {
		// A goroutine dump directly under a panic belongs to that panic.
		if goroutineRe.MatchString(line) && len(s.current) > 0 && goPanicRe.MatchString(s.current[0]) {
			s.current = append(s.current, strings.TrimSpace(line))
			s.frameCount = 0
			s.tracebackOpen = true
			s.state = stateInStackTrace
			return
		}
		s.flushError()
		s.current = []string{strings.TrimSpace(line)}
		s.tracebackOpen = true
		s.discarding = false
		s.state = stateInError
		return
	}

	// Stack frames.
	if isStackFrame(line) {
		if len(s.current) == 0 || s.discarding {
			return
		}
		s.state = stateInStackTrace
		if isInternalFrame(line) {
			return
		}
		if s.frameCount < s.frameLimit {
			s.current = append(s.current, "  "+strings.TrimSpace(line))
			s.frameCount++
		}
		return
	}

	// Exception/error declarations.
	if isErrorDecl(line) {
		sig := errorSignature(line)

		// Closing declaration of an open traceback: same error block.
		if s.tracebackOpen && !s.discarding {
			if s.seen(sig) {
				s.discardCurrent()
				return
			}
			s.markSeen(sig)
			s.current = append(s.current, strings.TrimSpace(line))
			s.tracebackOpen = false
			s.state = stateInError
			return
		}

		if s.seen(sig) {
			s.flushError()
			s.discarding = true
			s.frameCount = s.frameLimit
			s.state = stateInError
			return
		}

		s.flushError()
		s.markSeen(sig)
		s.current = []string{strings.TrimSpace(line)}
		s.discarding = false
		s.state = stateInError
		return
	}

	// Structured one-line error forms, each with its own dedup key.
	if key, ok := oneLinerKey(line); ok {
		if _, dup := s.seenOneLiners[key]; dup {
			return
		}
		s.seenOneLiners[key] = struct{}{}
		s.flushError()
		s.sections = append(s.sections, strings.TrimSpace(line))
		return
	}

	// Generic supporting context for an open error.
	if len(s.current) > 0 && s.state == stateInError && !s.discarding && s.contextCount < maxContextLines {
		t := strings.TrimSpace(line)
		if len(t) >= contextMinLen && len(t) <= contextMaxLen {
			s.current = append(s.current, t)
			s.contextCount++
		}
		return
	}

	// Unmatched and unsuppressed: ignored.
}

// finish flushes whatever is still open and assembles the report.
func (s *scanner) finish(original string) string {
	s.flushError()

	if len(s.codeContext) > 0 {
		s.sections = append(s.sections, strings.Join(s.codeContext, "\n"))
	}
	if len(s.banner) > 0 {
		banner := trimBlankEdges(s.banner)
		if len(banner) > 0 {
			s.sections = append(s.sections, "Startup failure:\n"+strings.Join(banner, "\n"))
		}
	}

	if len(s.sections) == 0 {
		return original
	}

	return Header + "\n\n" + strings.Join(s.sections, "\n\n")
}

func (s *scanner) flushError() {
	if len(s.current) > 0 {
		s.sections = append(s.sections, strings.Join(s.current, "\n"))
	}
	s.current = nil
	s.frameCount = 0
	s.contextCount = 0
	s.tracebackOpen = false
	s.state = stateIdle
}

// discardCurrent throws away the open block of a duplicate error and
// forces the frame cap so its remaining lines are skipped too.
func (s *scanner) discardCurrent() {
	s.current = nil
	s.frameCount = s.frameLimit
	s.contextCount = 0
	s.tracebackOpen = false
	s.discarding = true
	s.state = stateInError
}

func (s *scanner) seen(sig string) bool {
	_, ok := s.seenErrors[sig]
	return ok
}

func (s *scanner) markSeen(sig string) {
	s.seenErrors[sig] = struct{}{}
}

func isStackFrame(line string) bool {
	for _, re := range stackFramePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isInternalFrame(line string) bool {
	for _, re := range internalFramePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isErrorDecl(line string) bool {
	return causedByRe.MatchString(line) ||
		exceptionRe.MatchString(line) ||
		threadExcRe.MatchString(line) ||
		datedLevelRe.MatchString(line) ||
		upperErrRe.MatchString(line)
}

// errorSignature normalizes a declaration line into a dedup key:
// exception type (or log level) plus a truncated message, stripped of
// file/line references and timestamps.
func errorSignature(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "Caused by: ")

	if m := datedLevelRe.FindStringSubmatch(t); m != nil {
		return sigKey(m[2], m[3])
	}
	if m := upperErrRe.FindStringSubmatch(t); m != nil {
		return sigKey(m[1], m[2])
	}

	typ, msg, found := strings.Cut(t, ":")
	if !found {
		return sigKey(t, "")
	}
	return sigKey(typ, msg)
}

func sigKey(typ, msg string) string {
	msg = fileRefRe.ReplaceAllString(msg, "")
	msg = strings.TrimSpace(msg)
	if len(msg) > sigMaxLen {
		msg = msg[:sigMaxLen]
	}
	return strings.ToLower(strings.TrimSpace(typ) + ":" + msg)
}

// oneLinerKey recognizes the structured single-line forms and returns
// their dedup key.
func oneLinerKey(line string) (string, bool) {
	t := strings.TrimSpace(line)

	switch {
	case ormQueryRe.MatchString(t):
		return "orm:" + truncLower(t), true
	case awsErrorRe.MatchString(t):
		return "aws:" + truncLower(awsErrorRe.FindString(t)), true
	case k8sReasonRe.MatchString(t):
		return "k8s:" + strings.ToLower(k8sReasonRe.FindString(t)), true
	case goErrFieldRe.MatchString(t):
		m := goErrFieldRe.FindStringSubmatch(t)
		return "errfield:" + truncLower(m[1]), true
	}
	return "", false
}

func truncLower(s string) string {
	if len(s) > sigMaxLen {
		s = s[:sigMaxLen]
	}
	return strings.ToLower(s)
}

func trimBlankEdges(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
