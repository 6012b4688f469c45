// Package classify decides whether a blob of developer text is error/log
// output or a conversational prompt.
//
// Detection counts how many distinct log signatures match anywhere in the
// text. A single incidental match (the word "Error" in prose, one pasted
// stack line) must not flip a prompt into log mode, so classification
// requires at least DefaultThreshold distinct signatures. Real logs
// reliably trigger several.
package classify

import "regexp"

// DefaultThreshold is the minimum number of distinct matching signatures
// required to treat input as a log.
const DefaultThreshold = 2

// Signature is a single log-shape detector. The table is ordered; order
// only matters for reporting, not for the match count.
type Signature struct {
	Name  string
	Regex *regexp.Regexp
}

// Signatures covers the log shapes of the supported ecosystems: JS/Node,
// Python, Go, JVM/Spring, plus test runners and structured app logs.
// The two "at" signatures are mutually exclusive so a single pasted stack
// frame counts once, not twice.
var Signatures = []Signature{
	{"js_stack_frame", regexp.MustCompile(`\bat .+ \(.+:\d+:\d+\)`)},
	{"bare_at_line", regexp.MustCompile(`(?m)^\s*at\s+(?:async\s+)?[\w$.<>\[\]/-]+\s*$`)},
	{"test_failure_banner", regexp.MustCompile(`(?m)^\s*(?:FAIL|✕|✗|●)\s+\S`)},
	{"assertion_failure", regexp.MustCompile(`\b(?:AssertionError|expect\(.+\)\.to|assert(?:Equals|True|False)?\()`)},
	{"module_resolution", regexp.MustCompile(`(?:Cannot find module|Module not found|ModuleNotFoundError|ImportError:)`)},
	{"os_error_code", regexp.MustCompile(`\b(?:ENOENT|EACCES|ECONNREFUSED|ECONNRESET|ETIMEDOUT|EADDRINUSE|EPIPE)\b`)},
	{"timestamped_level", regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}\S*\s+\[?(?:ERROR|WARN(?:ING)?|FATAL|SEVERE)\b`)},
	{"caused_by_chain", regexp.MustCompile(`(?m)^\s*Caused by:`)},
	{"spring_failure_banner", regexp.MustCompile(`APPLICATION FAILED TO START`)},
	{"jvm_exception", regexp.MustCompile(`\b[a-z][\w.]*\.[A-Z]\w*(?:Exception|Error):`)},
	{"python_traceback", regexp.MustCompile(`Traceback \(most recent call last\):`)},
	{"python_frame", regexp.MustCompile(`(?m)^\s*File "[^"]+", line \d+`)},
	{"go_panic", regexp.MustCompile(`(?m)^panic: `)},
	{"goroutine_dump", regexp.MustCompile(`(?m)^goroutine \d+ \[\w+\]:`)},
	{"js_error_type", regexp.MustCompile(`\b(?:TypeError|ReferenceError|SyntaxError|RangeError|EvalError)\s*:`)},
	{"unhandled_rejection", regexp.MustCompile(`Unhandled(?:PromiseRejection| promise rejection)`)},
	{"exception_in_thread", regexp.MustCompile(`Exception in thread "[^"]+"`)},
	{"npm_error", regexp.MustCompile(`(?m)^npm ERR!`)},
	{"generic_error_line", regexp.MustCompile(`(?m)^\s*Error:\s+\S`)},
	{"process_exit", regexp.MustCompile(`(?:exited with code [1-9]\d*|command failed with exit code [1-9]\d*|segmentation fault)`)},
}

// MatchCount returns how many distinct signatures match anywhere in text.
func MatchCount(text string) int {
	count := 0
	for _, sig := range Signatures {
		if sig.Regex.MatchString(text) {
			count++
		}
	}
	return count
}

// MatchNames returns the names of the signatures that match, in table order.
func MatchNames(text string) []string {
	var names []string
	for _, sig := range Signatures {
		if sig.Regex.MatchString(text) {
			names = append(names, sig.Name)
		}
	}
	return names
}

// IsErrorLog reports whether text looks like error/log output using
// DefaultThreshold.
func IsErrorLog(text string) bool {
	return IsErrorLogThreshold(text, DefaultThreshold)
}

// IsErrorLogThreshold is IsErrorLog with a caller-chosen threshold.
// Thresholds below one are treated as one.
func IsErrorLogThreshold(text string, threshold int) bool {
	if threshold < 1 {
		threshold = 1
	}

	// Count lazily so huge logs stop scanning once the threshold is met.
	count := 0
	for _, sig := range Signatures {
		if sig.Regex.MatchString(text) {
			count++
			if count >= threshold {
				return true
			}
		}
	}
	return false
}
