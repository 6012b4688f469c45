package condense

import "regexp"

// Failure-banner handling. The banner block ("APPLICATION FAILED TO
// START" and its Description/Action body) is captured verbatim until a
// dated log line or a hard separator ends it.
var (
	failureBannerRe = regexp.MustCompile(`APPLICATION FAILED TO START|\*\*\* app failed`)
	bannerEndRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}|^={4,}\s*$`)
	starRuleRe      = regexp.MustCompile(`^\*{4,}\s*$`)
)

// Noise: tool banners, informational boot lines, separators, blank lines.
// Dropped outright, never kept as context.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*$`),
	regexp.MustCompile(`^\s*[-=_*#]{4,}\s*$`),
	regexp.MustCompile(`^\s*INFO[:\s]`),
	regexp.MustCompile(`^\s*(?:DEBUG|TRACE)[:\s]`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}\S*\s+\[?(?:INFO|DEBUG|TRACE)\b`),
	regexp.MustCompile("\\(Use `node --trace-warnings"),
	regexp.MustCompile(`ExperimentalWarning`),
	regexp.MustCompile(`^npm (?:notice|info|timing|verb)\b`),
	regexp.MustCompile(`^\s*> [\w@./-]+@[\w.-]+ (?:dev|start|build|test)\b`),
	regexp.MustCompile(`webpack compiled|Compiled successfully|Watching for file changes`),
	regexp.MustCompile(`Nest application successfully started|Application startup complete`),
	regexp.MustCompile(`^\s*\d{2}:\d{2}:\d{2}\s+(?:INFO|DEBUG|TRACE)\b`),
}

// Source-context capture: esbuild/tsc-style "  14 | const x = y" lines and
// the "^" pointer line under them.
var (
	codeContextRe = regexp.MustCompile(`^\s*\d+\s*\|`)
	caretRe       = regexp.MustCompile(`^[\s|]*\^+\s*$`)
)

// Traceback/panic openers. Each one starts a fresh error block.
var (
	pyTracebackRe = regexp.MustCompile(`^Traceback \(most recent call last\):`)
	goPanicRe     = regexp.MustCompile(`^panic: .+`)
	goroutineRe   = regexp.MustCompile(`^goroutine \d+ \[\w+\]:`)
)

// Stack-frame shapes: JS "at ..." lines, Python File lines, Go frame
// function and file:line pairs.
var stackFramePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*at\s+\S`),
	regexp.MustCompile(`^\s*File "[^"]+", line \d+`),
	regexp.MustCompile(`^\s*[\w./@-]+\.go:\d+(?:\s+\+0x[0-9a-f]+)?\s*$`),
	regexp.MustCompile(`^\S+\.[\w()*]+\(.*\)\s*$`),
}

// Frames from test runners, framework internals, and stdlib paths carry no
// localization value and are never kept.
var internalFramePatterns = []*regexp.Regexp{
	regexp.MustCompile(`node_modules`),
	regexp.MustCompile(`node:internal|\(internal[/\\]`),
	regexp.MustCompile(`(?i)\b(?:jest|mocha|vitest|jasmine|cypress)\b`),
	regexp.MustCompile(`site-packages`),
	regexp.MustCompile(`/usr/(?:local/)?lib/python`),
	regexp.MustCompile(`/usr/local/go/src/|/go/pkg/mod/`),
	regexp.MustCompile(`^\s*(?:runtime|testing)\.|^runtime/`),
	regexp.MustCompile(`java\.base/|sun\.reflect|java\.lang\.reflect`),
	regexp.MustCompile(`org\.springframework\.|org\.apache\.catalina\.|org\.junit\.`),
	regexp.MustCompile(`processTicksAndRejections|processImmediate`),
}

// Exception/error declaration shapes (dispatch category: new error block).
var (
	causedByRe   = regexp.MustCompile(`^\s*Caused by:\s+\S+`)
	exceptionRe  = regexp.MustCompile(`^\s*(?:[\w$]+(?:\.[\w$\[\]]+)*\.)?(?:[A-Z]\w*)?(?:Error|Exception)\b\s*:\s*\S.*`)
	threadExcRe  = regexp.MustCompile(`^Exception in thread "[^"]+"\s+\S+`)
	datedLevelRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}\S*)\s+\[?(ERROR|WARN(?:ING)?|FATAL|SEVERE)\b\s*\]?\s*(.*)$`)
	upperErrRe   = regexp.MustCompile(`^(ERROR|FATAL):\s+(\S.*)$`)
)

// Structured single-line error forms, each deduplicated independently.
var (
	ormQueryRe   = regexp.MustCompile(`^Hibernate:\s+\S.*|^\S*sqlalchemy\.engine\S*\s+(?:SELECT|INSERT|UPDATE|DELETE)\b.*`)
	awsErrorRe   = regexp.MustCompile(`An error occurred \(\w+\) when calling the \w+ operation.*|botocore\.errorfactory\.\w+.*`)
	k8sReasonRe  = regexp.MustCompile(`\b(?:CrashLoopBackOff|ImagePullBackOff|ErrImagePull|OOMKilled|Back-off restarting failed container|Evicted)\b`)
	goErrFieldRe = regexp.MustCompile(`\b(?:error|err)="([^"]+)"`)
)

// fileRefRe strips file/line suffixes out of messages before they become
// dedup signatures, so the "same" error at two call sites still collapses.
var fileRefRe = regexp.MustCompile(`\((?:[\w./\\:-]+:\d+(?::\d+)?)\)|\b[\w./\\-]+\.(?:js|ts|py|go|java|rb|php):\d+(?::\d+)?`)
