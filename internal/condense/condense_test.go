package condense

import (
	"strings"
	"testing"
)

func condense(t *testing.T, text string) string {
	t.Helper()
	return New().Condense(text)
}

func TestNoErrorsReturnsInputUnchanged(t *testing.T) {
	in := "just some ordinary text\nnothing log-like here"
	if got := condense(t, in); got != in {
		t.Errorf("Condense() = %q, want input unchanged", got)
	}
}

func TestRepeatedTracebackCollapsesToOne(t *testing.T) {
	block := "Traceback (most recent call last):\n" +
		"  File \"app.py\", line 10, in main\n" +
		"    check(x)\n" +
		"ValueError: x is None\n"
	in := block + block + block

	got := condense(t, in)

	if !strings.HasPrefix(got, Header) {
		t.Fatalf("missing instruction header:\n%s", got)
	}
	if n := strings.Count(got, "ValueError: x is None"); n != 1 {
		t.Errorf("ValueError appears %d times, want 1:\n%s", n, got)
	}
	if n := strings.Count(got, "Traceback"); n != 1 {
		t.Errorf("Traceback appears %d times, want 1:\n%s", n, got)
	}
}

func TestRepeatedBareExceptionCollapsesToOne(t *testing.T) {
	in := "ValueError: x is None\nsome detail\nValueError: x is None\nValueError: x is None\n"

	got := condense(t, in)

	if n := strings.Count(got, "ValueError: x is None"); n != 1 {
		t.Errorf("ValueError appears %d times, want 1:\n%s", n, got)
	}
}

func TestSameErrorAtDifferentCallSitesDedups(t *testing.T) {
	in := "TypeError: cannot read x (app.js:10:2)\n" +
		"TypeError: cannot read x (other.js:44:9)\n"

	got := condense(t, in)

	if n := strings.Count(got, "TypeError"); n != 1 {
		t.Errorf("TypeError appears %d times, want 1 (file refs must not split the signature):\n%s", n, got)
	}
}

func TestStackFrameCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("TypeError: Cannot read properties of undefined\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("    at fn" + string(rune('a'+i)) + " (/app/src/handler.js:1:1)\n")
	}

	got := condense(t, sb.String())

	if n := strings.Count(got, "at fn"); n > DefaultStackFrameLimit {
		t.Errorf("kept %d frames, cap is %d:\n%s", n, DefaultStackFrameLimit, got)
	}
	if !strings.Contains(got, "at fna") {
		t.Errorf("first frame missing:\n%s", got)
	}
}

func TestStackFrameCapOverride(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("TypeError: boom\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("    at fn (/app/a.js:1:1)\n")
	}

	got := New(WithStackFrameLimit(1)).Condense(sb.String())

	if n := strings.Count(got, "at fn"); n != 1 {
		t.Errorf("kept %d frames, want 1:\n%s", n, got)
	}
}

func TestInternalFramesExcluded(t *testing.T) {
	in := "TypeError: boom\n" +
		"    at run (/app/node_modules/jest-runner/build/run.js:5:3)\n" +
		"    at node:internal/process/task_queues:96:5\n" +
		"    at handler (/app/src/handler.js:12:8)\n"

	got := condense(t, in)

	if strings.Contains(got, "node_modules") || strings.Contains(got, "node:internal") {
		t.Errorf("library-internal frames kept:\n%s", got)
	}
	if !strings.Contains(got, "/app/src/handler.js") {
		t.Errorf("application frame dropped:\n%s", got)
	}
}

func TestNoiseLinesDropped(t *testing.T) {
	in := "INFO:     Application startup complete.\n" +
		"=============================\n" +
		"(Use `node --trace-warnings ...` to show where the warning was created)\n" +
		"ValueError: x is None\n"

	got := condense(t, in)

	if strings.Contains(got, "INFO") || strings.Contains(got, "=====") || strings.Contains(got, "trace-warnings") {
		t.Errorf("noise survived:\n%s", got)
	}
	if !strings.Contains(got, "ValueError") {
		t.Errorf("error lost:\n%s", got)
	}
}

func TestGoPanicStaysOneSection(t *testing.T) {
	in := "panic: runtime error: index out of range [3] with length 2\n" +
		"\n" +
		"goroutine 1 [running]:\n" +
		"main.lookup(...)\n" +
		"\t/app/main.go:14\n" +
		"main.main()\n" +
		"\t/app/main.go:9 +0x1d\n"

	got := condense(t, in)

	if !strings.Contains(got, "panic: runtime error") {
		t.Fatalf("panic line missing:\n%s", got)
	}
	// One section: no blank line between the panic line and its frames.
	body := strings.TrimPrefix(got, Header+"\n\n")
	if strings.Contains(body, "\n\n") {
		t.Errorf("panic split into multiple sections:\n%s", got)
	}
	if !strings.Contains(got, "main.go:14") {
		t.Errorf("frame lost:\n%s", got)
	}
}

func TestCausedByChainBecomesOwnBlock(t *testing.T) {
	in := "org.springframework.context.ApplicationContextException: Unable to start web server\n" +
		"\tat org.springframework.boot.SpringApplication.refresh(SpringApplication.java:732)\n" +
		"Caused by: org.postgresql.util.PSQLException: Connection refused\n" +
		"\tat com.example.db.Pool.connect(Pool.java:55)\n"

	got := condense(t, in)

	if !strings.Contains(got, "ApplicationContextException") {
		t.Errorf("outer exception lost:\n%s", got)
	}
	if !strings.Contains(got, "Caused by: org.postgresql.util.PSQLException") {
		t.Errorf("cause lost:\n%s", got)
	}
	if !strings.Contains(got, "com.example.db.Pool.connect") {
		t.Errorf("application frame of the cause lost:\n%s", got)
	}
	if strings.Contains(got, "SpringApplication.refresh") {
		t.Errorf("framework-internal frame kept:\n%s", got)
	}
}

func TestFailureBannerCapturedWithHeader(t *testing.T) {
	in := "***************************\n" +
		"APPLICATION FAILED TO START\n" +
		"***************************\n" +
		"\n" +
		"Description:\n" +
		"\n" +
		"Web server failed to start. Port 8080 was already in use.\n" +
		"\n" +
		"Action:\n" +
		"\n" +
		"Identify and stop the process that's listening on port 8080.\n"

	got := condense(t, in)

	if !strings.Contains(got, "Startup failure:") {
		t.Fatalf("banner header missing:\n%s", got)
	}
	if !strings.Contains(got, "Port 8080 was already in use.") {
		t.Errorf("banner body lost:\n%s", got)
	}
	if strings.Contains(got, "****") {
		t.Errorf("star rules kept inside banner:\n%s", got)
	}
}

func TestCodeContextCaptured(t *testing.T) {
	in := "SyntaxError: Unexpected token\n" +
		"  14 | const x = {\n" +
		"  15 | return x\n" +
		"     | ^\n"

	got := condense(t, in)

	if !strings.Contains(got, "15 | return x") {
		t.Errorf("code context lost:\n%s", got)
	}
	if !strings.Contains(got, "^") {
		t.Errorf("caret pointer lost:\n%s", got)
	}
}

func TestStructuredOneLinersDedup(t *testing.T) {
	in := `ts=2024-05-01T10:00:00Z level=error msg="query failed" error="dial tcp 10.0.0.5:5432: connect: connection refused"` + "\n" +
		`ts=2024-05-01T10:00:01Z level=error msg="query failed" error="dial tcp 10.0.0.5:5432: connect: connection refused"` + "\n" +
		"Back-off restarting failed container app in pod web-6f7d\n" +
		"Back-off restarting failed container app in pod web-6f7d\n"

	got := condense(t, in)

	if n := strings.Count(got, "connection refused"); n != 1 {
		t.Errorf("error field line appears %d times, want 1:\n%s", n, got)
	}
	if n := strings.Count(got, "Back-off restarting"); n != 1 {
		t.Errorf("k8s reason appears %d times, want 1:\n%s", n, got)
	}
}

func TestContextLinesAttachWithBound(t *testing.T) {
	in := "psycopg2.OperationalError: connection refused\n" +
		"[SQL: SELECT * FROM items]\n" +
		"[parameters: {}]\n" +
		"ctx three\n" +
		"ctx four\n" +
		"ctx five\n" +
		"ctx six\n"

	got := condense(t, in)

	if !strings.Contains(got, "[SQL: SELECT * FROM items]") {
		t.Errorf("SQL context not attached:\n%s", got)
	}
	if strings.Contains(got, "ctx five") || strings.Contains(got, "ctx six") {
		t.Errorf("context bound exceeded:\n%s", got)
	}
}
