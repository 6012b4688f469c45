package engine

import (
	"strings"
	"testing"
)

func TestOptimizeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t "} {
		got := Optimize(in)
		if got.Optimized != in {
			t.Errorf("Optimized = %q, want input back", got.Optimized)
		}
		if got.OriginalTokens != 0 || got.OptimizedTokens != 0 || got.SavingsPercent != 0 {
			t.Errorf("want all-zero metrics for empty input, got %+v", got)
		}
	}
}

func TestOptimizeFallsBackWhenNothingToStrip(t *testing.T) {
	in := "Add pagination to the users endpoint."
	got := Optimize(in)

	if got.Optimized != in {
		t.Errorf("Optimized = %q, want original back (savings guardrail)", got.Optimized)
	}
	if got.SavingsPercent != 0 {
		t.Errorf("SavingsPercent = %d, want 0", got.SavingsPercent)
	}
	if got.OptimizedTokens != got.OriginalTokens {
		t.Errorf("token counts must match on fallback: %+v", got)
	}
}

func TestOptimizeConversational(t *testing.T) {
	in := "Hey there! I'm so frustrated with this. I've been trying to fix it for hours. " +
		"My React login form crashes on submit and I have no idea why. " +
		"My React login form crashes on submit and I have no idea why. " +
		"Please help me with this, thanks in advance!"
	got := Optimize(in)

	if got.Optimized == in {
		t.Fatalf("expected a rewrite, got original back:\n%s", got.Optimized)
	}
	if got.Intent != IntentFix {
		t.Errorf("Intent = %q, want %q", got.Intent, IntentFix)
	}
	if got.SavingsPercent <= 0 || got.SavingsPercent > 100 {
		t.Errorf("SavingsPercent = %d, want within (0,100]", got.SavingsPercent)
	}
	if got.OptimizedTokens >= got.OriginalTokens {
		t.Errorf("OptimizedTokens = %d, want < %d", got.OptimizedTokens, got.OriginalTokens)
	}
	if strings.Contains(got.Optimized, "frustrated") || strings.Contains(got.Optimized, "thanks in advance") {
		t.Errorf("fluff survived:\n%s", got.Optimized)
	}
}

func TestOptimizeNeverLengthens(t *testing.T) {
	inputs := []string{
		"short",
		"fix my bug",
		"a\nb\nc",
		"Explain the difference between a mutex and a channel.",
		strings.Repeat("the same line of text here\n", 5),
	}
	for _, in := range inputs {
		got := Optimize(in)
		if len(got.Optimized) > len(in) {
			t.Errorf("Optimize(%q) lengthened the input to %q", in, got.Optimized)
		}
		if strings.TrimSpace(in) != "" && strings.TrimSpace(got.Optimized) == "" {
			t.Errorf("Optimize(%q) produced empty output", in)
		}
	}
}

// The FastAPI example: one distinct failure repeated three times through
// retries, interleaved with INFO noise.
func TestOptimizeErrorLogEndToEnd(t *testing.T) {
	traceback := "ERROR:    Exception in ASGI application\n" +
		"Traceback (most recent call last):\n" +
		"  File \"/usr/local/lib/python3.11/site-packages/uvicorn/protocols/http/h11_impl.py\", line 408, in run_asgi\n" +
		"    result = await app(self.scope, self.receive, self.send)\n" +
		"  File \"/app/main.py\", line 25, in read_items\n" +
		"    rows = db.execute(query)\n" +
		"psycopg2.OperationalError: connection to server at \"db\" (172.18.0.3), port 5432 failed: Connection refused\n" +
		"[SQL: SELECT * FROM items]\n"

	in := "INFO:     Application startup complete.\n" +
		"INFO:     172.18.0.1:0 - \"GET /items HTTP/1.1\" 500 Internal Server Error\n" +
		traceback +
		"INFO:     172.18.0.1:0 - \"GET /items HTTP/1.1\" 500 Internal Server Error\n" +
		traceback +
		"INFO:     172.18.0.1:0 - \"GET /items HTTP/1.1\" 500 Internal Server Error\n" +
		traceback

	got := Optimize(in)

	if got.Intent != IntentDebug {
		t.Errorf("Intent = %q, want %q", got.Intent, IntentDebug)
	}
	if !strings.HasPrefix(got.Optimized, "Fix these errors:") {
		t.Fatalf("missing instruction header:\n%s", got.Optimized)
	}
	if n := strings.Count(got.Optimized, "OperationalError"); n != 1 {
		t.Errorf("OperationalError appears %d times, want 1:\n%s", n, got.Optimized)
	}
	if !strings.Contains(got.Optimized, "[SQL: SELECT * FROM items]") {
		t.Errorf("SQL context lost:\n%s", got.Optimized)
	}
	if strings.Contains(got.Optimized, "INFO:") {
		t.Errorf("INFO noise survived:\n%s", got.Optimized)
	}
	if !strings.Contains(got.Optimized, "/app/main.py") {
		t.Errorf("application frame lost:\n%s", got.Optimized)
	}
	if strings.Contains(got.Optimized, "site-packages") {
		t.Errorf("library frame survived:\n%s", got.Optimized)
	}
	if got.OptimizedTokens >= got.OriginalTokens {
		t.Errorf("OptimizedTokens = %d, want < %d", got.OptimizedTokens, got.OriginalTokens)
	}
}

func TestOptionsPlumbing(t *testing.T) {
	// Threshold 1: a single signature now classifies as a log.
	e := New(WithClassifyThreshold(1))
	if !e.Classify("at foo (bar.js:1:1)") {
		t.Error("threshold override not applied")
	}

	// MinSavings 0: any shrink at all is kept.
	in := "honestly fix the login page now please can you help me"
	loose := New(WithMinSavings(0)).Optimize(in)
	if loose.Optimized == in {
		t.Skipf("rewrite did not shrink this input at all")
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(strings.Repeat("a", 400)); got != 100 {
		t.Errorf("EstimateTokens = %d, want 100", got)
	}
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("EstimateTokens(\"\") = %d, want 0", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	e := New()
	in := "Traceback (most recent call last):\n  File \"a.py\", line 1, in m\nValueError: x\n"

	done := make(chan Result, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- e.Optimize(in) }()
	}

	first := <-done
	for i := 1; i < 8; i++ {
		if got := <-done; got != first {
			t.Fatalf("concurrent calls disagree:\n%+v\nvs\n%+v", got, first)
		}
	}
}
