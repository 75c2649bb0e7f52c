package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func withProgress(t *testing.T, enabled bool) {
	t.Helper()
	originalNoProgress, originalJSON, originalJSONL := noProgress, jsonOutput, jsonlOutput
	noProgress, jsonOutput, jsonlOutput = !enabled, false, false
	t.Cleanup(func() {
		noProgress, jsonOutput, jsonlOutput = originalNoProgress, originalJSON, originalJSONL
	})
	for _, key := range []string{"TALK_NO_PROGRESS", "NO_PROGRESS"} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestProgressDoneWithSummary(t *testing.T) {
	withProgress(t, true)

	var buf bytes.Buffer
	step := startProgress(&buf, "Importing templates")
	step.Done("5 added, 1 skipped")

	got := buf.String()
	if !strings.HasPrefix(got, "Importing templates... 5 added, 1 skipped (") {
		t.Fatalf("unexpected progress line %q", got)
	}
	if !strings.HasSuffix(got, ")\n") {
		t.Fatalf("expected duration suffix, got %q", got)
	}
}

func TestProgressFail(t *testing.T) {
	withProgress(t, true)

	var buf bytes.Buffer
	startProgress(&buf, "Writing out").Fail(errors.New("disk full"))
	if got := buf.String(); got != "Writing out... failed: disk full\n" {
		t.Fatalf("unexpected progress line %q", got)
	}
}

func TestProgressDisabled(t *testing.T) {
	withProgress(t, false)

	var buf bytes.Buffer
	step := startProgress(&buf, "Importing templates")
	if step != nil {
		t.Fatal("expected nil step when progress is disabled")
	}
	step.Done("ignored")
	step.Fail(errors.New("ignored"))
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestProgressDisabledByEnv(t *testing.T) {
	withProgress(t, true)
	t.Setenv("TALK_NO_PROGRESS", "1")

	if progressEnabled() {
		t.Fatal("expected TALK_NO_PROGRESS to disable progress")
	}
}
