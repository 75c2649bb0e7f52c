package cli

import (
	"fmt"
	"io"
	"os"
	"time"
)

// progressStep reports one batch step on stderr, e.g.
// "Importing templates... 5 added, 1 skipped (12ms)".
type progressStep struct {
	out     io.Writer
	started time.Time
}

// startProgress prints label and returns a step, or nil when progress output
// is disabled. All methods are safe on a nil step.
func startProgress(out io.Writer, label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(out, "%s... ", label)
	return &progressStep{out: out, started: time.Now()}
}

// Done finishes the line with an optional summary of what the step did.
func (p *progressStep) Done(summary string) {
	if p == nil {
		return
	}
	if summary == "" {
		summary = "done"
	}
	fmt.Fprintf(p.out, "%s (%s)\n", summary, formatDuration(time.Since(p.started)))
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(p.out, "failed: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "failed")
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress {
		return false
	}
	for _, key := range []string{"TALK_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(key); ok {
			return false
		}
	}
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
