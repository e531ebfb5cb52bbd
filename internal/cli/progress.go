package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var progressOut io.Writer = os.Stderr

// progressMu serializes writes from steps running on different goroutines.
var progressMu sync.Mutex

type progressStep struct {
	label   string
	started time.Time
	enabled bool
	// deferred steps print their label together with the outcome.
	deferred bool
}

func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	progressMu.Lock()
	fmt.Fprintf(progressOut, "%s... ", label)
	progressMu.Unlock()
	return &progressStep{
		label:   label,
		started: time.Now(),
		enabled: true,
	}
}

// startProgressLine starts a step that may run alongside others. Nothing is
// printed until the step finishes, so each step ends up on a line of its own.
func startProgressLine(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	return &progressStep{
		label:    label,
		started:  time.Now(),
		enabled:  true,
		deferred: true,
	}
}

func (p *progressStep) print(outcome string) {
	if p.deferred {
		outcome = p.label + "... " + outcome
	}
	progressMu.Lock()
	defer progressMu.Unlock()
	fmt.Fprintln(progressOut, outcome)
}

// Done reports success. detail, when set, is printed before the elapsed time.
func (p *progressStep) Done(detail string) {
	if p == nil || !p.enabled {
		return
	}
	elapsed := formatDuration(time.Since(p.started))
	if detail != "" {
		p.print(fmt.Sprintf("done (%s, %s)", detail, elapsed))
		return
	}
	p.print(fmt.Sprintf("done (%s)", elapsed))
}

func (p *progressStep) Fail(err error) {
	if p == nil || !p.enabled {
		return
	}
	if err != nil {
		p.print(fmt.Sprintf("failed: %v", err))
		return
	}
	p.print("failed")
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	if noProgress {
		return false
	}
	if _, ok := os.LookupEnv("THEMECSS_NO_PROGRESS"); ok {
		return false
	}
	if _, ok := os.LookupEnv("NO_PROGRESS"); ok {
		return false
	}
	return true
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
