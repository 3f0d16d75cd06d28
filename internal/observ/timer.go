// Package observ collects wall-clock timings of the formatting phases.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase records the accumulated duration of one named phase. Workers that
// run the same phase for different files add into one Phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int
	Note  string
}

// Timer tracks the phases of one run. It is safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	index  map[string]int
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), index: make(map[string]int)}
}

// Begin starts a new top-level phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.phaseLocked(name)
	t.phases[idx].Start = time.Now()
	return idx
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur += time.Since(p.Start)
	p.Count++
	if note != "" {
		p.Note = note
	}
}

// Add accumulates d into the phase called name.
func (t *Timer) Add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := &t.phases[t.phaseLocked(name)]
	p.Dur += d
	p.Count++
}

// Track runs fn and adds its duration to the phase called name.
func (t *Timer) Track(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	t.Add(name, time.Since(start))
	return err
}

func (t *Timer) phaseLocked(name string) int {
	if idx, ok := t.index[name]; ok {
		return idx
	}
	t.phases = append(t.phases, Phase{Name: name})
	idx := len(t.phases) - 1
	t.index[name] = idx
	return idx
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d", p.Name, p.DurationMS, p.Count)
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serialisable view of one phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
	Note       string  `json:"note,omitempty"`
}

// Report is the aggregated view of the Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report returns the phases in first-seen order. Phases that ran in
// parallel workers report summed CPU-side time, so TotalMS may exceed the
// wall time of the run.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Count:      phase.Count,
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
