// Package observ carries lightweight phase timing for the command-line
// driver.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed stage of a run.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Timer accumulates phases in the order they finish.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 4)}
}

// Begin starts a phase and returns the function that ends it. The note is
// attached to the finished phase, "" for none.
func (t *Timer) Begin(name string) func(note string) {
	start := time.Now()
	return func(note string) {
		t.phases = append(t.phases, Phase{
			Name: name,
			Dur:  time.Since(start),
			Note: note,
		})
	}
}

// Phases returns the finished phases in completion order.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Summary renders the phases and their total, one line each.
func (t *Timer) Summary() string {
	var out strings.Builder
	out.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&out, "  %-16s %8.2f ms", p.Name, millis(p.Dur))
		if p.Note != "" {
			out.WriteString("  // " + p.Note)
		}
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "  %-16s %8.2f ms\n", "total", millis(total))
	return out.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
