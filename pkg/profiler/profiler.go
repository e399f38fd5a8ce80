// Package profiler records how long each stage of a run takes.
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Profiler collects durations per stage name. It is safe for concurrent use.
type Profiler struct {
	mu    sync.Mutex
	times map[string][]time.Duration
}

// New returns an empty profiler.
func New() *Profiler {
	return &Profiler{times: make(map[string][]time.Duration)}
}

// Timer measures a single stage run.
type Timer struct {
	profiler *Profiler
	name     string
	start    time.Time
}

// Start begins timing stage name.
func (p *Profiler) Start(name string) *Timer {
	return &Timer{profiler: p, name: name, start: time.Now()}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	t.profiler.Record(t.name, d)
	return d
}

// Record adds a measured duration for stage name.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	p.times[name] = append(p.times[name], d)
	p.mu.Unlock()
}

// Time runs fn as stage name and returns its error.
func (p *Profiler) Time(name string, fn func() error) error {
	t := p.Start(name)
	defer t.Stop()
	return fn()
}

// Stats summarizes one stage.
type Stats struct {
	Name    string
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	P95     time.Duration
}

// GetStats returns the summary for stage name; Count is zero when nothing
// was recorded.
func (p *Profiler) GetStats(name string) Stats {
	p.mu.Lock()
	sorted := append([]time.Duration(nil), p.times[name]...)
	p.mu.Unlock()

	if len(sorted) == 0 {
		return Stats{Name: name}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return Stats{
		Name:    name,
		Count:   len(sorted),
		Total:   total,
		Average: total / time.Duration(len(sorted)),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		P95:     sorted[(len(sorted)*95)/100],
	}
}

// AllStats returns the summaries of every stage, ordered by name.
func (p *Profiler) AllStats() []Stats {
	p.mu.Lock()
	names := make([]string, 0, len(p.times))
	for name := range p.times {
		names = append(names, name)
	}
	p.mu.Unlock()

	sort.Strings(names)
	stats := make([]Stats, 0, len(names))
	for _, name := range names {
		stats = append(stats, p.GetStats(name))
	}
	return stats
}

// PrintReport writes a timing table to w.
func (p *Profiler) PrintReport(w io.Writer) {
	stats := p.AllStats()
	if len(stats) == 0 {
		fmt.Fprintln(w, "No timing data available")
		return
	}

	fmt.Fprintf(w, "⏱️  Stage Timings\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "%-12s %6s %10s %10s %10s %10s\n", "Stage", "Count", "Total", "Avg", "Max", "P95")
	for _, s := range stats {
		fmt.Fprintf(w, "%-12s %6d %10s %10s %10s %10s\n",
			s.Name, s.Count,
			formatDuration(s.Total), formatDuration(s.Average),
			formatDuration(s.Max), formatDuration(s.P95))
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}
