// Package report turns evaluation outcomes into output: console lines for
// people and Redis records for anything watching a run.
package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/zpam/nbspam/pkg/learning"
)

// Console writes one line per outcome:
//
//	Test 3 12/2048 features true -812.113 -830.540 spam right
type Console struct {
	mu        sync.Mutex
	w         io.Writer
	vocabSize int
}

// NewConsole returns a reporter writing to w. vocabSize is printed as the
// denominator of the matched feature count.
func NewConsole(w io.Writer, vocabSize int) *Console {
	return &Console{w: w, vocabSize: vocabSize}
}

// Report implements learning.Reporter.
func (c *Console) Report(o learning.Outcome) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintln(c.w, FormatOutcome(o, c.vocabSize))
	return err
}

// FormatOutcome renders o as a single console line.
func FormatOutcome(o learning.Outcome, vocabSize int) string {
	if o.Err != nil {
		return fmt.Sprintf("Test %d skipped: %v", o.Index, o.Err)
	}

	verdict := "wrong"
	if o.Correct {
		verdict = "right"
	}
	return fmt.Sprintf("Test %d %d/%d features true %.3f %.3f %s %s",
		o.Index, o.Result.MatchedFeatures, vocabSize,
		o.Result.SpamScore, o.Result.HamScore, o.Result.Label, verdict)
}

// Summary formats the final tally of a run.
func Summary(e learning.Evaluation) string {
	s := fmt.Sprintf("Total: %d/%d emails classified correctly.", e.Correct, e.Total)
	if e.Failed > 0 {
		s += fmt.Sprintf(" (%d skipped)", e.Failed)
	}
	return s
}
