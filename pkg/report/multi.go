package report

import (
	"github.com/pkg/errors"

	"github.com/zpam/nbspam/pkg/learning"
)

// Multi fans an outcome out to several reporters. Every reporter sees every
// outcome; the first error is returned.
type Multi []learning.Reporter

// Report implements learning.Reporter.
func (m Multi) Report(o learning.Outcome) error {
	var first error
	for _, r := range m {
		if err := r.Report(o); err != nil && first == nil {
			first = errors.Wrapf(err, "reporter %T", r)
		}
	}
	return first
}
