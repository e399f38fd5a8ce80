package learning

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Classifier labels a single document. *Model implements it.
type Classifier interface {
	Classify(doc string) (Result, error)
}

// Outcome is the evaluation record of one test document.
type Outcome struct {
	// Index is the 1-based position of the document in its batch.
	Index    int    `json:"index"`
	Expected Label  `json:"expected"`
	Result   Result `json:"result"`
	Correct  bool   `json:"correct"`

	// Err is set when the document could not be classified. Result is
	// then zero and Correct is false.
	Err error `json:"-"`
}

// Reporter receives one Outcome per evaluated document, in batch order.
type Reporter interface {
	Report(o Outcome) error
}

// Evaluation aggregates a batch.
type Evaluation struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Failed  int `json:"failed"`
}

// Add merges other into e.
func (e *Evaluation) Add(other Evaluation) {
	e.Correct += other.Correct
	e.Total += other.Total
	e.Failed += other.Failed
}

// EvalOptions tunes Evaluate.
type EvalOptions struct {
	// Workers is the number of documents classified concurrently.
	// Values below 2 classify sequentially.
	Workers int

	// Reporter, when set, receives every outcome.
	Reporter Reporter
}

// Evaluate classifies each of docs, compares the verdict with truth and
// returns the tally. A document that fails to classify is counted in Total
// and Failed and does not stop the batch. Only cancellation of ctx aborts
// the evaluation.
func Evaluate(ctx context.Context, c Classifier, docs []string, truth Label, opts EvalOptions) (Evaluation, error) {
	outcomes := make([]Outcome, len(docs))

	classifyAt := func(i int) {
		res, err := c.Classify(docs[i])
		outcomes[i] = Outcome{
			Index:    i + 1,
			Expected: truth,
			Result:   res,
			Correct:  err == nil && res.Label == truth,
			Err:      err,
		}
	}

	if opts.Workers < 2 {
		for i := range docs {
			if err := ctx.Err(); err != nil {
				return Evaluation{}, err
			}
			classifyAt(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range docs {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				classifyAt(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Evaluation{}, err
		}
		if err := ctx.Err(); err != nil {
			return Evaluation{}, err
		}
	}

	eval := Evaluation{Total: len(docs)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			eval.Failed++
			slog.Warn("document skipped", "index", o.Index, "expected", o.Expected, "error", o.Err)
		case o.Correct:
			eval.Correct++
		}

		if opts.Reporter != nil {
			if err := opts.Reporter.Report(o); err != nil {
				slog.Warn("report failed", "index", o.Index, "error", err)
			}
		}
	}

	return eval, nil
}
