package search

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/pipeline"
)

// Scorer computes a score from held-out labels and predictions. Higher is
// better.
type Scorer func(yTrue, yPred []float64) float64

// Result is one evaluated candidate configuration.
type Result struct {
	Assignment Assignment
	Score      float64
	Pipeline   *pipeline.Pipeline
}

// GridSearch fits one fresh pipeline per grid candidate and scores it on
// held-out data. Selection is arg-max over the score; ties keep the earlier
// candidate in enumeration order.
type GridSearch struct {
	builder  func() (*pipeline.Pipeline, error)
	grid     Grid
	scorer   Scorer
	parallel int
}

// Option configures a GridSearch.
type Option func(s *GridSearch)

// Parallelism bounds how many candidates are evaluated concurrently.
// Candidates are independent pipeline instances; none observes another's
// fitted parameters.
func Parallelism(n int) Option {
	return func(s *GridSearch) {
		s.parallel = n
	}
}

// New creates a grid search over pipelines produced by builder. The builder
// must return a fresh, unfitted pipeline on every call.
func New(builder func() (*pipeline.Pipeline, error), grid Grid, scorer Scorer, opts ...Option) *GridSearch {
	s := &GridSearch{
		builder:  builder,
		grid:     grid,
		scorer:   scorer,
		parallel: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run evaluates every candidate and returns the best result plus all results
// in enumeration order. The first candidate error aborts the search.
func (s *GridSearch) Run(ctx context.Context, xTrain mat.Matrix, yTrain []float64, xTest mat.Matrix, yTest []float64) (Result, []Result, error) {
	candidates := s.grid.Candidates()
	results := make([]Result, len(candidates))

	grp, gCtx := errgroup.WithContext(ctx)
	limit := s.parallel
	if limit < 1 {
		limit = 1
	}
	grp.SetLimit(limit)

	for i, candidate := range candidates {
		idx, assignment := i, candidate
		grp.Go(func() error {
			select {
			case <-gCtx.Done():
				return errors.Wrap(gCtx.Err(), "search cancelled")
			default:
			}

			pipe, err := s.builder()
			if err != nil {
				return errors.Wrap(err, "unable to build candidate")
			}
			err = Apply(pipe, assignment)
			if err != nil {
				return err
			}
			err = pipe.Fit(xTrain, yTrain)
			if err != nil {
				return errors.Wrapf(err, "candidate %d", idx)
			}
			preds, err := pipe.Predict(xTest)
			if err != nil {
				return errors.Wrapf(err, "candidate %d", idx)
			}
			results[idx] = Result{Assignment: assignment, Score: s.scorer(yTest, preds), Pipeline: pipe}

			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return Result{}, nil, err
	}

	best := 0
	for i := range results {
		if results[i].Score > results[best].Score {
			best = i
		}
	}

	return results[best], results, nil
}
