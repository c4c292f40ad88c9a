package pipeline

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

// Union runs sibling transformers on identical input and concatenates their
// outputs column-wise in declared order. Every sub-stage must support
// transform. A Union satisfies the transformer capability, so it can be
// nested as one stage of an outer pipeline.
type Union struct {
	stages     []Stage
	details    []*model.StageInfo
	opts       []model.PipelineOption
	concurrent int
	fitted     bool
}

// NewUnion creates a parallel union from the given sub-stages.
func NewUnion(stages []Stage, opts ...UnionOption) (*Union, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	details := make([]*model.StageInfo, len(stages))
	for i, st := range stages {
		err := checkStage(st)
		if err != nil {
			return nil, err
		}
		if !supportsTransform(st.Estimator) {
			return nil, errors.Wrap(ErrStageNotTransformer, st.Name)
		}
		details[i] = &model.StageInfo{Type: model.UnionStageType, Name: st.Name, Path: st.Name}
	}

	err := validateComposition(stages, false)
	if err != nil {
		return nil, err
	}

	union := &Union{
		stages:  append([]Stage(nil), stages...),
		details: details,
	}
	for _, opt := range opts {
		opt(union)
	}

	err = prepareOptions(union.opts, details)
	if err != nil {
		return nil, err
	}

	return union, nil
}

// Stages returns a copy of the union's sub-stage sequence.
func (u *Union) Stages() []Stage {
	return append([]Stage(nil), u.stages...)
}

// Fitted reports whether Fit completed successfully.
func (u *Union) Fitted() bool { return u.fitted }

// CanTransform reports the union's transformer capability. Always true.
func (u *Union) CanTransform() bool { return true }

// CanPredict reports the union's predictor capability. Always false.
func (u *Union) CanPredict() bool { return false }

// Fit fits every sub-stage independently on the same input. Sub-stages have
// no data dependency on each other; with UnionConcurrency they may run in
// parallel, which changes neither results nor per-stage trace pairing.
func (u *Union) Fit(x mat.Matrix, y []float64) error {
	u.fitted = false

	err := u.each(func(i int) error {
		info := u.details[i]
		notifyStart(u.opts, info, model.OpFit)
		start := time.Now()
		err := u.stages[i].Estimator.Fit(x, y)
		notifyEnd(u.opts, info, model.OpFit, time.Since(start))
		if err != nil {
			return &StageFitError{Stage: info.Name, Err: err}
		}

		return nil
	})
	if err != nil {
		return err
	}

	u.fitted = true

	return nil
}

// Transform computes every sub-stage's transform on the same input and
// concatenates the results along the column axis in declared sub-stage
// order. All sub-stage outputs must agree on the row count.
func (u *Union) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !u.fitted {
		return nil, errors.Wrap(estimator.ErrNotFitted, "union")
	}

	outs := make([]mat.Matrix, len(u.stages))
	err := u.each(func(i int) error {
		info := u.details[i]
		trf := u.stages[i].Estimator.(estimator.Transformer)

		notifyStart(u.opts, info, model.OpTransform)
		start := time.Now()
		out, err := trf.Transform(x)
		notifyEnd(u.opts, info, model.OpTransform, time.Since(start))
		if err != nil {
			return errors.Wrapf(err, "stage %q", info.Name)
		}
		outs[i] = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.concat(outs)
}

// Finish runs the Finish hook of every option attached to the union.
func (u *Union) Finish() error {
	return finishOptions(u.opts)
}

// each applies fn to every sub-stage index, sequentially in declared order,
// or concurrently when UnionConcurrency was set.
func (u *Union) each(fn func(i int) error) error {
	if u.concurrent <= 1 {
		for i := range u.stages {
			err := fn(i)
			if err != nil {
				return err
			}
		}

		return nil
	}

	grp := errgroup.Group{}
	grp.SetLimit(u.concurrent)
	for i := range u.stages {
		idx := i
		grp.Go(func() error {
			return fn(idx)
		})
	}

	return grp.Wait()
}

func (u *Union) concat(outs []mat.Matrix) (mat.Matrix, error) {
	rows, _ := outs[0].Dims()
	total := 0
	for i, out := range outs {
		r, c := out.Dims()
		if r != rows {
			return nil, &estimator.ShapeMismatchError{
				Name: u.details[i].Name,
				Axis: estimator.Rows,
				Want: rows,
				Got:  r,
			}
		}
		total += c
	}

	dst := mat.NewDense(rows, total, nil)
	col := 0
	for _, out := range outs {
		r, c := out.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				dst.Set(i, col+j, out.At(i, j))
			}
		}
		col += c
	}

	return dst, nil
}

type unionGob struct {
	Stages     []Stage
	Concurrent int
	Fitted     bool
}

// GobEncode serializes the sub-stages, concurrency bound and fitted flag.
func (u *Union) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(unionGob{Stages: u.stages, Concurrent: u.concurrent, Fitted: u.fitted})
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode union")
	}

	return buf.Bytes(), nil
}

// GobDecode rebuilds the union through NewUnion, re-running validation.
func (u *Union) GobDecode(data []byte) error {
	var payload unionGob
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload)
	if err != nil {
		return errors.Wrap(err, "unable to decode union")
	}

	fresh, err := NewUnion(payload.Stages, UnionConcurrency(payload.Concurrent))
	if err != nil {
		return errors.Wrap(err, "unable to rebuild union")
	}
	fresh.fitted = payload.Fitted
	*u = *fresh

	return nil
}
