package pipeline

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

// Pipeline is an ordered sequence of named stages. Every stage but the last
// must support transform; the last may be a transformer, a predictor, or
// both. A Pipeline itself satisfies the estimator capabilities, so it can be
// nested as one stage of an outer composition.
type Pipeline struct {
	stages  []Stage
	details []*model.StageInfo
	opts    []model.PipelineOption
	fitted  bool
}

// New creates a pipeline from the given stages. Stage names, capabilities,
// and estimator ownership are validated here; a pipeline that constructs
// without error will not fail a capability check later.
func New(stages []Stage, opts ...model.PipelineOption) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	details := make([]*model.StageInfo, len(stages))
	for i, st := range stages {
		err := checkStage(st)
		if err != nil {
			return nil, err
		}

		last := i == len(stages)-1
		if !last && !supportsTransform(st.Estimator) {
			return nil, errors.Wrap(ErrStageNotTransformer, st.Name)
		}
		if last && !supportsTransform(st.Estimator) && !supportsPredict(st.Estimator) {
			return nil, errors.Wrap(ErrTerminalCapability, st.Name)
		}

		typ := model.TransformStageType
		if last {
			typ = model.TerminalStageType
		}
		details[i] = &model.StageInfo{Type: typ, Name: st.Name, Path: st.Name}
	}

	err := validateComposition(stages, true)
	if err != nil {
		return nil, err
	}

	pipe := &Pipeline{
		stages:  append([]Stage(nil), stages...),
		details: details,
		opts:    opts,
	}

	err = prepareOptions(pipe.opts, details)
	if err != nil {
		return nil, err
	}

	return pipe, nil
}

// Stages returns a copy of the pipeline's stage sequence.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Fitted reports whether Fit completed successfully.
func (p *Pipeline) Fitted() bool { return p.fitted }

// CanTransform reports whether the terminal stage supports transform.
func (p *Pipeline) CanTransform() bool {
	return supportsTransform(p.stages[len(p.stages)-1].Estimator)
}

// CanPredict reports whether the terminal stage supports predict.
func (p *Pipeline) CanPredict() bool {
	return supportsPredict(p.stages[len(p.stages)-1].Estimator)
}

// Fit fits every stage in declared order. Each non-terminal stage is fitted
// on the output of the previous stage and its transformed output is passed
// on; the terminal stage additionally receives the labels. A second Fit call
// resets the pipeline to a freshly fitted state. After a failed Fit the
// pipeline is unfitted and must be refit or discarded.
func (p *Pipeline) Fit(x mat.Matrix, y []float64) error {
	p.fitted = false

	cur := x
	for i, st := range p.stages {
		info := p.details[i]
		last := i == len(p.stages)-1

		labels := []float64(nil)
		if last {
			labels = y
		}

		err := p.fitStage(info, st.Estimator, cur, labels)
		if err != nil {
			return &StageFitError{Stage: info.Name, Err: err}
		}

		if last {
			break
		}

		trf, ok := st.Estimator.(estimator.Transformer)
		if !ok {
			return errors.Wrap(estimator.ErrUnsupportedOperation, info.Name)
		}
		cur, err = p.transformStage(info, trf, cur)
		if err != nil {
			return errors.Wrapf(err, "stage %q", info.Name)
		}
	}

	p.fitted = true

	return nil
}

// Transform applies every stage's transform in declared order, including the
// terminal stage. It is only valid after Fit.
func (p *Pipeline) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !p.fitted {
		return nil, errors.Wrap(estimator.ErrNotFitted, "pipeline")
	}

	cur := x
	for i, st := range p.stages {
		info := p.details[i]
		trf, ok := st.Estimator.(estimator.Transformer)
		if !ok || !supportsTransform(st.Estimator) {
			return nil, errors.Wrap(estimator.ErrUnsupportedOperation, info.Name)
		}

		out, err := p.transformStage(info, trf, cur)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %q", info.Name)
		}
		cur = out
	}

	return cur, nil
}

// Predict applies every non-terminal stage's transform in declared order,
// then the terminal stage's predict. It is only valid after Fit.
func (p *Pipeline) Predict(x mat.Matrix) ([]float64, error) {
	if !p.fitted {
		return nil, errors.Wrap(estimator.ErrNotFitted, "pipeline")
	}

	last := len(p.stages) - 1

	cur := x
	for i := 0; i < last; i++ {
		info := p.details[i]
		out, err := p.transformStage(info, p.stages[i].Estimator.(estimator.Transformer), cur)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %q", info.Name)
		}
		cur = out
	}

	info := p.details[last]
	prd, ok := p.stages[last].Estimator.(estimator.Predictor)
	if !ok || !supportsPredict(p.stages[last].Estimator) {
		return nil, errors.Wrap(estimator.ErrUnsupportedOperation, info.Name)
	}

	notifyStart(p.opts, info, model.OpPredict)
	start := time.Now()
	out, err := prd.Predict(cur)
	notifyEnd(p.opts, info, model.OpPredict, time.Since(start))
	if err != nil {
		return nil, errors.Wrapf(err, "stage %q", info.Name)
	}

	return out, nil
}

// Finish runs the Finish hook of every option attached to the pipeline.
func (p *Pipeline) Finish() error {
	return finishOptions(p.opts)
}

func (p *Pipeline) fitStage(info *model.StageInfo, est estimator.Estimator, x mat.Matrix, y []float64) error {
	notifyStart(p.opts, info, model.OpFit)
	start := time.Now()
	err := est.Fit(x, y)
	notifyEnd(p.opts, info, model.OpFit, time.Since(start))

	return err
}

func (p *Pipeline) transformStage(info *model.StageInfo, trf estimator.Transformer, x mat.Matrix) (mat.Matrix, error) {
	notifyStart(p.opts, info, model.OpTransform)
	start := time.Now()
	out, err := trf.Transform(x)
	notifyEnd(p.opts, info, model.OpTransform, time.Since(start))

	return out, err
}

type pipelineGob struct {
	Stages []Stage
	Fitted bool
}

// GobEncode serializes the stage sequence and fitted flag. Concrete estimator
// types must be registered with gob. Options are runtime collaborators and
// are not serialized.
func (p *Pipeline) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(pipelineGob{Stages: p.stages, Fitted: p.fitted})
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode pipeline")
	}

	return buf.Bytes(), nil
}

// GobDecode rebuilds the pipeline through New, so a decoded pipeline is
// re-validated exactly like a constructed one.
func (p *Pipeline) GobDecode(data []byte) error {
	var payload pipelineGob
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload)
	if err != nil {
		return errors.Wrap(err, "unable to decode pipeline")
	}

	fresh, err := New(payload.Stages)
	if err != nil {
		return errors.Wrap(err, "unable to rebuild pipeline")
	}
	fresh.fitted = payload.Fitted
	*p = *fresh

	return nil
}
