// Package tracer emits stage trace events to a sink. Delivery is diagnostic
// only: a sink may drop events and must never influence results.
package tracer

import (
	"time"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

// Attribute keys used by the slog sink. They follow a hierarchical naming
// convention to ease structured log filtering.
const (
	StageKey     = "stage.name"
	OperationKey = "ml.operation"
	PhaseKey     = "ml.phase"
)

// Sink accepts trace events. No acknowledgement is expected.
type Sink interface {
	Emit(ev model.TraceEvent)
}

type pipelineTracer struct {
	sink Sink
}

func (pt *pipelineTracer) New() error {
	return nil
}

func (pt *pipelineTracer) PrepareStage(stage *model.StageInfo) error {
	return nil
}

func (pt *pipelineTracer) OnStageStart(stage *model.StageInfo, op model.Operation) {
	pt.sink.Emit(model.TraceEvent{Stage: stage.Name, Op: op, Phase: model.PhaseStart})
}

func (pt *pipelineTracer) OnStageEnd(stage *model.StageInfo, op model.Operation, elapsed time.Duration) {
	pt.sink.Emit(model.TraceEvent{Stage: stage.Name, Op: op, Phase: model.PhaseEnd})
}

func (pt *pipelineTracer) Finish() error {
	return nil
}

// PipelineTracer wraps a sink as a pipeline option.
func PipelineTracer(sink Sink) model.PipelineOption {
	return &pipelineTracer{sink: sink}
}
