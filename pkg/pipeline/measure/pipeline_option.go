package measure

import (
	"time"

	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) PrepareStage(stage *model.StageInfo) error {
	pm.AddMetric(stage.Name)

	return nil
}

func (pm *pipelineMeasure) OnStageStart(stage *model.StageInfo, op model.Operation) {}

func (pm *pipelineMeasure) OnStageEnd(stage *model.StageInfo, op model.Operation, elapsed time.Duration) {
	mt := pm.GetMetric(stage.Name)
	if mt == nil {
		return
	}
	mt.AddDuration(op, elapsed)
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure wraps a Measure as a pipeline option.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
