package model

import "time"

// PipelineOption defines the interface for pipeline options.
//
// Options observe stage execution; they must not influence results. Only New,
// PrepareStage and Finish may fail, and only construction honours their
// errors. The per-call hooks return nothing because tracing is lossy by
// contract.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	// PrepareStage runs once per stage while the composition is constructed.
	PrepareStage(stage *StageInfo) error

	// OnStageStart runs immediately before a stage operation.
	OnStageStart(stage *StageInfo, op Operation)

	// OnStageEnd runs immediately after a stage operation.
	OnStageEnd(stage *StageInfo, op Operation, elapsed time.Duration)

	// Finish runs when the composition's owner is done with the option.
	Finish() error
}
