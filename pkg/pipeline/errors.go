package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoStages            = errors.New("composition requires at least one stage")
	ErrNilEstimator        = errors.New("stage estimator must be set")
	ErrInvalidStageName    = errors.New("stage name must be non-empty and must not contain the path separator")
	ErrDuplicateStageName  = errors.New("stage name already used")
	ErrEstimatorReuse      = errors.New("estimator instance appears in more than one stage")
	ErrStageNotTransformer = errors.New("stage must support transform")
	ErrTerminalCapability  = errors.New("terminal stage must support transform or predict")
)

// StageFitError attributes an estimator fit failure to the stage it occurred
// in.
type StageFitError struct {
	Stage string
	Err   error
}

func (e *StageFitError) Error() string {
	return fmt.Sprintf("fit stage %q: %v", e.Stage, e.Err)
}

func (e *StageFitError) Unwrap() error { return e.Err }
