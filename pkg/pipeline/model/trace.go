package model

// Operation names the estimator call a trace event refers to.
type Operation string

const (
	OpFit       Operation = "fit"
	OpTransform Operation = "transform"
	OpPredict   Operation = "predict"
)

// Phase marks whether a trace event opens or closes an operation.
type Phase string

const (
	PhaseStart Phase = "start"
	PhaseEnd   Phase = "end"
)

// TraceEvent is emitted around every stage call. Events are diagnostic only;
// delivery may be lossy and never affects results.
type TraceEvent struct {
	Stage string
	Op    Operation
	Phase Phase
}
