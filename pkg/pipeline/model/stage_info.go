package model

// StageType classifies a stage within its containing composition.
type StageType string

const (
	// TransformStageType is a stage whose output feeds the next stage.
	TransformStageType StageType = "transform"
	// TerminalStageType is the last stage of a pipeline.
	TerminalStageType StageType = "terminal"
	// UnionStageType is a sub-stage of a parallel union.
	UnionStageType StageType = "union"
)

// StageInfo describes one stage of a composition.
type StageInfo struct {
	Type StageType
	Name string
	// Path is the stage's address from the root of the composition,
	// segments joined with the hyperparameter path separator.
	Path string
}
