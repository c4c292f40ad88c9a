// Package pipeline composes estimators into a single reusable unit.
//
// A Pipeline is an ordered sequence of named stages. During Fit each stage is
// fitted on the output of the previous stage and the transformed data is
// passed on, so the exact same ordered transform sequence, with parameters
// frozen at fit time, is replayed identically at prediction time. This
// removes the class of bugs where a preprocessing step is applied to training
// data but forgotten on held-out data.
//
// A Union runs sibling transformers on identical input and concatenates their
// outputs column-wise in declared order. Pipelines and unions both satisfy
// the estimator capabilities, so they nest: a union can be one stage of an
// outer pipeline and vice versa, giving a tree-shaped composition of series
// and parallel blocks.
//
// Stage capabilities are checked when a composition is constructed, not when
// it is first used, so a mis-assembled pipeline fails before any data is
// touched. The composition is also registered into a graph to reject
// duplicate stage names and estimator reuse across stages.
package pipeline
