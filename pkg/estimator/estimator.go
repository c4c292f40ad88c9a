// Package estimator defines the capability interfaces shared by every unit of
// computation that can be composed into a pipeline.
//
// An estimator owns its internal parameters exclusively. Fit replaces those
// parameters wholesale, so refitting an already fitted estimator behaves the
// same as fitting a fresh one. Transform and Predict never mutate parameters.
//
// Capabilities are split into explicit interfaces so a composition can be
// validated when it is constructed rather than when it is first used.
package estimator

import "gonum.org/v1/gonum/mat"

// Estimator is the minimal capability: something that can learn parameters
// from a feature matrix. The label slice may be nil for unsupervised fits.
type Estimator interface {
	Fit(x mat.Matrix, y []float64) error
}

// Transformer maps a feature matrix to another feature matrix with the same
// number of rows.
type Transformer interface {
	Estimator
	Transform(x mat.Matrix) (mat.Matrix, error)
}

// Predictor maps a feature matrix to one label per row.
type Predictor interface {
	Estimator
	Predict(x mat.Matrix) ([]float64, error)
}

// TransformerPredictor supports both capabilities.
type TransformerPredictor interface {
	Transformer
	Predictor
}

// Cloner returns an unfitted copy of an estimator carrying the same
// hyperparameters. Hyperparameter search relies on it to build fresh
// candidates that share no state with the original.
type Cloner interface {
	CloneEstimator() Estimator
}

// ParamGetter exposes an estimator's hyperparameters by name.
type ParamGetter interface {
	Params() map[string]any
}

// ParamSetter updates a single hyperparameter by name. Implementations must
// reject unknown names and values of the wrong type.
type ParamSetter interface {
	SetParam(name string, value any) error
}
