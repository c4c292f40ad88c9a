// Package linear provides linear predictors: ridge regression and binary
// logistic regression.
package linear

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

var (
	// ErrMissingLabels is returned when a supervised fit receives no labels.
	ErrMissingLabels = errors.New("labels are required")
	// ErrBinaryLabels is returned when logistic regression receives a label
	// other than 0 or 1.
	ErrBinaryLabels = errors.New("labels must be 0 or 1")
)

// LogisticRegression is a binary classifier trained with batch gradient
// descent. Weights start at zero, so fitting is deterministic: refitting on
// the same data reproduces the same parameters.
type LogisticRegression struct {
	estimator.Base
	Rate       float64
	Iterations int
	Weights    []float64
	Intercept  float64
}

func NewLogisticRegression(rate float64, iterations int) *LogisticRegression {
	return &LogisticRegression{Rate: rate, Iterations: iterations}
}

func (m *LogisticRegression) Fit(x mat.Matrix, y []float64) error {
	rows, cols := x.Dims()
	if y == nil {
		return errors.Wrap(ErrMissingLabels, "logistic")
	}
	if len(y) != rows {
		return &estimator.ShapeMismatchError{Name: "logistic", Axis: estimator.Labels, Want: rows, Got: len(y)}
	}
	for _, v := range y {
		if v != 0 && v != 1 {
			return errors.Wrapf(ErrBinaryLabels, "got %g", v)
		}
	}

	m.Weights = make([]float64, cols)
	m.Intercept = 0

	grad := make([]float64, cols)
	for it := 0; it < m.Iterations; it++ {
		for j := range grad {
			grad[j] = 0
		}
		gradIntercept := 0.0

		for i := 0; i < rows; i++ {
			sum := m.Intercept
			for j := 0; j < cols; j++ {
				sum += m.Weights[j] * x.At(i, j)
			}
			d := sigmoid(sum) - y[i]
			for j := 0; j < cols; j++ {
				grad[j] += d * x.At(i, j)
			}
			gradIntercept += d
		}

		scale := m.Rate / float64(rows)
		for j := 0; j < cols; j++ {
			m.Weights[j] -= scale * grad[j]
		}
		m.Intercept -= scale * gradIntercept
	}
	m.SetFitted()

	return nil
}

// PredictProba returns the probability of class 1 for every row.
func (m *LogisticRegression) PredictProba(x mat.Matrix) ([]float64, error) {
	if !m.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "logistic")
	}
	rows, cols := x.Dims()
	if cols != len(m.Weights) {
		return nil, &estimator.ShapeMismatchError{Name: "logistic", Axis: estimator.Columns, Want: len(m.Weights), Got: cols}
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := m.Intercept
		for j := 0; j < cols; j++ {
			sum += m.Weights[j] * x.At(i, j)
		}
		out[i] = sigmoid(sum)
	}

	return out, nil
}

// Predict returns class labels using a 0.5 probability threshold.
func (m *LogisticRegression) Predict(x mat.Matrix) ([]float64, error) {
	proba, err := m.PredictProba(x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}

	return out, nil
}

func (m *LogisticRegression) Params() map[string]any {
	return map[string]any{"rate": m.Rate, "iterations": m.Iterations}
}

func (m *LogisticRegression) SetParam(name string, value any) error {
	switch name {
	case "rate":
		rate, ok := value.(float64)
		if !ok {
			return errors.Errorf("rate: want float64, got %T", value)
		}
		m.Rate = rate
	case "iterations":
		iterations, ok := value.(int)
		if !ok {
			return errors.Errorf("iterations: want int, got %T", value)
		}
		m.Iterations = iterations
	default:
		return errors.Wrap(estimator.ErrUnknownParameter, name)
	}

	return nil
}

func (m *LogisticRegression) CloneEstimator() estimator.Estimator {
	return &LogisticRegression{Rate: m.Rate, Iterations: m.Iterations}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
