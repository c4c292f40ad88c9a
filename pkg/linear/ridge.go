package linear

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// ErrInvalidAlpha is returned when ridge regression is configured with a
// negative regularisation strength.
var ErrInvalidAlpha = errors.New("alpha must not be negative")

// Ridge is linear regression with L2 regularisation, solved in closed form
// on centered data.
type Ridge struct {
	estimator.Base
	Alpha     float64
	Weights   []float64
	Intercept float64
}

func NewRidge(alpha float64) *Ridge {
	return &Ridge{Alpha: alpha}
}

func (m *Ridge) Fit(x mat.Matrix, y []float64) error {
	if m.Alpha < 0 {
		return errors.Wrapf(ErrInvalidAlpha, "got %g", m.Alpha)
	}
	rows, cols := x.Dims()
	if y == nil {
		return errors.Wrap(ErrMissingLabels, "ridge")
	}
	if len(y) != rows {
		return &estimator.ShapeMismatchError{Name: "ridge", Axis: estimator.Labels, Want: rows, Got: len(y)}
	}

	colMeans := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		colMeans[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	centered := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered.Set(i, j, x.At(i, j)-colMeans[j])
		}
	}
	yCentered := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		yCentered.SetVec(i, y[i]-yMean)
	}

	// (XᵀX + αI) w = Xᵀy
	var gram mat.Dense
	gram.Mul(centered.T(), centered)
	for j := 0; j < cols; j++ {
		gram.Set(j, j, gram.At(j, j)+m.Alpha)
	}
	rhs := mat.NewVecDense(cols, nil)
	rhs.MulVec(centered.T(), yCentered)

	var weights mat.VecDense
	err := weights.SolveVec(&gram, rhs)
	if err != nil {
		return errors.Wrap(err, "unable to solve ridge system")
	}

	m.Weights = make([]float64, cols)
	m.Intercept = yMean
	for j := 0; j < cols; j++ {
		m.Weights[j] = weights.AtVec(j)
		m.Intercept -= colMeans[j] * m.Weights[j]
	}
	m.SetFitted()

	return nil
}

func (m *Ridge) Predict(x mat.Matrix) ([]float64, error) {
	if !m.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "ridge")
	}
	rows, cols := x.Dims()
	if cols != len(m.Weights) {
		return nil, &estimator.ShapeMismatchError{Name: "ridge", Axis: estimator.Columns, Want: len(m.Weights), Got: cols}
	}

	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		sum := m.Intercept
		for j := 0; j < cols; j++ {
			sum += m.Weights[j] * x.At(i, j)
		}
		out[i] = sum
	}

	return out, nil
}

func (m *Ridge) Params() map[string]any {
	return map[string]any{"alpha": m.Alpha}
}

func (m *Ridge) SetParam(name string, value any) error {
	if name != "alpha" {
		return errors.Wrap(estimator.ErrUnknownParameter, name)
	}
	alpha, ok := value.(float64)
	if !ok {
		return errors.Errorf("alpha: want float64, got %T", value)
	}
	m.Alpha = alpha

	return nil
}

func (m *Ridge) CloneEstimator() estimator.Estimator {
	return &Ridge{Alpha: m.Alpha}
}
