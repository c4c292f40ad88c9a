package pipeline_test

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// offsetTransformer adds a fixed offset to every entry. Stateless apart from
// the fitted flag, so chained outputs are easy to predict in assertions.
type offsetTransformer struct {
	estimator.Base
	Offset   float64
	fitCalls int
}

func (t *offsetTransformer) Fit(_ mat.Matrix, _ []float64) error {
	t.fitCalls++
	t.SetFitted()

	return nil
}

func (t *offsetTransformer) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !t.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "offset")
	}
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, x.At(i, j)+t.Offset)
		}
	}

	return out, nil
}

// constTransformer emits a fixed number of columns filled with a constant,
// ignoring the input values. Used to check union block layout.
type constTransformer struct {
	estimator.Base
	Cols  int
	Value float64
}

func (t *constTransformer) Fit(_ mat.Matrix, _ []float64) error {
	t.SetFitted()

	return nil
}

func (t *constTransformer) Transform(x mat.Matrix) (mat.Matrix, error) {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, t.Cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < t.Cols; j++ {
			out.Set(i, j, t.Value)
		}
	}

	return out, nil
}

// rowDropTransformer returns its input minus the last row.
type rowDropTransformer struct {
	estimator.Base
}

func (t *rowDropTransformer) Fit(_ mat.Matrix, _ []float64) error {
	t.SetFitted()

	return nil
}

func (t *rowDropTransformer) Transform(x mat.Matrix) (mat.Matrix, error) {
	rows, cols := x.Dims()
	out := mat.NewDense(rows-1, cols, nil)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, x.At(i, j))
		}
	}

	return out, nil
}

// meanPredictor predicts the mean label seen at fit time for every row.
type meanPredictor struct {
	estimator.Base
	Mean float64
}

func (p *meanPredictor) Fit(_ mat.Matrix, y []float64) error {
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	if len(y) > 0 {
		p.Mean = sum / float64(len(y))
	}
	p.SetFitted()

	return nil
}

func (p *meanPredictor) Predict(x mat.Matrix) ([]float64, error) {
	if !p.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "mean")
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := range out {
		out[i] = p.Mean
	}

	return out, nil
}

// sliceTransformer is held by value and carries a slice field, so the
// interface value is not a usable map key.
type sliceTransformer struct {
	Buf []float64
}

func (t sliceTransformer) Fit(_ mat.Matrix, _ []float64) error { return nil }

func (t sliceTransformer) Transform(x mat.Matrix) (mat.Matrix, error) { return x, nil }

// failFitTransformer always fails to fit.
type failFitTransformer struct {
	estimator.Base
	Err error
}

func (t *failFitTransformer) Fit(_ mat.Matrix, _ []float64) error {
	return t.Err
}

func (t *failFitTransformer) Transform(x mat.Matrix) (mat.Matrix, error) {
	return x, nil
}

func makeMatrix(t *testing.T, rows, cols int, values ...float64) *mat.Dense {
	t.Helper()
	if len(values) == 0 {
		values = make([]float64, rows*cols)
		for i := range values {
			values[i] = float64(i)
		}
	}

	return mat.NewDense(rows, cols, values)
}
