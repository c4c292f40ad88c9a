// Package preprocess provides feature transformers: column scalers, a power
// transformer and principal component analysis.
package preprocess

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// ErrEmptyInput is returned when a transformer is fitted on a matrix with no
// rows or no columns.
var ErrEmptyInput = errors.New("input must not be empty")

// StandardScaler standardises every column to zero mean and unit variance.
// Constant columns keep a unit divisor so they map to zero.
type StandardScaler struct {
	estimator.Base
	Mean []float64
	Std  []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

func (s *StandardScaler) Fit(x mat.Matrix, _ []float64) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(ErrEmptyInput, "standard scaler")
	}

	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	s.SetFitted()

	return nil
}

func (s *StandardScaler) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !s.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "standard scaler")
	}
	rows, cols := x.Dims()
	if cols != len(s.Mean) {
		return nil, &estimator.ShapeMismatchError{
			Name: "standard scaler",
			Axis: estimator.Columns,
			Want: len(s.Mean),
			Got:  cols,
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (x.At(i, j)-s.Mean[j])/s.Std[j])
		}
	}

	return out, nil
}

func (s *StandardScaler) CloneEstimator() estimator.Estimator {
	return &StandardScaler{}
}

// MinMaxScaler rescales every column to the [0, 1] range. Constant columns
// map to zero.
type MinMaxScaler struct {
	estimator.Base
	Min []float64
	Max []float64
}

func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

func (s *MinMaxScaler) Fit(x mat.Matrix, _ []float64) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(ErrEmptyInput, "minmax scaler")
	}

	s.Min = make([]float64, cols)
	s.Max = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		s.Min[j] = floats.Min(col)
		s.Max[j] = floats.Max(col)
	}
	s.SetFitted()

	return nil
}

func (s *MinMaxScaler) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !s.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "minmax scaler")
	}
	rows, cols := x.Dims()
	if cols != len(s.Min) {
		return nil, &estimator.ShapeMismatchError{
			Name: "minmax scaler",
			Axis: estimator.Columns,
			Want: len(s.Min),
			Got:  cols,
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			span := s.Max[j] - s.Min[j]
			if span == 0 {
				out.Set(i, j, 0)

				continue
			}
			out.Set(i, j, (x.At(i, j)-s.Min[j])/span)
		}
	}

	return out, nil
}

func (s *MinMaxScaler) CloneEstimator() estimator.Estimator {
	return &MinMaxScaler{}
}
