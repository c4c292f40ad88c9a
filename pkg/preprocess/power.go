package preprocess

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// ErrInvalidDegree is returned when a PowerTransformer is configured with a
// non-positive degree.
var ErrInvalidDegree = errors.New("degree must be positive")

// DomainError reports an input value outside a transformer's domain.
type DomainError struct {
	Row   int
	Col   int
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("value %g at (%d,%d) is outside the transform domain", e.Value, e.Row, e.Col)
}

// PowerTransformer raises every entry to 1/Degree, so Degree 2 takes square
// roots. It is stateless: Fit only validates the degree. Negative inputs are
// rejected with a DomainError rather than propagating NaN.
type PowerTransformer struct {
	estimator.Base
	Degree float64
}

func NewPowerTransformer(degree float64) *PowerTransformer {
	return &PowerTransformer{Degree: degree}
}

func (t *PowerTransformer) Fit(_ mat.Matrix, _ []float64) error {
	if t.Degree <= 0 {
		return errors.Wrapf(ErrInvalidDegree, "got %g", t.Degree)
	}
	t.SetFitted()

	return nil
}

func (t *PowerTransformer) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !t.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "power transformer")
	}

	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := x.At(i, j)
			if v < 0 {
				return nil, &DomainError{Row: i, Col: j, Value: v}
			}
			out.Set(i, j, math.Pow(v, 1/t.Degree))
		}
	}

	return out, nil
}

func (t *PowerTransformer) Params() map[string]any {
	return map[string]any{"degree": t.Degree}
}

func (t *PowerTransformer) SetParam(name string, value any) error {
	if name != "degree" {
		return errors.Wrap(estimator.ErrUnknownParameter, name)
	}
	degree, err := toFloat(value)
	if err != nil {
		return errors.Wrap(err, "degree")
	}
	t.Degree = degree

	return nil
}

func (t *PowerTransformer) CloneEstimator() estimator.Estimator {
	return &PowerTransformer{Degree: t.Degree}
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, errors.Errorf("want a number, got %T", value)
	}
}
