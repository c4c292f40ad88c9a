package estimator

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFitted is returned when Transform or Predict is called before Fit.
	ErrNotFitted = errors.New("estimator is not fitted")
	// ErrUnsupportedOperation is returned when an operation is requested from
	// an estimator that does not offer the capability.
	ErrUnsupportedOperation = errors.New("operation not supported")
	// ErrUnknownParameter is returned by SetParam for a parameter name the
	// estimator does not define.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// Axis names the dimension a ShapeMismatchError refers to.
type Axis string

const (
	Rows    Axis = "rows"
	Columns Axis = "columns"
	Labels  Axis = "labels"
)

// ShapeMismatchError reports a dimension disagreement between an input and
// what the named estimator expects or produced.
type ShapeMismatchError struct {
	Name string
	Axis Axis
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s mismatch: want %d, got %d", e.Name, e.Axis, e.Want, e.Got)
}
