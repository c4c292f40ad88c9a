package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/preprocess"
)

func TestPowerTransformer(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(2, 2, []float64{
		4, 9,
		16, 25,
	})

	power := preprocess.NewPowerTransformer(2)
	require.NoError(t, power.Fit(x, nil))

	out, err := power.Transform(x)
	require.NoError(t, err)
	assert.InDelta(t, 2, out.At(0, 0), 1e-12)
	assert.InDelta(t, 3, out.At(0, 1), 1e-12)
	assert.InDelta(t, 4, out.At(1, 0), 1e-12)
	assert.InDelta(t, 5, out.At(1, 1), 1e-12)
}

func TestPowerTransformerNegativeInput(t *testing.T) {
	t.Parallel()

	power := preprocess.NewPowerTransformer(2)
	require.NoError(t, power.Fit(mat.NewDense(1, 1, []float64{1}), nil))

	_, err := power.Transform(mat.NewDense(2, 2, []float64{1, 2, -3, 4}))
	require.Error(t, err)

	var domainErr *preprocess.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 1, domainErr.Row)
	assert.Equal(t, 0, domainErr.Col)
	assert.Equal(t, -3.0, domainErr.Value)
}

func TestPowerTransformerInvalidDegree(t *testing.T) {
	t.Parallel()

	power := preprocess.NewPowerTransformer(0)
	err := power.Fit(mat.NewDense(1, 1, []float64{1}), nil)
	require.ErrorIs(t, err, preprocess.ErrInvalidDegree)
}

func TestPowerTransformerParams(t *testing.T) {
	t.Parallel()

	power := preprocess.NewPowerTransformer(2)
	assert.Equal(t, map[string]any{"degree": 2.0}, power.Params())

	require.NoError(t, power.SetParam("degree", 3.0))
	assert.Equal(t, 3.0, power.Degree)

	// Integers are accepted for convenience.
	require.NoError(t, power.SetParam("degree", 4))
	assert.Equal(t, 4.0, power.Degree)

	err := power.SetParam("exponent", 2.0)
	require.ErrorIs(t, err, estimator.ErrUnknownParameter)

	err = power.SetParam("degree", "two")
	require.Error(t, err)
}
