package estimator_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

func TestShapeMismatchErrorMessage(t *testing.T) {
	t.Parallel()

	err := &estimator.ShapeMismatchError{
		Name: "scaler",
		Axis: estimator.Columns,
		Want: 3,
		Got:  5,
	}
	assert.Equal(t, "scaler: columns mismatch: want 3, got 5", err.Error())
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(estimator.ErrNotFitted, "pca")
	require.ErrorIs(t, err, estimator.ErrNotFitted)

	err = errors.Wrapf(estimator.ErrUnknownParameter, "%q", "gamma")
	require.ErrorIs(t, err, estimator.ErrUnknownParameter)
}

func TestBaseFittedLifecycle(t *testing.T) {
	t.Parallel()

	var b estimator.Base
	assert.False(t, b.Fitted())

	b.SetFitted()
	assert.True(t, b.Fitted())

	b.Reset()
	assert.False(t, b.Fitted())
}
