package pipeline_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/pipeline"
	"github.com/askiada/go-mlpipe/pkg/pipeline/model"
	"github.com/askiada/go-mlpipe/pkg/pipeline/tracer"
)

func TestNewUnionNoStages(t *testing.T) {
	t.Parallel()

	_, err := pipeline.NewUnion(nil)
	require.ErrorIs(t, err, pipeline.ErrNoStages)
}

func TestNewUnionRequiresTransformers(t *testing.T) {
	t.Parallel()

	_, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "pred", Estimator: &meanPredictor{}},
	})
	require.ErrorIs(t, err, pipeline.ErrStageNotTransformer)
}

func TestUnionBlockLayout(t *testing.T) {
	t.Parallel()

	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "ones", Estimator: &constTransformer{Cols: 1, Value: 1}},
		{Name: "twos", Estimator: &constTransformer{Cols: 2, Value: 2}},
		{Name: "threes", Estimator: &constTransformer{Cols: 3, Value: 3}},
	})
	require.NoError(t, err)

	x := makeMatrix(t, 4, 2)
	require.NoError(t, union.Fit(x, nil))

	out, err := union.Transform(x)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 6, cols)
	for i := 0; i < rows; i++ {
		assert.Equal(t, []float64{1, 2, 2, 3, 3, 3}, []float64{
			out.At(i, 0), out.At(i, 1), out.At(i, 2), out.At(i, 3), out.At(i, 4), out.At(i, 5),
		})
	}
}

func TestUnionShapeMismatch(t *testing.T) {
	t.Parallel()

	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "keep", Estimator: &constTransformer{Cols: 1, Value: 1}},
		{Name: "drop", Estimator: &rowDropTransformer{}},
	})
	require.NoError(t, err)

	x := makeMatrix(t, 4, 2)
	require.NoError(t, union.Fit(x, nil))

	_, err = union.Transform(x)
	require.Error(t, err)

	var shapeErr *estimator.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "drop", shapeErr.Name)
	assert.Equal(t, estimator.Rows, shapeErr.Axis)
	assert.Equal(t, 4, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
}

func TestUnionNotFitted(t *testing.T) {
	t.Parallel()

	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "ones", Estimator: &constTransformer{Cols: 1, Value: 1}},
	})
	require.NoError(t, err)

	_, err = union.Transform(makeMatrix(t, 2, 2))
	require.ErrorIs(t, err, estimator.ErrNotFitted)
}

func TestUnionFitError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "ok", Estimator: &constTransformer{Cols: 1, Value: 1}},
		{Name: "broken", Estimator: &failFitTransformer{Err: boom}},
	})
	require.NoError(t, err)

	err = union.Fit(makeMatrix(t, 2, 2), nil)
	require.Error(t, err)

	var stageErr *pipeline.StageFitError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, "broken", stageErr.Stage)
	assert.False(t, union.Fitted())
}

func TestUnionConcurrencyMatchesSequential(t *testing.T) {
	t.Parallel()

	build := func(opts ...pipeline.UnionOption) *pipeline.Union {
		union, err := pipeline.NewUnion([]pipeline.Stage{
			{Name: "a", Estimator: &offsetTransformer{Offset: 1}},
			{Name: "b", Estimator: &offsetTransformer{Offset: 2}},
			{Name: "c", Estimator: &offsetTransformer{Offset: 3}},
		}, opts...)
		require.NoError(t, err)

		return union
	}

	x := makeMatrix(t, 5, 2)

	sequential := build()
	require.NoError(t, sequential.Fit(x, nil))
	wantOut, err := sequential.Transform(x)
	require.NoError(t, err)

	concurrent := build(pipeline.UnionConcurrency(4))
	require.NoError(t, concurrent.Fit(x, nil))
	gotOut, err := concurrent.Transform(x)
	require.NoError(t, err)

	assert.Equal(t, wantOut, gotOut)
}

func TestUnionConcurrentTracePairing(t *testing.T) {
	t.Parallel()

	collector := tracer.NewCollector()
	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "a", Estimator: &offsetTransformer{Offset: 1}},
		{Name: "b", Estimator: &offsetTransformer{Offset: 2}},
		{Name: "c", Estimator: &offsetTransformer{Offset: 3}},
	},
		pipeline.UnionConcurrency(3),
		pipeline.UnionOptions(tracer.PipelineTracer(collector)),
	)
	require.NoError(t, err)

	x := makeMatrix(t, 3, 2)
	require.NoError(t, union.Fit(x, nil))
	_, err = union.Transform(x)
	require.NoError(t, err)

	// Events may interleave across stages, but within a stage every start
	// precedes its end for each operation.
	for _, stage := range []string{"a", "b", "c"} {
		for _, op := range []model.Operation{model.OpFit, model.OpTransform} {
			var phases []model.Phase
			for _, ev := range collector.Events() {
				if ev.Stage == stage && ev.Op == op {
					phases = append(phases, ev.Phase)
				}
			}
			assert.Equal(t, []model.Phase{model.PhaseStart, model.PhaseEnd}, phases)
		}
	}
}

func TestUnionInsidePipeline(t *testing.T) {
	t.Parallel()

	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "raw", Estimator: &offsetTransformer{Offset: 0}},
		{Name: "shifted", Estimator: &offsetTransformer{Offset: 10}},
	})
	require.NoError(t, err)

	pipe, err := pipeline.New([]pipeline.Stage{
		{Name: "features", Estimator: union},
		{Name: "mean", Estimator: &meanPredictor{}},
	})
	require.NoError(t, err)

	x := makeMatrix(t, 3, 2)
	require.NoError(t, pipe.Fit(x, []float64{1, 2, 3}))

	got, err := pipe.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, got)
}

func TestUnionCapabilities(t *testing.T) {
	t.Parallel()

	union, err := pipeline.NewUnion([]pipeline.Stage{
		{Name: "ones", Estimator: &constTransformer{Cols: 1, Value: 1}},
	})
	require.NoError(t, err)

	assert.True(t, union.CanTransform())
	assert.False(t, union.CanPredict())
}
