package pipeline

import (
	"reflect"
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// PathSeparator joins stage names into hyperparameter paths, e.g.
// "features__pca__components".
const PathSeparator = "__"

// Stage pairs a name with the estimator it runs. The name is unique within
// its containing composition and doubles as a hyperparameter path segment.
type Stage struct {
	Name      string
	Estimator estimator.Estimator
}

// Composite is an estimator built from named child stages. Pipeline and
// Union satisfy it; hyperparameter search walks it to resolve paths.
type Composite interface {
	Stages() []Stage
}

// Nested compositions report their terminal capability through these probes
// so a mis-assembled outer pipeline is rejected at construction rather than
// on first use.
type transformCapable interface{ CanTransform() bool }

type predictCapable interface{ CanPredict() bool }

func supportsTransform(est estimator.Estimator) bool {
	if c, ok := est.(transformCapable); ok {
		return c.CanTransform()
	}
	_, ok := est.(estimator.Transformer)

	return ok
}

func supportsPredict(est estimator.Estimator) bool {
	if c, ok := est.(predictCapable); ok {
		return c.CanPredict()
	}
	_, ok := est.(estimator.Predictor)

	return ok
}

func checkStage(st Stage) error {
	if st.Name == "" || strings.Contains(st.Name, PathSeparator) {
		return errors.Wrapf(ErrInvalidStageName, "%q", st.Name)
	}
	if st.Estimator == nil {
		return errors.Wrap(ErrNilEstimator, st.Name)
	}

	return nil
}

// validateComposition registers every stage path of the composition tree into
// a directed graph. Duplicate paths and estimator aliasing across stages are
// rejected here, before any data is touched.
func validateComposition(stages []Stage, sequential bool) error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	seen := make(map[estimator.Estimator]struct{})

	return registerStages(g, "", stages, sequential, seen)
}

func registerStages(g graph.Graph[string, string], prefix string, stages []Stage, sequential bool, seen map[estimator.Estimator]struct{}) error {
	prev := ""
	for _, st := range stages {
		path := st.Name
		if prefix != "" {
			path = prefix + PathSeparator + st.Name
		}

		err := g.AddVertex(path)
		if err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return errors.Wrap(ErrDuplicateStageName, path)
			}

			return errors.Wrapf(err, "unable to add stage %q", path)
		}

		if prefix != "" && (prev == "" || !sequential) {
			err = g.AddEdge(prefix, path)
			if err != nil {
				return errors.Wrapf(err, "unable to link stage %q", path)
			}
		}
		if sequential && prev != "" {
			err = g.AddEdge(prev, path)
			if err != nil {
				return errors.Wrapf(err, "unable to link stage %q", path)
			}
		}

		// Estimators held by value with slice or map fields are not map
		// keys; each stage also gets its own copy of such a value, so only
		// comparable estimators are tracked for aliasing.
		if reflect.TypeOf(st.Estimator).Comparable() {
			if _, ok := seen[st.Estimator]; ok {
				return errors.Wrap(ErrEstimatorReuse, path)
			}
			seen[st.Estimator] = struct{}{}
		}

		if comp, ok := st.Estimator.(Composite); ok {
			_, childSequential := st.Estimator.(*Pipeline)
			err = registerStages(g, path, comp.Stages(), childSequential, seen)
			if err != nil {
				return err
			}
		}

		prev = path
	}

	return nil
}
