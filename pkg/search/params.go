package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/pipeline"
)

// UnknownParameterPathError reports a parameter path that does not resolve to
// a stage and parameter of the composition.
type UnknownParameterPathError struct {
	Path string
}

func (e *UnknownParameterPathError) Error() string {
	return fmt.Sprintf("unknown parameter path %q", e.Path)
}

// SetPath resolves a path through nested compositions and sets the leaf
// parameter on the estimator it addresses.
func SetPath(root pipeline.Composite, path string, value any) error {
	return setPath(root, strings.Split(path, pipeline.PathSeparator), path, value)
}

func setPath(node pipeline.Composite, segments []string, full string, value any) error {
	if len(segments) < 2 {
		return &UnknownParameterPathError{Path: full}
	}

	for _, st := range node.Stages() {
		if st.Name != segments[0] {
			continue
		}

		if comp, ok := st.Estimator.(pipeline.Composite); ok {
			return setPath(comp, segments[1:], full, value)
		}

		if len(segments) != 2 {
			return &UnknownParameterPathError{Path: full}
		}
		setter, ok := st.Estimator.(estimator.ParamSetter)
		if !ok {
			return &UnknownParameterPathError{Path: full}
		}
		err := setter.SetParam(segments[1], value)
		if errors.Is(err, estimator.ErrUnknownParameter) {
			return &UnknownParameterPathError{Path: full}
		}

		return errors.Wrapf(err, "path %q", full)
	}

	return &UnknownParameterPathError{Path: full}
}

// Apply sets every parameter of the assignment, paths in sorted order.
func Apply(root pipeline.Composite, assignment Assignment) error {
	paths := make([]string, 0, len(assignment))
	for path := range assignment {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		err := SetPath(root, path, assignment[path])
		if err != nil {
			return err
		}
	}

	return nil
}

// Paths enumerates every reachable parameter path of the composition tree,
// stages in declared order, parameter names sorted within a stage.
func Paths(root pipeline.Composite) []string {
	var out []string
	walkPaths(root, "", &out)

	return out
}

func walkPaths(node pipeline.Composite, prefix string, out *[]string) {
	for _, st := range node.Stages() {
		path := st.Name
		if prefix != "" {
			path = prefix + pipeline.PathSeparator + st.Name
		}

		if comp, ok := st.Estimator.(pipeline.Composite); ok {
			walkPaths(comp, path, out)

			continue
		}

		getter, ok := st.Estimator.(estimator.ParamGetter)
		if !ok {
			continue
		}
		names := make([]string, 0)
		for name := range getter.Params() {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			*out = append(*out, path+pipeline.PathSeparator+name)
		}
	}
}
