// Package persist serializes estimators and fitted pipelines.
//
// Two boundaries are offered. Save and Load round-trip a whole estimator,
// pipeline included, through gob; a restored pipeline transforms and predicts
// identically to the original. SaveArray and LoadArray persist a single
// numeric array, for callers who prefer to keep only a model's raw parameter
// arrays at the cost of rebuilding the estimator themselves.
package persist

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
	"github.com/askiada/go-mlpipe/pkg/linear"
	"github.com/askiada/go-mlpipe/pkg/pipeline"
	"github.com/askiada/go-mlpipe/pkg/preprocess"
)

func init() {
	Register(&preprocess.StandardScaler{})
	Register(&preprocess.MinMaxScaler{})
	Register(&preprocess.PowerTransformer{})
	Register(&preprocess.PCA{})
	Register(&linear.Ridge{})
	Register(&linear.LogisticRegression{})
	Register(&pipeline.Pipeline{})
	Register(&pipeline.Union{})
}

// Register makes a concrete estimator type known to the codec. Built-in
// estimators are registered already; custom estimators must be registered
// before Save or Load sees them.
func Register(est estimator.Estimator) {
	gob.Register(est)
}

// Save writes the estimator to w.
func Save(w io.Writer, est estimator.Estimator) error {
	err := gob.NewEncoder(w).Encode(&est)

	return errors.Wrap(err, "unable to encode estimator")
}

// Load reads an estimator written by Save.
func Load(r io.Reader) (estimator.Estimator, error) {
	var est estimator.Estimator
	err := gob.NewDecoder(r).Decode(&est)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode estimator")
	}

	return est, nil
}

// SaveFile writes the estimator to a file.
func SaveFile(path string, est estimator.Estimator) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}

	err = Save(file, est)
	if err != nil {
		_ = file.Close()

		return err
	}

	return errors.Wrapf(file.Close(), "unable to close %s", path)
}

// LoadFile reads an estimator written by SaveFile.
func LoadFile(path string) (estimator.Estimator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	return Load(file)
}

// SaveArray writes a dense matrix to a file in gonum's binary format.
func SaveArray(path string, m *mat.Dense) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}

	_, err = m.MarshalBinaryTo(file)
	if err != nil {
		_ = file.Close()

		return errors.Wrap(err, "unable to encode array")
	}

	return errors.Wrapf(file.Close(), "unable to close %s", path)
}

// LoadArray reads a matrix written by SaveArray.
func LoadArray(path string) (*mat.Dense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	var m mat.Dense
	_, err = m.UnmarshalBinaryFrom(file)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode array")
	}

	return &m, nil
}
