package preprocess

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/askiada/go-mlpipe/pkg/estimator"
)

// ErrInvalidComponents is returned when a PCA is configured with a component
// count outside [1, min(sample count, feature count)].
var ErrInvalidComponents = errors.New("components must be between 1 and the smaller input dimension")

// PCA projects features onto their leading principal components. The
// projection learned at fit time is frozen, so transforming held-out data
// uses the training basis.
type PCA struct {
	estimator.Base
	Components int

	mean []float64
	proj *mat.Dense
}

func NewPCA(components int) *PCA {
	return &PCA{Components: components}
}

func (p *PCA) Fit(x mat.Matrix, _ []float64) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrap(ErrEmptyInput, "pca")
	}
	// The principal component basis has min(rows, cols) columns, so wide
	// inputs cap the component count at the row count.
	maxComponents := cols
	if rows < cols {
		maxComponents = rows
	}
	if p.Components < 1 || p.Components > maxComponents {
		return errors.Wrapf(ErrInvalidComponents, "components %d, rows %d, features %d", p.Components, rows, cols)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return errors.New("unable to compute principal components")
	}
	var vec mat.Dense
	pc.VectorsTo(&vec)
	p.proj = mat.DenseCopyOf(vec.Slice(0, cols, 0, p.Components))

	p.mean = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		p.mean[j] = stat.Mean(col, nil)
	}
	p.SetFitted()

	return nil
}

func (p *PCA) Transform(x mat.Matrix) (mat.Matrix, error) {
	if !p.Fitted() {
		return nil, errors.Wrap(estimator.ErrNotFitted, "pca")
	}
	rows, cols := x.Dims()
	if cols != len(p.mean) {
		return nil, &estimator.ShapeMismatchError{
			Name: "pca",
			Axis: estimator.Columns,
			Want: len(p.mean),
			Got:  cols,
		}
	}

	centered := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			centered.Set(i, j, x.At(i, j)-p.mean[j])
		}
	}

	var out mat.Dense
	out.Mul(centered, p.proj)

	return &out, nil
}

func (p *PCA) Params() map[string]any {
	return map[string]any{"components": p.Components}
}

func (p *PCA) SetParam(name string, value any) error {
	if name != "components" {
		return errors.Wrap(estimator.ErrUnknownParameter, name)
	}
	components, ok := value.(int)
	if !ok {
		return errors.Errorf("components: want int, got %T", value)
	}
	p.Components = components

	return nil
}

func (p *PCA) CloneEstimator() estimator.Estimator {
	return &PCA{Components: p.Components}
}

type pcaGob struct {
	Components int
	Mean       []float64
	Proj       []byte
	Trained    bool
}

func (p *PCA) GobEncode() ([]byte, error) {
	payload := pcaGob{Components: p.Components, Mean: p.mean, Trained: p.Fitted()}
	if p.proj != nil {
		raw, err := p.proj.MarshalBinary()
		if err != nil {
			return nil, errors.Wrap(err, "unable to encode pca projection")
		}
		payload.Proj = raw
	}

	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(payload)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode pca")
	}

	return buf.Bytes(), nil
}

func (p *PCA) GobDecode(data []byte) error {
	var payload pcaGob
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&payload)
	if err != nil {
		return errors.Wrap(err, "unable to decode pca")
	}

	p.Components = payload.Components
	p.mean = payload.Mean
	p.proj = nil
	if len(payload.Proj) > 0 {
		var proj mat.Dense
		err = proj.UnmarshalBinary(payload.Proj)
		if err != nil {
			return errors.Wrap(err, "unable to decode pca projection")
		}
		p.proj = &proj
	}
	p.Trained = payload.Trained

	return nil
}
