// Package forest implements the random forest classifier behind the risk
// model artifact: training, inference and the gob serialization the serving
// pipeline loads.
package forest

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyForest is returned when inference is attempted on a forest with no
// trees, which indicates a corrupt or hand-built artifact.
var ErrEmptyForest = errors.New("forest: no trees")

// Node is one node of a decision tree. Internal nodes route samples with
// value <= Threshold to Left and the rest to Right. Leaves carry the
// weighted class counts observed during training.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
	Counts    []float64
}

func (n *Node) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a single decision tree of the forest.
type Tree struct {
	Root *Node
}

// proba returns the normalized class distribution at the leaf x lands in.
func (t *Tree) proba(x []float64, numClasses int) []float64 {
	n := t.Root
	for !n.isLeaf() {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}

	out := make([]float64, numClasses)
	copy(out, n.Counts)
	if total := floats.Sum(out); total > 0 {
		floats.Scale(1/total, out)
	}
	return out
}

// Forest is a trained random forest classifier over a fixed feature order.
// The zero value is not usable; obtain instances from Train or Load.
type Forest struct {
	Classes     []string
	NumFeatures int
	Trees       []*Tree
	Seed        int64
}

// PredictProba returns the class probability distribution for x, averaged
// over all trees. The result is index-aligned with Classes.
func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, ErrEmptyForest
	}
	if len(x) != f.NumFeatures {
		return nil, fmt.Errorf("forest: expected %d features, got %d", f.NumFeatures, len(x))
	}

	avg := make([]float64, len(f.Classes))
	for _, t := range f.Trees {
		floats.Add(avg, t.proba(x, len(f.Classes)))
	}
	floats.Scale(1/float64(len(f.Trees)), avg)
	return avg, nil
}

// Predict returns the most probable class for x and its probability.
func (f *Forest) Predict(x []float64) (string, float64, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return "", 0, err
	}

	best := floats.MaxIdx(proba)
	return f.Classes[best], proba[best], nil
}

// Encode writes the forest to w in gob format. Encoding the same trained
// forest always yields identical bytes, which is what makes training
// reproducibility testable.
func (f *Forest) Encode(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("forest: encode: %w", err)
	}
	return nil
}

// Save writes the forest artifact to the given path.
func (f *Forest) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("forest: create artifact: %w", err)
	}
	defer file.Close()

	if err := f.Encode(file); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("forest: close artifact: %w", err)
	}
	return nil
}

// Decode reads a forest from r.
func Decode(r io.Reader) (*Forest, error) {
	var f Forest
	if err := gob.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("forest: decode: %w", err)
	}
	if len(f.Trees) == 0 || len(f.Classes) == 0 {
		return nil, ErrEmptyForest
	}
	return &f, nil
}

// Load reads a forest artifact from the given path.
func Load(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("forest: open artifact: %w", err)
	}
	defer file.Close()

	return Decode(file)
}
