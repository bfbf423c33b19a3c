package forest_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/forest"
)

// separableDataset builds three well-separated clusters so a small forest
// can classify them perfectly.
func separableDataset(n int, seed int64) ([][]float64, []string) {
	rng := rand.New(rand.NewSource(seed))

	var features [][]float64
	var labels []string
	centers := map[string][3]float64{
		"low":    {90, 80, 0},
		"medium": {70, 50, 2},
		"high":   {45, 30, 6},
	}

	for _, label := range []string{"low", "medium", "high"} {
		c := centers[label]
		for i := 0; i < n; i++ {
			features = append(features, []float64{
				c[0] + rng.Float64()*4 - 2,
				c[1] + rng.Float64()*4 - 2,
				c[2],
			})
			labels = append(labels, label)
		}
	}
	return features, labels
}

func TestTrainValidation(t *testing.T) {
	_, err := forest.Train(nil, nil, forest.TrainConfig{})
	assert.ErrorContains(t, err, "no training samples")

	_, err = forest.Train([][]float64{{1, 2, 3}}, []string{"a", "b"}, forest.TrainConfig{})
	assert.ErrorContains(t, err, "labels")

	_, err = forest.Train([][]float64{{1, 2, 3}, {1, 2}}, []string{"a", "b"}, forest.TrainConfig{})
	assert.ErrorContains(t, err, "expected 3")
}

func TestTrainAndPredict(t *testing.T) {
	features, labels := separableDataset(40, 1)

	f, err := forest.Train(features, labels, forest.TrainConfig{
		NumTrees:        25,
		MaxDepth:        8,
		Seed:            42,
		BalancedWeights: true,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"high", "low", "medium"}, f.Classes)
	assert.Equal(t, 3, f.NumFeatures)
	assert.Len(t, f.Trees, 25)

	cases := []struct {
		x    []float64
		want string
	}{
		{[]float64{95, 80, 0}, "low"},
		{[]float64{65, 50, 2}, "medium"},
		{[]float64{45, 35, 5}, "high"},
	}
	for _, c := range cases {
		got, proba, err := f.Predict(c.x)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "features %v", c.x)
		assert.Greater(t, proba, 0.5)
	}
}

func TestPredictProbaDistribution(t *testing.T) {
	features, labels := separableDataset(30, 2)

	f, err := forest.Train(features, labels, forest.TrainConfig{NumTrees: 10, Seed: 7})
	require.NoError(t, err)

	proba, err := f.PredictProba([]float64{70, 50, 2})
	require.NoError(t, err)
	require.Len(t, proba, 3)

	sum := 0.0
	for _, p := range proba {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPredictFeatureCountMismatch(t *testing.T) {
	features, labels := separableDataset(10, 3)
	f, err := forest.Train(features, labels, forest.TrainConfig{NumTrees: 5, Seed: 1})
	require.NoError(t, err)

	_, _, err = f.Predict([]float64{1, 2})
	assert.ErrorContains(t, err, "expected 3 features")
}

func TestTrainDeterminism(t *testing.T) {
	features, labels := separableDataset(30, 4)
	cfg := forest.TrainConfig{NumTrees: 20, MaxDepth: 6, Seed: 42, BalancedWeights: true}

	f1, err := forest.Train(features, labels, cfg)
	require.NoError(t, err)
	f2, err := forest.Train(features, labels, cfg)
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, f1.Encode(&buf1))
	require.NoError(t, f2.Encode(&buf2))

	assert.Equal(t, buf1.Bytes(), buf2.Bytes(), "same seed and dataset must produce identical artifact bytes")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	features, labels := separableDataset(20, 5)
	f, err := forest.Train(features, labels, forest.TrainConfig{NumTrees: 8, Seed: 9})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "risk_model.gob")
	require.NoError(t, f.Save(path))

	loaded, err := forest.Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.Classes, loaded.Classes)
	assert.Len(t, loaded.Trees, 8)

	x := []float64{45, 30, 6}
	wantLabel, wantProba, err := f.Predict(x)
	require.NoError(t, err)
	gotLabel, gotProba, err := loaded.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, wantLabel, gotLabel)
	assert.Equal(t, wantProba, gotProba)
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	_, err := forest.Load(filepath.Join(t.TempDir(), "absent.gob"))
	assert.Error(t, err)

	_, err = forest.Decode(bytes.NewReader([]byte("not a gob artifact")))
	assert.Error(t, err)
}
