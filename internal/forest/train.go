package forest

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// TrainConfig holds the forest hyperparameters. Zero values fall back to the
// defaults the risk model is trained with.
type TrainConfig struct {
	NumTrees    int   // default 100
	MaxDepth    int   // default 10
	MinLeaf     int   // minimum samples per leaf, default 1
	MaxFeatures int   // features considered per split, default sqrt(total)
	Seed        int64 // rng seed for bootstrap and feature sampling

	// BalancedWeights offsets label skew by weighting each sample
	// inversely to its class frequency.
	BalancedWeights bool
}

func (cfg TrainConfig) withDefaults(numFeatures int) TrainConfig {
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 1
	}
	if cfg.MaxFeatures <= 0 || cfg.MaxFeatures > numFeatures {
		cfg.MaxFeatures = int(math.Sqrt(float64(numFeatures)))
		if cfg.MaxFeatures < 1 {
			cfg.MaxFeatures = 1
		}
	}
	return cfg
}

// Train fits a random forest on the given samples. Labels are mapped to
// sorted class order so that identical inputs and seed yield an identical,
// byte-reproducible forest. Trees are grown sequentially from a single
// seeded rng; do not parallelize tree construction without revisiting the
// determinism guarantee.
func Train(features [][]float64, labels []string, cfg TrainConfig) (*Forest, error) {
	if len(features) == 0 {
		return nil, fmt.Errorf("forest: no training samples")
	}
	if len(features) != len(labels) {
		return nil, fmt.Errorf("forest: %d feature rows but %d labels", len(features), len(labels))
	}

	numFeatures := len(features[0])
	for i, row := range features {
		if len(row) != numFeatures {
			return nil, fmt.Errorf("forest: row %d has %d features, expected %d", i, len(row), numFeatures)
		}
	}

	cfg = cfg.withDefaults(numFeatures)

	classes := uniqueSorted(labels)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	y := make([]int, len(labels))
	for i, label := range labels {
		y[i] = classIndex[label]
	}

	weights := sampleWeights(y, len(classes), cfg.BalancedWeights)

	rng := rand.New(rand.NewSource(cfg.Seed))
	b := &builder{
		x:          features,
		y:          y,
		weights:    weights,
		numClasses: len(classes),
		cfg:        cfg,
		rng:        rng,
	}

	trees := make([]*Tree, cfg.NumTrees)
	for i := range trees {
		sample := make([]int, len(features))
		for j := range sample {
			sample[j] = rng.Intn(len(features))
		}
		trees[i] = &Tree{Root: b.build(sample, 0)}
	}

	return &Forest{
		Classes:     classes,
		NumFeatures: numFeatures,
		Trees:       trees,
		Seed:        cfg.Seed,
	}, nil
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// sampleWeights returns per-sample weights. With balancing enabled each
// class contributes equal total weight: w = n / (k * count(class)).
func sampleWeights(y []int, numClasses int, balanced bool) []float64 {
	weights := make([]float64, len(y))
	if !balanced {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	counts := make([]float64, numClasses)
	for _, c := range y {
		counts[c]++
	}

	n := float64(len(y))
	k := float64(numClasses)
	for i, c := range y {
		weights[i] = n / (k * counts[c])
	}
	return weights
}

type builder struct {
	x          [][]float64
	y          []int
	weights    []float64
	numClasses int
	cfg        TrainConfig
	rng        *rand.Rand
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
	found     bool
}

func (b *builder) build(indices []int, depth int) *Node {
	counts := b.classCounts(indices)

	if depth >= b.cfg.MaxDepth || len(indices) < 2*b.cfg.MinLeaf || gini(counts) == 0 {
		return &Node{Counts: counts}
	}

	best := b.bestSplit(indices, gini(counts))
	if !best.found {
		return &Node{Counts: counts}
	}

	var left, right []int
	for _, i := range indices {
		if b.x[i][best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.cfg.MinLeaf || len(right) < b.cfg.MinLeaf {
		return &Node{Counts: counts}
	}

	return &Node{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *builder) classCounts(indices []int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, i := range indices {
		counts[b.y[i]] += b.weights[i]
	}
	return counts
}

// bestSplit scans a random subset of features for the weighted-gini-optimal
// threshold. Candidate thresholds are midpoints between consecutive distinct
// feature values.
func (b *builder) bestSplit(indices []int, parentImpurity float64) split {
	best := split{impurity: parentImpurity}

	for _, feature := range b.rng.Perm(len(b.x[0]))[:b.cfg.MaxFeatures] {
		ordered := make([]int, len(indices))
		copy(ordered, indices)
		sort.Slice(ordered, func(i, j int) bool {
			return b.x[ordered[i]][feature] < b.x[ordered[j]][feature]
		})

		leftCounts := make([]float64, b.numClasses)
		rightCounts := b.classCounts(ordered)
		totalWeight := floats.Sum(rightCounts)

		for pos := 0; pos < len(ordered)-1; pos++ {
			i := ordered[pos]
			leftCounts[b.y[i]] += b.weights[i]
			rightCounts[b.y[i]] -= b.weights[i]

			cur, next := b.x[i][feature], b.x[ordered[pos+1]][feature]
			if cur == next {
				continue
			}

			leftWeight := floats.Sum(leftCounts)
			rightWeight := totalWeight - leftWeight
			if leftWeight == 0 || rightWeight == 0 {
				continue
			}

			impurity := (leftWeight*gini(leftCounts) + rightWeight*gini(rightCounts)) / totalWeight
			if impurity < best.impurity-1e-12 {
				best = split{
					feature:   feature,
					threshold: (cur + next) / 2,
					impurity:  impurity,
					found:     true,
				}
			}
		}
	}

	return best
}

// gini computes the Gini impurity of a weighted class count vector.
func gini(counts []float64) float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return 0
	}

	sumSquares := 0.0
	for _, c := range counts {
		p := c / total
		sumSquares += p * p
	}
	return 1 - sumSquares
}
