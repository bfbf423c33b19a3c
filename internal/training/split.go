package training

import (
	"fmt"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions samples into train and test sets, holding
// out testFraction of each label class so the class distribution is
// preserved on both sides. Classes are iterated in sorted order and
// shuffled with a seeded generator, so the same inputs always produce
// the same split.
func StratifiedSplit(samples []Sample, testFraction float64, seed int64) (train, test []Sample, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v out of range (0, 1)", testFraction)
	}

	byLabel := make(map[string][]int)
	for i, s := range samples {
		byLabel[s.Label] = append(byLabel[s.Label], i)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rng := rand.New(rand.NewSource(seed))
	for _, label := range labels {
		indices := byLabel[label]
		if len(indices) < 2 {
			return nil, nil, fmt.Errorf("class %q has %d samples, need at least 2 to split", label, len(indices))
		}
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		holdout := int(float64(len(indices)) * testFraction)
		if holdout == 0 {
			holdout = 1
		}
		for _, idx := range indices[:holdout] {
			test = append(test, samples[idx])
		}
		for _, idx := range indices[holdout:] {
			train = append(train, samples[idx])
		}
	}
	return train, test, nil
}
