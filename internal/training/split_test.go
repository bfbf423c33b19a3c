package training_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/training"
)

func labelCounts(samples []training.Sample) map[string]int {
	counts := make(map[string]int)
	for _, s := range samples {
		counts[s.Label]++
	}
	return counts
}

func TestStratifiedSplit(t *testing.T) {
	samples := training.Generate(500, 42)
	total := labelCounts(samples)

	train, test, err := training.StratifiedSplit(samples, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, len(samples), len(train)+len(test))

	trainCounts := labelCounts(train)
	testCounts := labelCounts(test)
	for label, n := range total {
		holdout := int(float64(n) * 0.2)
		if holdout == 0 {
			holdout = 1
		}
		assert.Equal(t, holdout, testCounts[label], "test count for %s", label)
		assert.Equal(t, n-holdout, trainCounts[label], "train count for %s", label)
	}
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	samples := training.Generate(200, 3)

	train1, test1, err := training.StratifiedSplit(samples, 0.2, 42)
	require.NoError(t, err)
	train2, test2, err := training.StratifiedSplit(samples, 0.2, 42)
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)
}

func TestStratifiedSplitErrors(t *testing.T) {
	samples := training.Generate(100, 1)

	_, _, err := training.StratifiedSplit(samples, 0, 42)
	assert.ErrorContains(t, err, "out of range")

	_, _, err = training.StratifiedSplit(samples, 1.5, 42)
	assert.ErrorContains(t, err, "out of range")

	tiny := []training.Sample{{AttendancePct: 90, GradeAvg: 80, Label: "low"}}
	_, _, err = training.StratifiedSplit(tiny, 0.2, 42)
	assert.ErrorContains(t, err, "need at least 2")
}
