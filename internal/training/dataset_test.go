package training_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/training"
)

func TestGenerate(t *testing.T) {
	samples := training.Generate(500, 42)
	require.Len(t, samples, 500)

	counts := make(map[string]int)
	for _, s := range samples {
		counts[s.Label]++

		assert.GreaterOrEqual(t, s.AttendancePct, 0.0)
		assert.LessOrEqual(t, s.AttendancePct, 100.0)
		assert.GreaterOrEqual(t, s.GradeAvg, 0.0)
		assert.LessOrEqual(t, s.GradeAvg, 100.0)
		assert.GreaterOrEqual(t, s.Incidents, 0)
		assert.LessOrEqual(t, s.Incidents, 7)
	}

	// Profile draw probabilities are 50/30/20, allow generous slack.
	assert.InDelta(t, 250, counts["low"], 60)
	assert.InDelta(t, 150, counts["medium"], 60)
	assert.InDelta(t, 100, counts["high"], 50)
}

func TestGenerateDeterministic(t *testing.T) {
	a := training.Generate(100, 7)
	b := training.Generate(100, 7)
	assert.Equal(t, a, b)

	c := training.Generate(100, 8)
	assert.NotEqual(t, a, c)
}

func TestCSVRoundTrip(t *testing.T) {
	samples := training.Generate(50, 1)

	var buf bytes.Buffer
	require.NoError(t, training.WriteCSV(&buf, samples))

	got, err := training.ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestReadCSVRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"wrong header":   "a,b,c,d\n90,80,0,low\n",
		"bad attendance": "attendance_pct,grade_avg,incidents,risk_label\noops,80,0,low\n",
		"bad incidents":  "attendance_pct,grade_avg,incidents,risk_label\n90,80,x,low\n",
		"empty label":    "attendance_pct,grade_avg,incidents,risk_label\n90,80,0,\n",
		"short row":      "attendance_pct,grade_avg,incidents,risk_label\n90,80,0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := training.ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestFeaturesAndLabels(t *testing.T) {
	samples := []training.Sample{
		{AttendancePct: 95, GradeAvg: 80, Incidents: 0, Label: "low"},
		{AttendancePct: 45, GradeAvg: 35, Incidents: 5, Label: "high"},
	}
	features, labels := training.FeaturesAndLabels(samples)
	assert.Equal(t, [][]float64{{95, 80, 0}, {45, 35, 5}}, features)
	assert.Equal(t, []string{"low", "high"}, labels)
}
