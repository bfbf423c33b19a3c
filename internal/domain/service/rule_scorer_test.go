package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/service"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

func fv(attendance, grade float64, incidents int) valueobject.FeatureVector {
	return valueobject.FeatureVector{
		AttendancePct: attendance,
		GradeAvg:      grade,
		IncidentCount: incidents,
	}
}

func TestRuleScorerAttendanceBands(t *testing.T) {
	scorer := service.NewRuleScorer()

	cases := []struct {
		name       string
		attendance float64
		want       float64
	}{
		{"below 60 adds 40", 59.99, 40},
		{"at lower band edge", 0, 40},
		{"at 60 adds 20", 60, 20},
		{"just below 75 adds 20", 74.99, 20},
		{"at 75 adds nothing", 75, 0},
		{"full attendance adds nothing", 100, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, score := scorer.Score(fv(c.attendance, 80, 0))
			assert.Equal(t, c.want, score)
		})
	}
}

func TestRuleScorerGradeBands(t *testing.T) {
	scorer := service.NewRuleScorer()

	cases := []struct {
		grade float64
		want  float64
	}{
		{39.99, 40},
		{40, 20},
		{54.99, 20},
		{55, 0},
		{100, 0},
	}

	for _, c := range cases {
		_, score := scorer.Score(fv(95, c.grade, 0))
		assert.Equal(t, c.want, score, "grade %.2f", c.grade)
	}
}

func TestRuleScorerIncidentsMonotonic(t *testing.T) {
	scorer := service.NewRuleScorer()

	prev := -1.0
	for incidents := 0; incidents <= 30; incidents++ {
		_, score := scorer.Score(fv(95, 80, incidents))
		assert.GreaterOrEqual(t, score, prev, "incidents=%d", incidents)
		assert.LessOrEqual(t, score, 100.0)
		prev = score
	}

	// 5 points per incident before the clamp kicks in.
	_, score := scorer.Score(fv(95, 80, 3))
	assert.Equal(t, 15.0, score)
}

func TestRuleScorerClampAndCategory(t *testing.T) {
	scorer := service.NewRuleScorer()

	// 40 (attendance) + 40 (grade) + 25 (incidents) = 105, clamped to 100.
	cat, score := scorer.Score(fv(45, 35, 5))
	assert.Equal(t, 100.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryHigh))

	// Healthy student scores zero.
	cat, score = scorer.Score(fv(95, 80, 0))
	assert.Equal(t, 0.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryLow))
}

func TestRuleScorerCategoryBoundaries(t *testing.T) {
	scorer := service.NewRuleScorer()

	// 40 + 20 + 10 = 70: high is inclusive at the boundary.
	cat, score := scorer.Score(fv(59, 50, 2))
	assert.Equal(t, 70.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryHigh))

	// 40 + 20 + 5 = 65: still medium.
	cat, score = scorer.Score(fv(59, 50, 1))
	assert.Equal(t, 65.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryMedium))

	// 20 + 20 = 40: medium is inclusive at the boundary.
	cat, score = scorer.Score(fv(70, 50, 0))
	assert.Equal(t, 40.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryMedium))

	// 20 + 3*5 = 35: low.
	cat, score = scorer.Score(fv(70, 60, 3))
	assert.Equal(t, 35.0, score)
	assert.True(t, cat.Equal(valueobject.RiskCategoryLow))
}
