package service

import (
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

// RuleScorer is the deterministic rule-based scorer used whenever the trained
// model is unavailable. It always succeeds, which makes it the guaranteed
// availability path of the pipeline.
type RuleScorer struct{}

// NewRuleScorer creates a new RuleScorer.
func NewRuleScorer() *RuleScorer {
	return &RuleScorer{}
}

// Score computes the rule-based risk score and its category.
// Attendance below 60 adds 40 points, below 75 adds 20. A grade average
// below 40 adds 40 points, below 55 adds 20. Each incident adds 5. The
// total is clamped to 100.
func (s *RuleScorer) Score(features valueobject.FeatureVector) (valueobject.RiskCategory, float64) {
	score := 0.0

	switch {
	case features.AttendancePct < 60:
		score += 40
	case features.AttendancePct < 75:
		score += 20
	}

	switch {
	case features.GradeAvg < 40:
		score += 40
	case features.GradeAvg < 55:
		score += 20
	}

	score += float64(features.IncidentCount) * 5

	if score > 100 {
		score = 100
	}

	return valueobject.RiskCategoryFromScore(score), score
}
