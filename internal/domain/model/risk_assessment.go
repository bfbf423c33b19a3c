package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/event"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
)

// RiskAssessment is the aggregate root for a single risk scoring outcome.
// Assessments are append-only: each pipeline invocation creates exactly one,
// and past assessments are never mutated.
type RiskAssessment struct {
	events.EventCollector

	id           uuid.UUID
	studentID    int64
	score        float64
	category     valueobject.RiskCategory
	features     valueobject.FeatureVector
	usedFallback bool
	computedAt   time.Time
}

// NewRiskAssessment creates an assessment from a completed scoring run.
// It records a RiskAssessed event, plus HighRiskDetected when the category
// is high.
func NewRiskAssessment(
	studentID int64,
	features valueobject.FeatureVector,
	category valueobject.RiskCategory,
	score float64,
	usedFallback bool,
) (*RiskAssessment, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("student ID is required")
	}
	if category.IsZero() {
		return nil, fmt.Errorf("risk category is required")
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("risk score must be between 0 and 100, got %.2f", score)
	}

	a := &RiskAssessment{
		id:           uuid.New(),
		studentID:    studentID,
		score:        score,
		category:     category,
		features:     features,
		usedFallback: usedFallback,
		computedAt:   time.Now().UTC(),
	}

	a.Record(event.NewRiskAssessed(event.RiskAssessedPayload{
		AssessmentID:  a.id,
		StudentID:     a.studentID,
		Score:         a.score,
		Category:      a.category.String(),
		AttendancePct: a.features.AttendancePct,
		GradeAvg:      a.features.GradeAvg,
		IncidentCount: a.features.IncidentCount,
		UsedFallback:  a.usedFallback,
		ComputedAt:    a.computedAt,
	}))

	if a.category.Equal(valueobject.RiskCategoryHigh) {
		a.Record(event.NewHighRiskDetected(event.HighRiskDetectedPayload{
			AssessmentID: a.id,
			StudentID:    a.studentID,
			Score:        a.score,
			ComputedAt:   a.computedAt,
		}))
	}

	return a, nil
}

// ReconstructRiskAssessment rebuilds an assessment from persisted data.
// No validation, no events.
func ReconstructRiskAssessment(
	id uuid.UUID,
	studentID int64,
	score float64,
	category valueobject.RiskCategory,
	features valueobject.FeatureVector,
	usedFallback bool,
	computedAt time.Time,
) *RiskAssessment {
	return &RiskAssessment{
		id:           id,
		studentID:    studentID,
		score:        score,
		category:     category,
		features:     features,
		usedFallback: usedFallback,
		computedAt:   computedAt,
	}
}

// IsHigh reports whether this assessment landed in the high category.
func (a *RiskAssessment) IsHigh() bool {
	return a.category.Equal(valueobject.RiskCategoryHigh)
}

func (a *RiskAssessment) ID() uuid.UUID                          { return a.id }
func (a *RiskAssessment) StudentID() int64                       { return a.studentID }
func (a *RiskAssessment) Score() float64                         { return a.score }
func (a *RiskAssessment) Category() valueobject.RiskCategory     { return a.category }
func (a *RiskAssessment) Features() valueobject.FeatureVector    { return a.features }
func (a *RiskAssessment) UsedFallback() bool                     { return a.usedFallback }
func (a *RiskAssessment) ComputedAt() time.Time                  { return a.computedAt }
