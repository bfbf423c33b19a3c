package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
)

// ScoreStudentRequest is the input DTO for the ScoreStudent use case.
type ScoreStudentRequest struct {
	StudentID int64 `json:"student_id"`
}

// AssessmentResponse is the output DTO for a risk assessment.
type AssessmentResponse struct {
	ID            uuid.UUID `json:"id"`
	StudentID     int64     `json:"student_id"`
	Score         float64   `json:"score"`
	Category      string    `json:"category"`
	AttendancePct float64   `json:"attendance_pct"`
	GradeAvg      float64   `json:"grade_avg"`
	IncidentCount int       `json:"incident_count"`
	UsedFallback  bool      `json:"used_fallback"`
	ComputedAt    time.Time `json:"computed_at"`
}

// AssessmentFromModel maps a risk assessment aggregate to its response DTO.
func AssessmentFromModel(a *model.RiskAssessment) AssessmentResponse {
	features := a.Features()
	return AssessmentResponse{
		ID:            a.ID(),
		StudentID:     a.StudentID(),
		Score:         a.Score(),
		Category:      a.Category().String(),
		AttendancePct: features.AttendancePct,
		GradeAvg:      features.GradeAvg,
		IncidentCount: features.IncidentCount,
		UsedFallback:  a.UsedFallback(),
		ComputedAt:    a.ComputedAt(),
	}
}

// AssessmentsFromModels maps a slice of assessments.
func AssessmentsFromModels(assessments []*model.RiskAssessment) []AssessmentResponse {
	out := make([]AssessmentResponse, len(assessments))
	for i, a := range assessments {
		out[i] = AssessmentFromModel(a)
	}
	return out
}

// GetStudentRiskRequest is the input DTO for retrieving a student's
// assessment history.
type GetStudentRiskRequest struct {
	StudentID int64 `json:"student_id"`
	Limit     int   `json:"limit"`
}
