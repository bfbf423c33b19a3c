package usecase

import (
	"context"
	"fmt"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

const defaultHistoryLimit = 10

// GetStudentRisk is the use case for reading a student's assessment history.
type GetStudentRisk struct {
	repo port.AssessmentRepository
}

// NewGetStudentRisk creates a new GetStudentRisk use case.
func NewGetStudentRisk(repo port.AssessmentRepository) *GetStudentRisk {
	return &GetStudentRisk{repo: repo}
}

// Execute returns the student's most recent assessments, newest first.
func (uc *GetStudentRisk) Execute(ctx context.Context, req dto.GetStudentRiskRequest) ([]dto.AssessmentResponse, error) {
	if req.StudentID <= 0 {
		return nil, fmt.Errorf("student ID is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	assessments, err := uc.repo.FindByStudent(ctx, req.StudentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessments: %w", err)
	}
	return dto.AssessmentsFromModels(assessments), nil
}

// ListHighRisk is the use case for the counselor dashboard view of
// recent high risk assessments.
type ListHighRisk struct {
	repo port.AssessmentRepository
}

// NewListHighRisk creates a new ListHighRisk use case.
func NewListHighRisk(repo port.AssessmentRepository) *ListHighRisk {
	return &ListHighRisk{repo: repo}
}

// Execute returns the most recent high-category assessments, newest first.
func (uc *ListHighRisk) Execute(ctx context.Context, limit int) ([]dto.AssessmentResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	assessments, err := uc.repo.FindHighRisk(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load high risk assessments: %w", err)
	}
	return dto.AssessmentsFromModels(assessments), nil
}
