package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/usecase"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

func assessmentFixture(t *testing.T, studentID int64, score float64) *model.RiskAssessment {
	t.Helper()
	a, err := model.NewRiskAssessment(
		studentID,
		valueobject.FeatureVector{AttendancePct: 50, GradeAvg: 40, IncidentCount: 2},
		valueobject.RiskCategoryFromScore(score),
		score,
		true,
	)
	require.NoError(t, err)
	return a
}

func TestGetStudentRisk_Execute(t *testing.T) {
	t.Run("returns mapped history with default limit", func(t *testing.T) {
		repo := &mockAssessmentRepository{byStudent: []*model.RiskAssessment{
			assessmentFixture(t, 7, 85),
			assessmentFixture(t, 7, 30),
		}}
		uc := usecase.NewGetStudentRisk(repo)

		resp, err := uc.Execute(context.Background(), dto.GetStudentRiskRequest{StudentID: 7})
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, 10, repo.lastLimit)
		assert.Equal(t, 85.0, resp[0].Score)
		assert.Equal(t, "high", resp[0].Category)
		assert.Equal(t, "low", resp[1].Category)
	})

	t.Run("honors an explicit limit", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := usecase.NewGetStudentRisk(repo)

		_, err := uc.Execute(context.Background(), dto.GetStudentRiskRequest{StudentID: 7, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, repo.lastLimit)
	})

	t.Run("rejects a missing student id", func(t *testing.T) {
		uc := usecase.NewGetStudentRisk(&mockAssessmentRepository{})
		_, err := uc.Execute(context.Background(), dto.GetStudentRiskRequest{})
		require.ErrorContains(t, err, "student ID is required")
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		uc := usecase.NewGetStudentRisk(&mockAssessmentRepository{findErr: errBoom})
		_, err := uc.Execute(context.Background(), dto.GetStudentRiskRequest{StudentID: 7})
		require.ErrorContains(t, err, "failed to load assessments")
	})
}

func TestListHighRisk_Execute(t *testing.T) {
	repo := &mockAssessmentRepository{highRisk: []*model.RiskAssessment{
		assessmentFixture(t, 7, 90),
		assessmentFixture(t, 8, 75),
	}}
	uc := usecase.NewListHighRisk(repo)

	resp, err := uc.Execute(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, 10, repo.lastLimit)
	assert.Equal(t, int64(7), resp[0].StudentID)
	assert.Equal(t, int64(8), resp[1].StudentID)
}
