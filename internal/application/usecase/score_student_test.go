package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/usecase"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/event"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/service"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

type scoreStudentDeps struct {
	records     *mockRecordReader
	predictor   *mockPredictor
	assessments *mockAssessmentRepository
	alerts      *mockAlertRepository
	users       *mockUserReader
	publisher   *mockEventPublisher
	notifier    *mockAlertNotifier
}

func newScoreStudent(deps scoreStudentDeps) (*usecase.ScoreStudent, scoreStudentDeps) {
	if deps.records == nil {
		deps.records = &mockRecordReader{}
	}
	if deps.predictor == nil {
		deps.predictor = &mockPredictor{err: errBoom}
	}
	if deps.assessments == nil {
		deps.assessments = &mockAssessmentRepository{}
	}
	if deps.alerts == nil {
		deps.alerts = &mockAlertRepository{}
	}
	if deps.users == nil {
		deps.users = &mockUserReader{}
	}
	if deps.publisher == nil {
		deps.publisher = &mockEventPublisher{}
	}
	if deps.notifier == nil {
		deps.notifier = &mockAlertNotifier{}
	}
	uc := usecase.NewScoreStudent(
		service.NewFeatureExtractor(deps.records),
		deps.predictor,
		service.NewRuleScorer(),
		deps.assessments,
		deps.alerts,
		deps.users,
		deps.publisher,
		deps.notifier,
		discardLogger(),
	)
	return uc, deps
}

func TestScoreStudent_FallbackHighRisk(t *testing.T) {
	// 45% attendance, grade 35, 5 incidents: fallback scores 40+40+25
	// clamped to 100, category high.
	uc, deps := newScoreStudent(scoreStudentDeps{
		records: &mockRecordReader{
			attendance: attendanceFor(9, 20),
			grades:     []float64{35},
			incidents:  5,
		},
		users: &mockUserReader{counselors: []port.Counselor{{ID: 21}, {ID: 22}}},
	})

	resp, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	assert.Equal(t, 100.0, resp.Score)
	assert.Equal(t, "high", resp.Category)
	assert.True(t, resp.UsedFallback)
	assert.Equal(t, 45.0, resp.AttendancePct)
	assert.Equal(t, 35.0, resp.GradeAvg)
	assert.Equal(t, 5, resp.IncidentCount)

	require.Len(t, deps.assessments.saved, 1)
	require.Len(t, deps.alerts.saved, 2)
	msg := deps.alerts.saved[0].Message()
	assert.Contains(t, msg, "risk score is 100%")
	assert.Contains(t, msg, "attendance 45%")
	assert.Contains(t, msg, "avg grade 35")
	assert.Contains(t, msg, "incidents 5")
	assert.Len(t, deps.notifier.notified, 2)
}

func TestScoreStudent_FallbackLowRiskNoAlerts(t *testing.T) {
	// 95% attendance, grade 80, no incidents: fallback scores 0, low.
	uc, deps := newScoreStudent(scoreStudentDeps{
		records: &mockRecordReader{
			attendance: attendanceFor(19, 20),
			grades:     []float64{80},
		},
		users: &mockUserReader{counselors: []port.Counselor{{ID: 21}}},
	})

	resp, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.Score)
	assert.Equal(t, "low", resp.Category)
	assert.True(t, resp.UsedFallback)
	assert.Len(t, deps.assessments.saved, 1)
	assert.Empty(t, deps.alerts.saved)
	assert.Empty(t, deps.notifier.notified)
}

func TestScoreStudent_ModelPrediction(t *testing.T) {
	uc, deps := newScoreStudent(scoreStudentDeps{
		records: &mockRecordReader{
			attendance: attendanceFor(19, 20),
			grades:     []float64{80},
		},
		predictor: &mockPredictor{prediction: valueobject.RiskPrediction{
			Category:   valueobject.RiskCategoryLow,
			Confidence: 92.5,
		}},
	})

	resp, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	assert.Equal(t, 92.5, resp.Score)
	assert.Equal(t, "low", resp.Category)
	assert.False(t, resp.UsedFallback)
	assert.Equal(t, 1, deps.predictor.calls)
}

func TestScoreStudent_ModelFailureEqualsAbsence(t *testing.T) {
	records := &mockRecordReader{
		attendance: attendanceFor(9, 20),
		grades:     []float64{35},
		incidents:  5,
	}

	ucErr, _ := newScoreStudent(scoreStudentDeps{
		records:   records,
		predictor: &mockPredictor{err: errBoom},
	})
	fromErr, err := ucErr.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	assert.Equal(t, 100.0, fromErr.Score)
	assert.Equal(t, "high", fromErr.Category)
	assert.True(t, fromErr.UsedFallback)
}

func TestScoreStudent_DeduplicatesUnreadAlerts(t *testing.T) {
	uc, deps := newScoreStudent(scoreStudentDeps{
		records: &mockRecordReader{
			attendance: attendanceFor(9, 20),
			grades:     []float64{35},
			incidents:  5,
		},
		users:  &mockUserReader{counselors: []port.Counselor{{ID: 21}, {ID: 22}}},
		alerts: &mockAlertRepository{unread: map[int64]bool{21: true}},
	})

	_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	require.Len(t, deps.alerts.saved, 1)
	assert.Equal(t, int64(22), deps.alerts.saved[0].RecipientID())
}

func TestScoreStudent_PublishesEvents(t *testing.T) {
	uc, deps := newScoreStudent(scoreStudentDeps{
		records: &mockRecordReader{
			attendance: attendanceFor(9, 20),
			grades:     []float64{35},
			incidents:  5,
		},
	})

	_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
	require.NoError(t, err)

	require.Len(t, deps.publisher.published, 2)
	assert.Equal(t, event.EventTypeRiskAssessed, deps.publisher.published[0].EventType())
	assert.Equal(t, event.EventTypeHighRiskDetected, deps.publisher.published[1].EventType())
}

func TestScoreStudent_NonFatalFailures(t *testing.T) {
	t.Run("publish failure does not fail the invocation", func(t *testing.T) {
		uc, deps := newScoreStudent(scoreStudentDeps{
			records:   &mockRecordReader{attendance: attendanceFor(19, 20), grades: []float64{80}},
			publisher: &mockEventPublisher{err: errBoom},
		})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
		require.NoError(t, err)
		assert.Len(t, deps.assessments.saved, 1)
	})

	t.Run("notifier failure does not fail the invocation", func(t *testing.T) {
		uc, deps := newScoreStudent(scoreStudentDeps{
			records:  &mockRecordReader{attendance: attendanceFor(9, 20), grades: []float64{35}, incidents: 5},
			users:    &mockUserReader{counselors: []port.Counselor{{ID: 21}}},
			notifier: &mockAlertNotifier{err: errBoom},
		})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
		require.NoError(t, err)
		assert.Len(t, deps.alerts.saved, 1)
	})
}

func TestScoreStudent_FatalFailures(t *testing.T) {
	t.Run("feature extraction failure aborts with nothing persisted", func(t *testing.T) {
		uc, deps := newScoreStudent(scoreStudentDeps{
			records: &mockRecordReader{err: errBoom},
		})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
		require.ErrorContains(t, err, "failed to extract features")
		assert.Empty(t, deps.assessments.saved)
		assert.Empty(t, deps.alerts.saved)
	})

	t.Run("assessment save failure aborts", func(t *testing.T) {
		uc, deps := newScoreStudent(scoreStudentDeps{
			records: &mockRecordReader{attendance: attendanceFor(19, 20), grades: []float64{80}},
			assessments: &mockAssessmentRepository{saveFunc: func(context.Context, *model.RiskAssessment) error {
				return errBoom
			}},
		})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
		require.ErrorContains(t, err, "failed to save assessment")
		assert.Empty(t, deps.alerts.saved)
	})

	t.Run("counselor lookup failure aborts alert fan-out", func(t *testing.T) {
		uc, deps := newScoreStudent(scoreStudentDeps{
			records: &mockRecordReader{attendance: attendanceFor(9, 20), grades: []float64{35}, incidents: 5},
			users:   &mockUserReader{err: errBoom},
		})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 7})
		require.ErrorContains(t, err, "failed to list counselors")
		assert.Empty(t, deps.alerts.saved)
	})

	t.Run("invalid student id", func(t *testing.T) {
		uc, _ := newScoreStudent(scoreStudentDeps{})
		_, err := uc.Execute(context.Background(), dto.ScoreStudentRequest{StudentID: 0})
		require.ErrorContains(t, err, "student ID is required")
	})
}
