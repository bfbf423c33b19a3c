package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/service"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

// ScoreStudent is the use case for running the risk scoring pipeline on
// one student: extract features, predict (model with rule fallback),
// persist the assessment, and fan out alerts on a high result.
type ScoreStudent struct {
	extractor   *service.FeatureExtractor
	predictor   port.RiskPredictor
	fallback    *service.RuleScorer
	assessments port.AssessmentRepository
	alerts      port.AlertRepository
	users       port.UserReader
	publisher   port.EventPublisher
	notifier    port.AlertNotifier
	logger      *slog.Logger
}

// NewScoreStudent creates a new ScoreStudent use case.
func NewScoreStudent(
	extractor *service.FeatureExtractor,
	predictor port.RiskPredictor,
	fallback *service.RuleScorer,
	assessments port.AssessmentRepository,
	alerts port.AlertRepository,
	users port.UserReader,
	publisher port.EventPublisher,
	notifier port.AlertNotifier,
	logger *slog.Logger,
) *ScoreStudent {
	return &ScoreStudent{
		extractor:   extractor,
		predictor:   predictor,
		fallback:    fallback,
		assessments: assessments,
		alerts:      alerts,
		users:       users,
		publisher:   publisher,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute runs the pipeline. Feature extraction and persistence failures
// abort the invocation with no partial state. Model failures do not: the
// rule scorer always produces a result. Event publishing and alert
// notification failures are logged but never fail a committed assessment.
func (uc *ScoreStudent) Execute(ctx context.Context, req dto.ScoreStudentRequest) (dto.AssessmentResponse, error) {
	if req.StudentID <= 0 {
		return dto.AssessmentResponse{}, fmt.Errorf("student ID is required")
	}

	// 1. Extract features over the scoring window.
	features, err := uc.extractor.Extract(ctx, req.StudentID, time.Now().UTC())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to extract features: %w", err)
	}

	// 2. Predict with the model; on any failure fall back to rule scoring.
	category, score, usedFallback := uc.predict(ctx, req.StudentID, features)

	// 3. Persist the assessment.
	assessment, err := model.NewRiskAssessment(req.StudentID, features, category, score, usedFallback)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}
	if err := uc.assessments.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	assessmentsTotal.WithLabelValues(category.String(), predictionSource(usedFallback)).Inc()

	// 4. Alert counselors on a high result, deduplicating per recipient.
	if assessment.IsHigh() {
		if err := uc.alertCounselors(ctx, assessment); err != nil {
			return dto.AssessmentResponse{}, err
		}
	}

	// 5. Publish domain events for the committed assessment.
	uc.publishEvents(ctx, assessment)

	return dto.AssessmentFromModel(assessment), nil
}

func (uc *ScoreStudent) predict(ctx context.Context, studentID int64, features valueobject.FeatureVector) (valueobject.RiskCategory, float64, bool) {
	prediction, err := uc.predictor.Predict(ctx, features)
	if err != nil {
		uc.logger.Warn("model prediction unavailable, using rule scorer",
			slog.Int64("student_id", studentID),
			slog.String("error", err.Error()))
		category, score := uc.fallback.Score(features)
		return category, score, true
	}
	return prediction.Category, prediction.Confidence, false
}

func (uc *ScoreStudent) alertCounselors(ctx context.Context, assessment *model.RiskAssessment) error {
	counselors, err := uc.users.Counselors(ctx)
	if err != nil {
		return fmt.Errorf("failed to list counselors: %w", err)
	}

	features := assessment.Features()
	message := fmt.Sprintf("Student risk score is %.0f%% - attendance %.0f%%, avg grade %.0f, incidents %d",
		assessment.Score(), features.AttendancePct, features.GradeAvg, features.IncidentCount)

	for _, c := range counselors {
		exists, err := uc.alerts.HasUnread(ctx, assessment.StudentID(), c.ID, model.AlertKindHighRisk)
		if err != nil {
			return fmt.Errorf("failed to check unread alerts: %w", err)
		}
		if exists {
			alertsSuppressedTotal.Inc()
			continue
		}

		alert, err := model.NewAlert(assessment.StudentID(), c.ID, model.AlertKindHighRisk, message)
		if err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
		if err := uc.alerts.Save(ctx, alert); err != nil {
			return fmt.Errorf("failed to save alert: %w", err)
		}
		alertsCreatedTotal.Inc()

		if err := uc.notifier.NotifyAlert(ctx, alert); err != nil {
			uc.logger.Warn("failed to notify alert",
				slog.String("alert_id", alert.ID().String()),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func (uc *ScoreStudent) publishEvents(ctx context.Context, assessment *model.RiskAssessment) {
	evts := assessment.ClearEvents()
	if len(evts) == 0 {
		return
	}
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.Warn("failed to publish assessment events",
			slog.String("assessment_id", assessment.ID().String()),
			slog.String("error", err.Error()))
	}
}

func predictionSource(usedFallback bool) string {
	if usedFallback {
		return "fallback"
	}
	return "model"
}
