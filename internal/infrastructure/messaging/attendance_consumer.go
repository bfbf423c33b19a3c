package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/event"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/kafka"
)

// StudentScorer is the slice of the scoring use case the consumer needs.
type StudentScorer interface {
	Execute(ctx context.Context, req dto.ScoreStudentRequest) (dto.AssessmentResponse, error)
}

// AttendanceConsumer triggers risk scoring whenever an attendance log is
// created. Scoring failures are logged and the message committed anyway:
// a broken scoring path must never wedge the attendance stream, and the
// next attendance event rescores the student.
type AttendanceConsumer struct {
	scorer StudentScorer
	logger *slog.Logger
}

// NewAttendanceConsumer creates the consumer-side handler.
func NewAttendanceConsumer(scorer StudentScorer, logger *slog.Logger) *AttendanceConsumer {
	return &AttendanceConsumer{scorer: scorer, logger: logger}
}

// Handle decodes an attendance event and scores the student.
func (c *AttendanceConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return fmt.Errorf("failed to decode event envelope: %w", err)
	}

	// Only creation events trigger scoring.
	if envelope.EventType != event.EventTypeAttendanceRecorded {
		c.logger.Debug("skipping event", slog.String("event_type", envelope.EventType))
		return nil
	}

	var payload event.AttendanceRecordedPayload
	if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
		return fmt.Errorf("failed to decode attendance payload: %w", err)
	}

	assessment, err := c.scorer.Execute(ctx, dto.ScoreStudentRequest{StudentID: payload.StudentID})
	if err != nil {
		c.logger.Error("risk scoring failed",
			slog.Int64("student_id", payload.StudentID),
			slog.String("error", err.Error()))
		return nil
	}

	c.logger.Info("student scored",
		slog.Int64("student_id", payload.StudentID),
		slog.String("category", assessment.Category),
		slog.Float64("score", assessment.Score),
		slog.Bool("used_fallback", assessment.UsedFallback))
	return nil
}
