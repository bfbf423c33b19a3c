package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// RecordAttendance is the use case for recording an attendance log.
// Persisting the log triggers risk scoring downstream through the
// published AttendanceRecorded event, so a scoring failure can never
// fail the recording itself.
type RecordAttendance struct {
	repo      port.AttendanceRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRecordAttendance creates a new RecordAttendance use case.
func NewRecordAttendance(repo port.AttendanceRepository, publisher port.EventPublisher, logger *slog.Logger) *RecordAttendance {
	return &RecordAttendance{repo: repo, publisher: publisher, logger: logger}
}

// Execute validates and persists the log, then publishes its creation event.
func (uc *RecordAttendance) Execute(ctx context.Context, req dto.RecordAttendanceRequest) (dto.AttendanceResponse, error) {
	log, err := model.NewAttendanceLog(req.StudentID, req.MarkedBy, req.Date, model.AttendanceStatus(req.Status), req.ClassName)
	if err != nil {
		return dto.AttendanceResponse{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	if err := uc.repo.Save(ctx, log); err != nil {
		return dto.AttendanceResponse{}, fmt.Errorf("failed to save attendance log: %w", err)
	}
	attendanceRecordedTotal.Inc()

	evts := log.ClearEvents()
	if len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Warn("failed to publish attendance events",
				slog.String("attendance_id", log.ID().String()),
				slog.String("error", err.Error()))
		}
	}

	return dto.AttendanceFromModel(log), nil
}
