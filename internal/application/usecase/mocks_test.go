package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Mock implementations ---

type mockRecordReader struct {
	attendance []port.AttendanceRow
	grades     []float64
	incidents  int
	err        error
}

func (m *mockRecordReader) AttendanceRows(_ context.Context, _ int64, _ time.Time) ([]port.AttendanceRow, error) {
	return m.attendance, m.err
}

func (m *mockRecordReader) GradeScores(_ context.Context, _ int64, _ time.Time) ([]float64, error) {
	return m.grades, m.err
}

func (m *mockRecordReader) InterventionCount(_ context.Context, _ int64) (int, error) {
	return m.incidents, m.err
}

// attendanceFor builds rows with the given present/total split.
func attendanceFor(present, total int) []port.AttendanceRow {
	rows := make([]port.AttendanceRow, 0, total)
	for i := 0; i < total; i++ {
		status := "present"
		if i >= present {
			status = "absent"
		}
		rows = append(rows, port.AttendanceRow{Status: status, Date: time.Now()})
	}
	return rows
}

type mockPredictor struct {
	prediction valueobject.RiskPrediction
	err        error
	calls      int
}

func (m *mockPredictor) Predict(_ context.Context, _ valueobject.FeatureVector) (valueobject.RiskPrediction, error) {
	m.calls++
	if m.err != nil {
		return valueobject.RiskPrediction{}, m.err
	}
	return m.prediction, nil
}

type mockAssessmentRepository struct {
	saved     []*model.RiskAssessment
	saveFunc  func(ctx context.Context, assessment *model.RiskAssessment) error
	byStudent []*model.RiskAssessment
	highRisk  []*model.RiskAssessment
	lastLimit int
	findErr   error
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.RiskAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.saved = append(m.saved, assessment)
	return nil
}

func (m *mockAssessmentRepository) FindByStudent(_ context.Context, _ int64, limit int) ([]*model.RiskAssessment, error) {
	m.lastLimit = limit
	return m.byStudent, m.findErr
}

func (m *mockAssessmentRepository) FindHighRisk(_ context.Context, limit int) ([]*model.RiskAssessment, error) {
	m.lastLimit = limit
	return m.highRisk, m.findErr
}

type mockAlertRepository struct {
	saved       []*model.Alert
	saveFunc    func(ctx context.Context, alert *model.Alert) error
	unread      map[int64]bool // keyed on recipient id
	unreadErr   error
	inbox       []*model.Alert
	markReadErr error
	marked      []uuid.UUID
}

func (m *mockAlertRepository) Save(ctx context.Context, alert *model.Alert) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, alert)
	}
	m.saved = append(m.saved, alert)
	return nil
}

func (m *mockAlertRepository) HasUnread(_ context.Context, _ int64, recipientID int64, _ model.AlertKind) (bool, error) {
	if m.unreadErr != nil {
		return false, m.unreadErr
	}
	return m.unread[recipientID], nil
}

func (m *mockAlertRepository) FindUnreadByRecipient(_ context.Context, _ int64) ([]*model.Alert, error) {
	return m.inbox, nil
}

func (m *mockAlertRepository) MarkRead(_ context.Context, id uuid.UUID, _ int64) error {
	if m.markReadErr != nil {
		return m.markReadErr
	}
	m.marked = append(m.marked, id)
	return nil
}

type mockUserReader struct {
	counselors []port.Counselor
	err        error
}

func (m *mockUserReader) Counselors(_ context.Context) ([]port.Counselor, error) {
	return m.counselors, m.err
}

type mockEventPublisher struct {
	published []events.DomainEvent
	err       error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockAlertNotifier struct {
	notified []*model.Alert
	err      error
}

func (m *mockAlertNotifier) NotifyAlert(_ context.Context, alert *model.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.notified = append(m.notified, alert)
	return nil
}

type mockAttendanceRepository struct {
	saved    []*model.AttendanceLog
	saveFunc func(ctx context.Context, log *model.AttendanceLog) error
}

func (m *mockAttendanceRepository) Save(ctx context.Context, log *model.AttendanceLog) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, log)
	}
	m.saved = append(m.saved, log)
	return nil
}

var errBoom = fmt.Errorf("boom")
