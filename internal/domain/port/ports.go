package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
)

// ErrNotFound is returned by repositories when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// AttendanceRow is the slice of an attendance log the feature extractor needs.
type AttendanceRow struct {
	Status string
	Date   time.Time
}

// StudentRecordReader is the read port over the raw student records that
// feed feature extraction.
type StudentRecordReader interface {
	// AttendanceRows returns the attendance rows for a student on or after
	// the given date.
	AttendanceRows(ctx context.Context, studentID int64, since time.Time) ([]AttendanceRow, error)

	// GradeScores returns the grade scores for a student on or after the
	// given date.
	GradeScores(ctx context.Context, studentID int64, since time.Time) ([]float64, error)

	// InterventionCount returns the all-time number of intervention records
	// for a student.
	InterventionCount(ctx context.Context, studentID int64) (int, error)
}

// AttendanceRepository persists attendance logs.
type AttendanceRepository interface {
	Save(ctx context.Context, log *model.AttendanceLog) error
}

// AssessmentRepository persists risk assessments (append-only).
type AssessmentRepository interface {
	// Save inserts a new assessment. Assessments are never updated.
	Save(ctx context.Context, assessment *model.RiskAssessment) error

	// FindByStudent returns the most recent assessments for a student,
	// newest first.
	FindByStudent(ctx context.Context, studentID int64, limit int) ([]*model.RiskAssessment, error)

	// FindHighRisk returns the most recent high-category assessments,
	// newest first.
	FindHighRisk(ctx context.Context, limit int) ([]*model.RiskAssessment, error)
}

// AlertRepository persists alerts and answers the deduplication query.
type AlertRepository interface {
	Save(ctx context.Context, alert *model.Alert) error

	// HasUnread reports whether an unread alert already exists for the
	// exact (student, recipient, kind) triple.
	HasUnread(ctx context.Context, studentID, recipientID int64, kind model.AlertKind) (bool, error)

	// FindUnreadByRecipient returns a recipient's unread alerts, newest first.
	FindUnreadByRecipient(ctx context.Context, recipientID int64) ([]*model.Alert, error)

	// MarkRead marks an alert read. Returns ErrNotFound if no alert with
	// that id belongs to the recipient.
	MarkRead(ctx context.Context, id uuid.UUID, recipientID int64) error
}

// Counselor identifies an alert-eligible user.
type Counselor struct {
	ID int64
}

// UserReader exposes the user queries the pipeline depends on.
type UserReader interface {
	// Counselors returns every user holding the counselor role.
	Counselors(ctx context.Context) ([]Counselor, error)
}

// RiskPredictor classifies a feature vector using the trained model artifact.
// Any error (artifact missing, corrupt, or inference failure) means the
// prediction is unavailable and the caller must fall back to rule scoring.
type RiskPredictor interface {
	Predict(ctx context.Context, features valueobject.FeatureVector) (valueobject.RiskPrediction, error)
}

// EventPublisher publishes domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// AlertNotifier pushes a freshly created alert towards any live delivery
// channel (best-effort; failures must not fail the pipeline).
type AlertNotifier interface {
	NotifyAlert(ctx context.Context, alert *model.Alert) error
}
