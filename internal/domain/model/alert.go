package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AlertKind classifies an alert sent to a counselor.
type AlertKind string

const (
	AlertKindHighRisk   AlertKind = "high_risk"
	AlertKindAttendance AlertKind = "attendance"
	AlertKindGradeDrop  AlertKind = "grade_drop"
	AlertKindEscalation AlertKind = "escalation"
)

// Valid reports whether the kind is one of the known alert kinds.
func (k AlertKind) Valid() bool {
	switch k {
	case AlertKindHighRisk, AlertKindAttendance, AlertKindGradeDrop, AlertKindEscalation:
		return true
	}
	return false
}

// Alert is a notification addressed to a single recipient about a student.
// Alerts are created unread; marking them read is the only mutation, and
// they are never deleted.
type Alert struct {
	id          uuid.UUID
	studentID   int64
	recipientID int64
	kind        AlertKind
	message     string
	isRead      bool
	createdAt   time.Time
}

// NewAlert creates an unread alert.
func NewAlert(studentID, recipientID int64, kind AlertKind, message string) (*Alert, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("student ID is required")
	}
	if recipientID <= 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid alert kind: %s", kind)
	}
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	return &Alert{
		id:          uuid.New(),
		studentID:   studentID,
		recipientID: recipientID,
		kind:        kind,
		message:     message,
		isRead:      false,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ReconstructAlert rebuilds an alert from persisted data.
func ReconstructAlert(
	id uuid.UUID,
	studentID, recipientID int64,
	kind AlertKind,
	message string,
	isRead bool,
	createdAt time.Time,
) *Alert {
	return &Alert{
		id:          id,
		studentID:   studentID,
		recipientID: recipientID,
		kind:        kind,
		message:     message,
		isRead:      isRead,
		createdAt:   createdAt,
	}
}

// MarkRead marks the alert as acknowledged by its recipient.
func (a *Alert) MarkRead() {
	a.isRead = true
}

func (a *Alert) ID() uuid.UUID      { return a.id }
func (a *Alert) StudentID() int64   { return a.studentID }
func (a *Alert) RecipientID() int64 { return a.recipientID }
func (a *Alert) Kind() AlertKind    { return a.kind }
func (a *Alert) Message() string    { return a.message }
func (a *Alert) IsRead() bool       { return a.isRead }
func (a *Alert) CreatedAt() time.Time { return a.createdAt }
