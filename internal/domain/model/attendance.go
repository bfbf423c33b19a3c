package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/event"
	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
)

// AttendanceStatus is the outcome recorded for one student on one day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether the status is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AttendanceLog is one attendance record for a student. Creating a log is
// what triggers risk scoring; the AttendanceRecorded event is only recorded
// at creation, never on later saves of an existing log.
type AttendanceLog struct {
	events.EventCollector

	id        uuid.UUID
	studentID int64
	markedBy  int64
	date      time.Time
	status    AttendanceStatus
	className string
	createdAt time.Time
}

// NewAttendanceLog creates an attendance log and records the
// AttendanceRecorded event.
func NewAttendanceLog(studentID, markedBy int64, date time.Time, status AttendanceStatus, className string) (*AttendanceLog, error) {
	if studentID <= 0 {
		return nil, fmt.Errorf("student ID is required")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if !status.Valid() {
		return nil, fmt.Errorf("invalid attendance status: %s", status)
	}

	l := &AttendanceLog{
		id:        uuid.New(),
		studentID: studentID,
		markedBy:  markedBy,
		date:      date,
		status:    status,
		className: className,
		createdAt: time.Now().UTC(),
	}

	l.Record(event.NewAttendanceRecorded(l.id, l.studentID, l.date, string(l.status)))

	return l, nil
}

func (l *AttendanceLog) ID() uuid.UUID            { return l.id }
func (l *AttendanceLog) StudentID() int64         { return l.studentID }
func (l *AttendanceLog) MarkedBy() int64          { return l.markedBy }
func (l *AttendanceLog) Date() time.Time          { return l.date }
func (l *AttendanceLog) Status() AttendanceStatus { return l.status }
func (l *AttendanceLog) ClassName() string        { return l.className }
func (l *AttendanceLog) CreatedAt() time.Time     { return l.createdAt }
