package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/pkg/events"
)

const (
	// EventTypeAttendanceRecorded is emitted when a new attendance log is created.
	// It is the trigger for risk scoring; updates to existing logs do not emit it.
	EventTypeAttendanceRecorded = "attendance.recorded"

	// EventTypeRiskAssessed is emitted when a risk assessment completes.
	EventTypeRiskAssessed = "risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment lands in the
	// high category.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// AttendanceRecordedPayload is the payload for EventTypeAttendanceRecorded.
type AttendanceRecordedPayload struct {
	AttendanceID uuid.UUID `json:"attendance_id"`
	StudentID    int64     `json:"student_id"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
}

// AttendanceRecorded signals that a new attendance log exists for a student.
type AttendanceRecorded struct {
	events.BaseEvent
}

// NewAttendanceRecorded creates an AttendanceRecorded event.
func NewAttendanceRecorded(attendanceID uuid.UUID, studentID int64, date time.Time, status string) AttendanceRecorded {
	payload, _ := json.Marshal(AttendanceRecordedPayload{
		AttendanceID: attendanceID,
		StudentID:    studentID,
		Date:         date,
		Status:       status,
	})
	return AttendanceRecorded{
		BaseEvent: events.NewBaseEvent(EventTypeAttendanceRecorded, attendanceID, "attendance_log", payload),
	}
}

// RiskAssessedPayload is the payload for EventTypeRiskAssessed.
type RiskAssessedPayload struct {
	AssessmentID  uuid.UUID `json:"assessment_id"`
	StudentID     int64     `json:"student_id"`
	Score         float64   `json:"score"`
	Category      string    `json:"category"`
	AttendancePct float64   `json:"attendance_pct"`
	GradeAvg      float64   `json:"grade_avg"`
	IncidentCount int       `json:"incident_count"`
	UsedFallback  bool      `json:"used_fallback"`
	ComputedAt    time.Time `json:"computed_at"`
}

// RiskAssessed signals that a risk assessment was computed and persisted.
type RiskAssessed struct {
	events.BaseEvent
}

// NewRiskAssessed creates a RiskAssessed event.
func NewRiskAssessed(p RiskAssessedPayload) RiskAssessed {
	payload, _ := json.Marshal(p)
	return RiskAssessed{
		BaseEvent: events.NewBaseEvent(EventTypeRiskAssessed, p.AssessmentID, "risk_assessment", payload),
	}
}

// HighRiskDetectedPayload is the payload for EventTypeHighRiskDetected.
type HighRiskDetectedPayload struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	StudentID    int64     `json:"student_id"`
	Score        float64   `json:"score"`
	ComputedAt   time.Time `json:"computed_at"`
}

// HighRiskDetected signals that a student was assessed as high risk.
type HighRiskDetected struct {
	events.BaseEvent
}

// NewHighRiskDetected creates a HighRiskDetected event.
func NewHighRiskDetected(p HighRiskDetectedPayload) HighRiskDetected {
	payload, _ := json.Marshal(p)
	return HighRiskDetected{
		BaseEvent: events.NewBaseEvent(EventTypeHighRiskDetected, p.AssessmentID, "risk_assessment", payload),
	}
}
