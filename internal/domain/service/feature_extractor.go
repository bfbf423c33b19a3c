package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/valueobject"
)

// WindowDays is the trailing period attendance and grade features are
// computed over.
const WindowDays = 30

const (
	// defaultAttendancePct applies when no attendance rows exist in the
	// window. Absence of tracking data must not manufacture risk.
	defaultAttendancePct = 100.0

	// defaultGradeAvg is the neutral default when no grade rows exist in
	// the window.
	defaultGradeAvg = 75.0
)

// FeatureExtractor reduces a student's raw records to the feature vector the
// scorers consume.
type FeatureExtractor struct {
	records port.StudentRecordReader
}

// NewFeatureExtractor creates a FeatureExtractor over the given record reader.
func NewFeatureExtractor(records port.StudentRecordReader) *FeatureExtractor {
	return &FeatureExtractor{records: records}
}

// Extract computes the feature vector for a student as of the given time.
// Attendance and grades are bounded to the trailing window; the incident
// count is all-time. Empty result sets are valid inputs handled by the
// documented defaults, not errors.
func (e *FeatureExtractor) Extract(ctx context.Context, studentID int64, asOf time.Time) (valueobject.FeatureVector, error) {
	since := asOf.AddDate(0, 0, -WindowDays)

	rows, err := e.records.AttendanceRows(ctx, studentID, since)
	if err != nil {
		return valueobject.FeatureVector{}, fmt.Errorf("read attendance rows: %w", err)
	}

	attendancePct := defaultAttendancePct
	if len(rows) > 0 {
		present := 0
		for _, row := range rows {
			if row.Status == "present" {
				present++
			}
		}
		attendancePct = float64(present) / float64(len(rows)) * 100
	}

	scores, err := e.records.GradeScores(ctx, studentID, since)
	if err != nil {
		return valueobject.FeatureVector{}, fmt.Errorf("read grade scores: %w", err)
	}

	gradeAvg := defaultGradeAvg
	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		gradeAvg = sum / float64(len(scores))
	}

	incidents, err := e.records.InterventionCount(ctx, studentID)
	if err != nil {
		return valueobject.FeatureVector{}, fmt.Errorf("count interventions: %w", err)
	}

	return valueobject.FeatureVector{
		AttendancePct: valueobject.Round2(attendancePct),
		GradeAvg:      valueobject.Round2(gradeAvg),
		IncidentCount: incidents,
	}, nil
}
