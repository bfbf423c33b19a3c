package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
)

// RecordAttendanceRequest is the input DTO for the RecordAttendance use case.
type RecordAttendanceRequest struct {
	StudentID int64     `json:"student_id"`
	MarkedBy  int64     `json:"marked_by"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	ClassName string    `json:"class_name"`
}

// AttendanceResponse is the output DTO for a recorded attendance log.
type AttendanceResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID int64     `json:"student_id"`
	MarkedBy  int64     `json:"marked_by"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	ClassName string    `json:"class_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceFromModel maps an attendance log aggregate to its response DTO.
func AttendanceFromModel(l *model.AttendanceLog) AttendanceResponse {
	return AttendanceResponse{
		ID:        l.ID(),
		StudentID: l.StudentID(),
		MarkedBy:  l.MarkedBy(),
		Date:      l.Date(),
		Status:    string(l.Status()),
		ClassName: l.ClassName(),
		CreatedAt: l.CreatedAt(),
	}
}
