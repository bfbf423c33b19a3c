package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
)

// AlertResponse is the output DTO for an alert.
type AlertResponse struct {
	ID          uuid.UUID `json:"id"`
	StudentID   int64     `json:"student_id"`
	RecipientID int64     `json:"recipient_id"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// AlertFromModel maps an alert aggregate to its response DTO.
func AlertFromModel(a *model.Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID(),
		StudentID:   a.StudentID(),
		RecipientID: a.RecipientID(),
		Kind:        string(a.Kind()),
		Message:     a.Message(),
		IsRead:      a.IsRead(),
		CreatedAt:   a.CreatedAt(),
	}
}

// AlertsFromModels maps a slice of alerts.
func AlertsFromModels(alerts []*model.Alert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = AlertFromModel(a)
	}
	return out
}

// MarkAlertReadRequest is the input DTO for acknowledging an alert.
type MarkAlertReadRequest struct {
	AlertID     uuid.UUID `json:"alert_id"`
	RecipientID int64     `json:"recipient_id"`
}
