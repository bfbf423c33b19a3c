package usecase

import (
	"context"
	"fmt"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// ListUnreadAlerts is the use case for a recipient's unread alert inbox.
type ListUnreadAlerts struct {
	repo port.AlertRepository
}

// NewListUnreadAlerts creates a new ListUnreadAlerts use case.
func NewListUnreadAlerts(repo port.AlertRepository) *ListUnreadAlerts {
	return &ListUnreadAlerts{repo: repo}
}

// Execute returns the recipient's unread alerts, newest first.
func (uc *ListUnreadAlerts) Execute(ctx context.Context, recipientID int64) ([]dto.AlertResponse, error) {
	if recipientID <= 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	alerts, err := uc.repo.FindUnreadByRecipient(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unread alerts: %w", err)
	}
	return dto.AlertsFromModels(alerts), nil
}

// MarkAlertRead is the use case for acknowledging an alert. Once the
// alert is read, the deduplication policy allows the next high risk
// result for that student to alert the recipient again.
type MarkAlertRead struct {
	repo port.AlertRepository
}

// NewMarkAlertRead creates a new MarkAlertRead use case.
func NewMarkAlertRead(repo port.AlertRepository) *MarkAlertRead {
	return &MarkAlertRead{repo: repo}
}

// Execute marks the alert read. Returns port.ErrNotFound if the alert
// does not exist or belongs to another recipient.
func (uc *MarkAlertRead) Execute(ctx context.Context, req dto.MarkAlertReadRequest) error {
	if req.RecipientID <= 0 {
		return fmt.Errorf("recipient ID is required")
	}
	if err := uc.repo.MarkRead(ctx, req.AlertID, req.RecipientID); err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return nil
}
