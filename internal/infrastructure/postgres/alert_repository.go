package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/port"
)

// AlertRepository implements port.AlertRepository using PostgreSQL.
type AlertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository creates a new PostgreSQL-backed alert repository.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// Save inserts a new alert row.
func (r *AlertRepository) Save(ctx context.Context, alert *model.Alert) error {
	query := `
		INSERT INTO alerts (id, student_id, recipient_id, kind, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		alert.ID(),
		alert.StudentID(),
		alert.RecipientID(),
		string(alert.Kind()),
		alert.Message(),
		alert.IsRead(),
		alert.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

// HasUnread reports whether an unread alert exists for the exact
// (student, recipient, kind) triple.
func (r *AlertRepository) HasUnread(ctx context.Context, studentID, recipientID int64, kind model.AlertKind) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE student_id = $1 AND recipient_id = $2 AND kind = $3 AND NOT is_read
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, recipientID, string(kind)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check unread alerts: %w", err)
	}
	return exists, nil
}

// FindUnreadByRecipient returns the recipient's unread alerts, newest first.
func (r *AlertRepository) FindUnreadByRecipient(ctx context.Context, recipientID int64) ([]*model.Alert, error) {
	query := `
		SELECT id, student_id, recipient_id, kind, message, is_read, created_at
		FROM alerts
		WHERE recipient_id = $1 AND NOT is_read
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unread alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*model.Alert
	for rows.Next() {
		var (
			id                   uuid.UUID
			studentID, recipient int64
			kind, message        string
			isRead               bool
			createdAt            time.Time
		)
		if err := rows.Scan(&id, &studentID, &recipient, &kind, &message, &isRead, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, model.ReconstructAlert(id, studentID, recipient, model.AlertKind(kind), message, isRead, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}
	return alerts, nil
}

// MarkRead marks the alert read if it belongs to the recipient.
func (r *AlertRepository) MarkRead(ctx context.Context, id uuid.UUID, recipientID int64) error {
	query := `UPDATE alerts SET is_read = TRUE WHERE id = $1 AND recipient_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}
