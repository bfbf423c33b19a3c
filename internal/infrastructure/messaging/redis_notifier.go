package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sakhi-balti/Early-Intervention-System/internal/application/dto"
	"github.com/Sakhi-balti/Early-Intervention-System/internal/domain/model"
)

// RedisNotifier implements port.AlertNotifier by publishing alerts on a
// per-recipient Redis channel, so a connected dashboard session sees new
// alerts without polling.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a Redis-backed alert notifier.
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// AlertChannel returns the pub/sub channel name for a recipient.
func AlertChannel(recipientID int64) string {
	return fmt.Sprintf("alerts.user.%d", recipientID)
}

// NotifyAlert publishes the alert to its recipient's channel.
func (n *RedisNotifier) NotifyAlert(ctx context.Context, alert *model.Alert) error {
	payload, err := json.Marshal(dto.AlertFromModel(alert))
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	if err := n.client.Publish(ctx, AlertChannel(alert.RecipientID()), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}
