package websocket

import (
	"context"
	"encoding/json"

	"skillswap/internal/domain/entity"
	"skillswap/pkg/logger"
)

// Notifier adapts the connection manager to the usecase EventPublisher
// contract. Delivery is best-effort; a user with no live connection simply
// misses the frame.
type Notifier struct {
	manager *Manager
}

func NewNotifier(manager *Manager) *Notifier {
	return &Notifier{manager: manager}
}

func (n *Notifier) Publish(ctx context.Context, event entity.Event) {
	if event.RecipientID == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.LogEventError(event.Type, event.SubjectID, err)
		return
	}

	n.manager.SendToUser(event.RecipientID, payload)
}
