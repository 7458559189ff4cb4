package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicReceiptChanged is the Watermill topic published whenever a receipt is
// created, updated, or deleted. The CRUD and OCR collaborators publish to it
// through the shared outbox; the search worker consumes it to invalidate
// per-user read caches.
const TopicReceiptChanged = "receipt.changed"

// ReceiptChangedEvent signals that a user's receipt set changed.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicReceiptChanged).
type ReceiptChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ReceiptID   uuid.UUID `json:"receipt_id"`
	UserID      uuid.UUID `json:"user_id"`
	Supermarket string    `json:"supermarket"`
	OccurredAt  time.Time `json:"occurred_at"`
}
