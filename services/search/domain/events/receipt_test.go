package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/pricetrail/services/search/domain/events"
)

// The CRUD and OCR collaborators publish this payload; field names are a
// cross-service contract and must not drift.
func TestReceiptChangedEvent_WireFields(t *testing.T) {
	evt := events.ReceiptChangedEvent{
		EventID:     uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		Version:     1,
		ReceiptID:   uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		UserID:      uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		Supermarket: "Tesco",
		OccurredAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	for _, key := range []string{"event_id", "version", "receipt_id", "user_id", "supermarket", "occurred_at"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("wire payload missing %q", key)
		}
	}
	if raw["user_id"] != "660e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("user_id = %v", raw["user_id"])
	}
}
