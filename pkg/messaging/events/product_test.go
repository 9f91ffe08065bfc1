package events

import (
	"testing"
	"time"

	"github.com/abgdnv/productcrud/pkg/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ProductEvents(t *testing.T) {
	at := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       messaging.Event
		wantSubject string
		wantPayload string
	}{
		{
			name:        "created",
			event:       ProductCreatedEvent{ProductID: 1, Name: "Widget", Description: "A widget", Price: 10, OccurredAt: at},
			wantSubject: "products.created",
			wantPayload: `{"product_id":1,"name":"Widget","description":"A widget","price":10,"occurred_at":"2025-07-01T12:00:00Z"}`,
		},
		{
			name:        "updated",
			event:       ProductUpdatedEvent{ProductID: 1, Name: "B", Description: "d2", Price: 9, OccurredAt: at},
			wantSubject: "products.updated",
			wantPayload: `{"product_id":1,"name":"B","description":"d2","price":9,"occurred_at":"2025-07-01T12:00:00Z"}`,
		},
		{
			name:        "deleted",
			event:       ProductDeletedEvent{ProductID: 7, OccurredAt: at},
			wantSubject: "products.deleted",
			wantPayload: `{"product_id":7,"occurred_at":"2025-07-01T12:00:00Z"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// when
			payload, err := tt.event.Payload()

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, tt.event.Subject())
			assert.JSONEq(t, tt.wantPayload, string(payload))
		})
	}
}
