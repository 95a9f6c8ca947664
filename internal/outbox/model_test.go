package outbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("should create pending message with occurrence time", func(t *testing.T) {
		before := time.Now().UTC()
		msg := NewMessage(context.Background(), "evt-1", "BasketCheckout", []byte(`{}`))
		after := time.Now().UTC()

		require.NotNil(t, msg)
		assert.Equal(t, "evt-1", msg.ID)
		assert.Equal(t, "BasketCheckout", msg.EventType)
		assert.True(t, msg.Pending())
		assert.False(t, msg.OccurredAt.Before(before))
		assert.False(t, msg.OccurredAt.After(after))
	})

	t.Run("should report not pending once processed", func(t *testing.T) {
		msg := NewMessage(context.Background(), "evt-1", "BasketCheckout", []byte(`{}`))
		now := time.Now().UTC()
		msg.ProcessedAt = &now

		assert.False(t, msg.Pending())
	})
}
