package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("should create registered event type", func(t *testing.T) {
		r := NewRegistry()
		r.Register(TypeBasketCheckout, func() Event { return &BasketCheckout{} })

		evt, err := r.New(TypeBasketCheckout)

		require.NoError(t, err)
		require.IsType(t, &BasketCheckout{}, evt)
	})

	t.Run("should create a fresh instance on every call", func(t *testing.T) {
		r := NewRegistry()
		r.Register(TypeBasketCheckout, func() Event { return &BasketCheckout{} })

		first, err := r.New(TypeBasketCheckout)
		require.NoError(t, err)
		second, err := r.New(TypeBasketCheckout)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
	})

	t.Run("should return error for unknown event type", func(t *testing.T) {
		r := NewRegistry()

		evt, err := r.New("OrderShipped")

		assert.Nil(t, evt)
		assert.ErrorContains(t, err, "unknown event type: OrderShipped")
	})

	t.Run("should report registered types", func(t *testing.T) {
		r := NewRegistry()
		RegisterAll(r)

		assert.True(t, r.Has(TypeBasketCheckout))
		assert.False(t, r.Has("OrderShipped"))
	})
}

func TestNewMetadata(t *testing.T) {
	t.Run("should assign unique event ids", func(t *testing.T) {
		first := NewMetadata(TypeBasketCheckout, "basket-service")
		second := NewMetadata(TypeBasketCheckout, "basket-service")

		assert.NotEmpty(t, first.EventID)
		assert.NotEqual(t, first.EventID, second.EventID)
		assert.Equal(t, TypeBasketCheckout, first.EventType)
		assert.Equal(t, "basket-service", first.Source)
		assert.False(t, first.OccurredAt.IsZero())
	})
}
