package basket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Sokol111/ecommerce-basket-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceFixture struct {
	repo        *mockRepository
	outboxStore *mockOutboxStore
	service     Service
}

func newServiceFixture(carts ...*ShoppingCart) *serviceFixture {
	repo := newMockRepository(carts...)
	outboxStore := &mockOutboxStore{}
	tx := &mockTxManager{repo: repo, outbox: outboxStore}
	return &serviceFixture{
		repo:        repo,
		outboxStore: outboxStore,
		service:     NewService(repo, outboxStore, tx, "basket-service", zap.NewNop()),
	}
}

func aliceCart() *ShoppingCart {
	return &ShoppingCart{
		ID:       "cart-1",
		UserName: "alice",
		Items: []ShoppingCartItem{
			{ProductID: "p1", ProductName: "keyboard", Quantity: 2, Color: "black", Price: 21.25},
		},
	}
}

func TestServiceCreateBasket(t *testing.T) {
	t.Run("should create basket and assign id", func(t *testing.T) {
		f := newServiceFixture()

		id, err := f.service.CreateBasket(context.Background(), &ShoppingCart{UserName: "alice"})

		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.True(t, f.repo.has("alice"))
	})

	t.Run("should return error when basket already exists", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		_, err := f.service.CreateBasket(context.Background(), &ShoppingCart{UserName: "alice"})

		assert.ErrorIs(t, err, ErrBasketAlreadyExists)
	})
}

func TestServiceAddItem(t *testing.T) {
	t.Run("should add item to existing basket", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		err := f.service.AddItem(context.Background(), "alice",
			ShoppingCartItem{ProductID: "p2", ProductName: "mouse", Quantity: 1, Price: 9.99})

		require.NoError(t, err)
		cart, err := f.service.GetBasket(context.Background(), "alice")
		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
	})

	t.Run("should return error for missing basket", func(t *testing.T) {
		f := newServiceFixture()

		err := f.service.AddItem(context.Background(), "bob", ShoppingCartItem{ProductID: "p1"})

		assert.ErrorIs(t, err, ErrBasketNotFound)
	})
}

func TestServiceRemoveItem(t *testing.T) {
	t.Run("should remove item", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		err := f.service.RemoveItem(context.Background(), "alice", "p1")

		require.NoError(t, err)
		cart, err := f.service.GetBasket(context.Background(), "alice")
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("should return error for missing item", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		err := f.service.RemoveItem(context.Background(), "alice", "p9")

		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestServiceCheckout(t *testing.T) {
	t.Run("should delete basket and record checkout intent atomically", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		err := f.service.Checkout(context.Background(), "alice")

		require.NoError(t, err)
		assert.False(t, f.repo.has("alice"))

		messages := f.outboxStore.all()
		require.Len(t, messages, 1)
		msg := messages[0]
		assert.Equal(t, events.TypeBasketCheckout, msg.EventType)
		assert.True(t, msg.Pending())

		var evt events.BasketCheckout
		require.NoError(t, json.Unmarshal(msg.Payload, &evt))
		assert.Equal(t, "alice", evt.UserName)
		assert.InDelta(t, 42.50, evt.TotalPrice, 1e-9)
		require.Len(t, evt.Items, 1)
		assert.Equal(t, "p1", evt.Items[0].ProductID)
		assert.Equal(t, msg.ID, evt.Metadata.EventID)
		assert.Equal(t, "basket-service", evt.Metadata.Source)
	})

	t.Run("should return error and record nothing for missing basket", func(t *testing.T) {
		f := newServiceFixture(aliceCart())

		err := f.service.Checkout(context.Background(), "bob")

		assert.ErrorIs(t, err, ErrBasketNotFound)
		assert.Empty(t, f.outboxStore.all())
		assert.True(t, f.repo.has("alice"))
	})

	t.Run("should roll back intent when basket deletion fails", func(t *testing.T) {
		f := newServiceFixture(aliceCart())
		f.repo.deleteErr = errors.New("write conflict")

		err := f.service.Checkout(context.Background(), "alice")

		require.Error(t, err)
		assert.Empty(t, f.outboxStore.all())
		assert.True(t, f.repo.has("alice"))
	})

	t.Run("should keep basket when intent insert fails", func(t *testing.T) {
		f := newServiceFixture(aliceCart())
		f.outboxStore.insertErr = errors.New("write conflict")

		err := f.service.Checkout(context.Background(), "alice")

		require.Error(t, err)
		assert.Empty(t, f.outboxStore.all())
		assert.True(t, f.repo.has("alice"))
	})
}
