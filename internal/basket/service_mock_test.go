package basket

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Sokol111/ecommerce-basket-service/internal/outbox"
)

// mockRepository is an in-memory Repository keyed by user name.
type mockRepository struct {
	mu        sync.Mutex
	carts     map[string]ShoppingCart
	deleteErr error
}

func newMockRepository(carts ...*ShoppingCart) *mockRepository {
	m := &mockRepository{carts: make(map[string]ShoppingCart)}
	for _, cart := range carts {
		m.carts[cart.UserName] = *cart
	}
	return m
}

func (m *mockRepository) GetBasket(ctx context.Context, userName string) (*ShoppingCart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userName]
	if !ok {
		return nil, fmt.Errorf("failed to get basket for user %s: %w", userName, ErrBasketNotFound)
	}
	return &cart, nil
}

func (m *mockRepository) CreateBasket(ctx context.Context, cart *ShoppingCart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[cart.UserName]; ok {
		return fmt.Errorf("failed to create basket for user %s: %w", cart.UserName, ErrBasketAlreadyExists)
	}
	m.carts[cart.UserName] = *cart
	return nil
}

func (m *mockRepository) SaveBasket(ctx context.Context, cart *ShoppingCart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.UserName] = *cart
	return nil
}

func (m *mockRepository) DeleteBasket(ctx context.Context, userName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.carts[userName]; !ok {
		return fmt.Errorf("failed to delete basket for user %s: %w", userName, ErrBasketNotFound)
	}
	delete(m.carts, userName)
	return nil
}

func (m *mockRepository) UpdateItemPrice(ctx context.Context, productID string, price float64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var modified int64
	for userName, cart := range m.carts {
		if cart.UpdateItemPrice(productID, price) {
			m.carts[userName] = cart
			modified++
		}
	}
	return modified, nil
}

func (m *mockRepository) has(userName string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.carts[userName]
	return ok
}

func (m *mockRepository) snapshot() map[string]ShoppingCart {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(map[string]ShoppingCart, len(m.carts))
	for k, v := range m.carts {
		snap[k] = v
	}
	return snap
}

func (m *mockRepository) restore(snap map[string]ShoppingCart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts = snap
}

// mockOutboxStore is an in-memory outbox.Store.
type mockOutboxStore struct {
	mu        sync.Mutex
	messages  []outbox.Message
	insertErr error
}

func (m *mockOutboxStore) Insert(ctx context.Context, msg *outbox.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockOutboxStore) FetchPending(ctx context.Context) ([]outbox.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pending []outbox.Message
	for _, msg := range m.messages {
		if msg.Pending() {
			pending = append(pending, msg)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].OccurredAt.Before(pending[j].OccurredAt)
	})
	return pending, nil
}

func (m *mockOutboxStore) MarkProcessed(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	for _, id := range ids {
		for i := range m.messages {
			if m.messages[i].ID == id && m.messages[i].Pending() {
				t := now
				m.messages[i].ProcessedAt = &t
			}
		}
	}
	return nil
}

func (m *mockOutboxStore) all() []outbox.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]outbox.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

func (m *mockOutboxStore) snapshot() []outbox.Message {
	return m.all()
}

func (m *mockOutboxStore) restore(snap []outbox.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = snap
}

// mockTxManager mimics transaction semantics over the in-memory stores:
// when the callback fails, both stores roll back to their pre-transaction
// state.
type mockTxManager struct {
	repo   *mockRepository
	outbox *mockOutboxStore
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(txCtx context.Context) (any, error)) (any, error) {
	repoSnap := m.repo.snapshot()
	outboxSnap := m.outbox.snapshot()

	result, err := fn(ctx)
	if err != nil {
		m.repo.restore(repoSnap)
		m.outbox.restore(outboxSnap)
		return nil, fmt.Errorf("transaction failed: %w", err)
	}
	return result, nil
}
