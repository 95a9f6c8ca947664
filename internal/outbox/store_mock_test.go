package outbox

import (
	"context"
	"sort"
	"sync"
	"time"
)

// mockStore is an in-memory implementation of Store for testing
type mockStore struct {
	mu         sync.Mutex
	messages   []Message
	fetchErr   error
	markErr    error
	fetchCalls int
	markCalls  int
}

func newMockStore(messages ...Message) *mockStore {
	return &mockStore{messages: messages}
}

func (m *mockStore) Insert(ctx context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockStore) FetchPending(ctx context.Context) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	var pending []Message
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

func (m *mockStore) MarkProcessed(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markCalls++
	if m.markErr != nil {
		return m.markErr
	}

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

func (m *mockStore) message(id string) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			msg := m.messages[i]
			return &msg
		}
	}
	return nil
}

func (m *mockStore) pendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, msg := range m.messages {
		if msg.Pending() {
			count++
		}
	}
	return count
}

func (m *mockStore) getFetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

// mockPublisher records publish calls and can fail selectively
type mockPublisher struct {
	mu          sync.Mutex
	published   []publishedEvent
	publishFunc func(ctx context.Context, eventType string, payload []byte) error
}

type publishedEvent struct {
	eventType string
	payload   []byte
}

func (m *mockPublisher) Publish(ctx context.Context, eventType string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, eventType, payload); err != nil {
			return err
		}
	}
	m.published = append(m.published, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func (m *mockPublisher) getPublished() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]publishedEvent, len(m.published))
	copy(result, m.published)
	return result
}
