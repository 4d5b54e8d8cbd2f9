package storefake

import (
	"context"
	"sync"

	"github.com/jrsteele09/pos-console/tokenstore"
)

var _ tokenstore.Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store that also counts calls, for tests.
type MemoryStore struct {
	lock    sync.RWMutex
	token   *string
	saves   int
	clears  int
	LoadErr error // returned by Load when set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith returns a store already holding token.
func NewMemoryStoreWith(token string) *MemoryStore {
	return &MemoryStore{token: &token}
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = &token
	m.saves++
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (string, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	if m.token == nil {
		return "", tokenstore.ErrNoToken
	}
	return *m.token, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.token = nil
	m.clears++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.saves
}

// Clears returns how many times Clear was called.
func (m *MemoryStore) Clears() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.clears
}
