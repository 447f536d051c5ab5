package store

import (
	"context"
	"sync"
	"time"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// Memory is an in-process store used by tests and as the default when no
// database is configured.
type Memory struct {
	mu  sync.RWMutex
	txs map[string]*domain.CategorizedTransaction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{txs: make(map[string]*domain.CategorizedTransaction)}
}

func (m *Memory) Insert(ctx context.Context, tx *domain.CategorizedTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.txs[tx.ID]; exists {
		return nil
	}
	cp := *tx
	m.txs[tx.ID] = &cp
	return nil
}

func (m *Memory) QueryByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.CategorizedTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.CategorizedTransaction
	for _, tx := range m.txs {
		if tx.OccurredAt.Before(start) || tx.OccurredAt.After(end) {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	return out, nil
}

// Len reports the number of stored transactions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}

func (m *Memory) Close() error { return nil }
