package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rpgo/finplan/internal/domain"
)

// ErrSnapshotNotFound is returned by Get for unknown ids.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists net worth snapshots.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot domain.NetWorthSnapshot) error
	Get(ctx context.Context, id string) (*domain.NetWorthSnapshot, error)
	// List returns up to limit snapshots, newest first.
	List(ctx context.Context, limit int) ([]domain.NetWorthSnapshot, error)
}

// MemorySnapshots keeps snapshots in process memory.
type MemorySnapshots struct {
	mu   sync.RWMutex
	data map[string]domain.NetWorthSnapshot
}

// NewMemorySnapshots creates an empty repository.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string]domain.NetWorthSnapshot)}
}

func (m *MemorySnapshots) Save(_ context.Context, snapshot domain.NetWorthSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[snapshot.ID] = snapshot
	return nil
}

func (m *MemorySnapshots) Get(_ context.Context, id string) (*domain.NetWorthSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[id]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return &s, nil
}

func (m *MemorySnapshots) List(_ context.Context, limit int) ([]domain.NetWorthSnapshot, error) {
	m.mu.RLock()
	out := make([]domain.NetWorthSnapshot, 0, len(m.data))
	for _, s := range m.data {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
