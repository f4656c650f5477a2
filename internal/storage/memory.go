package storage

import (
	"context"
	"sync"

	"github.com/nikitkaralius/weeklypoll/internal/models"
)

// MemoryStore keeps state in process memory. LoadErr and SaveErr, when set,
// are returned by every load or save.
type MemoryStore struct {
	mu       sync.Mutex
	settings models.Settings
	votes    models.Votes
	saves    int

	LoadErr error
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{votes: models.Votes{}}
}

func (m *MemoryStore) LoadSettings(_ context.Context) (models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return models.Settings{}, m.LoadErr
	}
	return m.settings.Clone(), nil
}

func (m *MemoryStore) SaveSettings(_ context.Context, s models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.settings = s.Clone()
	m.saves++
	return nil
}

func (m *MemoryStore) LoadVotes(_ context.Context) (models.Votes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return models.Votes{}, m.LoadErr
	}
	return m.votes.Clone(), nil
}

func (m *MemoryStore) SaveVotes(_ context.Context, votes models.Votes, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.votes = votes.Clone()
	m.saves++
	return nil
}

// Saves returns the number of successful writes.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
