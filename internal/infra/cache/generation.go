package cache

import (
	"context"
	"sync"
)

// GenerationStore keeps the latest published schema generation per table
// slug. Generations only move forward: publishing an older generation than
// the stored one is ignored, so a slow writer cannot roll the cache back.
type GenerationStore interface {
	Get(ctx context.Context, slug string) (int64, bool, error)
	Publish(ctx context.Context, slug string, generation int64) error
}

var _ GenerationStore = (*MemoryGenerationStore)(nil)

func NewMemoryGenerationStore() *MemoryGenerationStore {
	return &MemoryGenerationStore{
		generations: make(map[string]int64),
	}
}

type MemoryGenerationStore struct {
	mu          sync.RWMutex
	generations map[string]int64
}

func (s *MemoryGenerationStore) Get(_ context.Context, slug string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	generation, ok := s.generations[slug]
	return generation, ok, nil
}

func (s *MemoryGenerationStore) Publish(_ context.Context, slug string, generation int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.generations[slug]; ok && current >= generation {
		return nil
	}
	s.generations[slug] = generation
	return nil
}
