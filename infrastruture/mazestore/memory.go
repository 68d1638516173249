package mazestore

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

type memoryEntry struct {
	maze      *maze.Maze
	expiresAt time.Time
}

// MemoryStore keeps mazes in process memory with a TTL. A zero TTL never expires.
type MemoryStore struct {
	mazes  map[uuid.UUID]memoryEntry
	locked map[uuid.UUID]bool
	ttl    time.Duration
	now    func() time.Time
	sync.Mutex
}

// NewMemoryStore initializes a MemoryStore whose entries expire after ttlSeconds.
func NewMemoryStore(ttlSeconds int) *MemoryStore {
	return &MemoryStore{
		mazes:  make(map[uuid.UUID]memoryEntry),
		locked: make(map[uuid.UUID]bool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
		now:    time.Now,
	}
}

// Save implements i.MazeStore.
func (s *MemoryStore) Save(_ context.Context, id uuid.UUID, m *maze.Maze) error {
	s.Lock()
	defer s.Unlock()
	s.mazes[id] = memoryEntry{maze: m.FromOriginal(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

// ByID implements i.MazeStore.
func (s *MemoryStore) ByID(_ context.Context, id uuid.UUID) (*maze.Maze, error) {
	s.Lock()
	defer s.Unlock()

	entry, ok := s.mazes[id]
	if !ok {
		return nil, i.ErrMazeNotFound
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.mazes, id)
		return nil, i.ErrMazeNotFound
	}
	return entry.maze.FromOriginal(), nil
}

// Delete implements i.MazeStore.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.Lock()
	defer s.Unlock()
	delete(s.mazes, id)
	return nil
}

// LockRun implements i.MazeStore.
func (s *MemoryStore) LockRun(_ context.Context, id uuid.UUID) (func(), error) {
	s.Lock()
	defer s.Unlock()

	if s.locked[id] {
		return nil, i.ErrRunLocked
	}
	s.locked[id] = true

	var once sync.Once
	return func() {
		once.Do(func() {
			s.Lock()
			defer s.Unlock()
			delete(s.locked, id)
		})
	}, nil
}
