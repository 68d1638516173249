package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
	ErrRunLocked    = errors.New("maze is locked by another run")
)

// MazeStore keeps generated mazes by id and arbitrates which run may search them.
type MazeStore interface {
	// Save stores m under id, replacing any previous maze.
	Save(ctx context.Context, id uuid.UUID, m *maze.Maze) error

	// ByID returns a copy of the maze stored under id.
	// Returns ErrMazeNotFound when it does not exist or has expired.
	ByID(ctx context.Context, id uuid.UUID) (*maze.Maze, error)

	// Delete removes the maze stored under id.
	Delete(ctx context.Context, id uuid.UUID) error

	// LockRun claims the maze for a single pathfinding run. The returned function
	// releases the claim. Returns ErrRunLocked when another run holds it.
	LockRun(ctx context.Context, id uuid.UUID) (func(), error)
}
