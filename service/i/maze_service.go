package i

import (
	"context"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/google/uuid"
)

// GenerateRequest describes a maze to generate.
type GenerateRequest struct {
	Kind     algorithm.Kind
	Type     maze.Type
	Width    int
	Height   int
	Entrance maze.Point
}

// Frames is a window of snapshots emitted by a run.
type Frames struct {
	MazeID    uuid.UUID
	Kind      algorithm.Kind
	From      int             // From is the index of the first result.
	Results   []stream.Result // Results holds snapshots From, From+1, ...
	Truncated bool            // Truncated reports that frames past the cap were skipped.
	Done      bool            // Done is set once the run has ended and been joined.
	Succeeded bool            // Succeeded reports whether the exit was reached.
	Stats     *stream.Stats   // Stats is the final counter set, once Done.
	Err       error           // Err is set when the worker failed.
}

// MazeService generates mazes and runs pathfinding algorithms on them.
type MazeService interface {
	// Generate builds and stores a maze, returning its id.
	Generate(ctx context.Context, req GenerateRequest) (uuid.UUID, *maze.Maze, error)

	// Maze returns the pristine stored maze.
	Maze(ctx context.Context, id uuid.UUID) (*maze.Maze, error)

	// StartRun launches a pathfinding run on a stored maze and returns its id.
	StartRun(ctx context.Context, mazeID uuid.UUID, kind algorithm.Kind) (uuid.UUID, error)

	// Frames returns the snapshots of a run starting at index from.
	Frames(runID uuid.UUID, from int) (Frames, error)

	// CancelRun stops observing a run and discards its frames.
	CancelRun(runID uuid.UUID) error

	// Solve runs kind to completion and returns the final maze and its stats.
	Solve(ctx context.Context, mazeID uuid.UUID, kind algorithm.Kind) (*maze.Maze, *stream.Stats, error)
}
