// Package mazeapi exposes maze generation and pathfinding runs over HTTP.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/google/uuid"
)

// GenerateRequest asks for a new maze. Omitted fields take the configured defaults.
type GenerateRequest struct {
	Algorithm algorithm.Kind `json:"algorithm"`
	Type      maze.Type      `json:"type"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Entrance  *maze.Point    `json:"entrance"`
}

// MazeResponse carries a stored maze.
type MazeResponse struct {
	ID   uuid.UUID  `json:"id"`
	Maze *maze.Maze `json:"maze"`
}

// RunRequest selects the pathfinding algorithm of a run.
type RunRequest struct {
	Algorithm algorithm.Kind `json:"algorithm"`
}

// RunResponse identifies a started run.
type RunResponse struct {
	RunID uuid.UUID `json:"run_id"`
}

// SolveResponse carries a maze searched to completion.
type SolveResponse struct {
	Maze      *maze.Maze    `json:"maze"`
	Stats     *stream.Stats `json:"stats"`
	Succeeded bool          `json:"succeeded"`
}

// FramesResponse is a page of run snapshots. Poll again with from=next.
type FramesResponse struct {
	MazeID    uuid.UUID       `json:"maze_id"`
	Algorithm algorithm.Kind  `json:"algorithm"`
	From      int             `json:"from"`
	Next      int             `json:"next"`
	Frames    []stream.Result `json:"frames"`
	Truncated bool            `json:"truncated,omitempty"`
	Done      bool            `json:"done"`
	Succeeded bool            `json:"succeeded"`
	Stats     *stream.Stats   `json:"stats,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// AlgorithmInfo describes one member of the algorithm enumeration.
type AlgorithmInfo struct {
	ID          algorithm.Kind `json:"id"`
	Name        string         `json:"name"`
	Pathfinding bool           `json:"pathfinding"`
	Generation  []maze.Type    `json:"generation,omitempty"`
}
