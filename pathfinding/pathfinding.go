// Package pathfinding implements grid searches that stream their progress.
//
// Every algorithm reads the entrance and exit from the maze's original snapshot,
// mutates status tags in place (Visited while exploring, FinalPath along the
// route) and emits a snapshot per visited cell and per finalized route cell.
// Topology is never modified. A search that exhausts its frontier without
// reaching the exit is a normal outcome: no FinalPath cell is marked.
package pathfinding

import (
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
)

// Algorithm is a pathfinding algorithm.
type Algorithm interface {
	// FindPath searches m from its entrance to its exit, sending snapshots to sink.
	// It returns early when the sink reports that nobody is listening.
	// It panics when m has no entrance or exit.
	FindPath(m *maze.Maze, sink stream.Sink)
	// Name identifies the algorithm.
	Name() algorithm.Kind
	// Stats returns the counters of the last run.
	Stats() *stream.Stats
}

// Options defines parameters shared by the algorithms.
type Options struct {
	// Rand drives randomized direction order. Nil means a time seeded source.
	Rand *rand.Rand
	// Exhaustive disables Bellman-Ford's early exit so every relaxation round
	// and the negative cycle pass always run.
	Exhaustive bool
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSeed makes randomized algorithms reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the random source.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) { o.Rand = rng }
}

// WithExhaustive disables early exit in Bellman-Ford.
func WithExhaustive() Option {
	return func(o *Options) { o.Exhaustive = true }
}

func applyOptions(options []Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return opts
}

// Succeeded reports whether a finished search reached the exit, which is the case
// exactly when the exit cell ends up tagged FinalPath.
func Succeeded(m *maze.Maze) bool {
	exit, ok := m.Exit()
	return ok && m.Cell(exit).Status == maze.FinalPath
}

// reconstructPath rebuilds the route ending at current from the cameFrom map.
func reconstructPath(cameFrom map[maze.Point]maze.Point, current, start maze.Point) []maze.Point {
	path := []maze.Point{current}
	for current != start {
		previous, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// markRoute tags every point of route as FinalPath, emitting after each one.
func markRoute(m *maze.Maze, route []maze.Point, sink stream.Sink, stats *stream.Stats) error {
	for _, p := range route {
		m.MarkFinalPath(p)
		if err := stream.Emit(sink, m, stats); err != nil {
			return err
		}
	}
	return nil
}

// endpoints reads the entrance and exit, failing fast on an ungenerated maze.
func endpoints(m *maze.Maze) (maze.Point, maze.Point) {
	return m.MustEntrance(), m.MustExit()
}
