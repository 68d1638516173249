// Package generation carves fresh mazes.
//
// A generator allocates a maze, opens passable topology from the entrance, marks the
// entrance and an exit on the border, and snapshots the result with Backup. When a
// sink is supplied every carving step is streamed with nil stats. If the receiver
// goes away, generation carries on silently and still returns the maze.
package generation

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
)

// MinDimension is the smallest width or height that leaves room for an interior.
const MinDimension = 3

var (
	ErrInvalidDimensions   = errors.New("maze dimensions too small")
	ErrInvalidEntrance     = errors.New("entrance must lie inside the outer ring")
	ErrUnsupportedMazeType = errors.New("maze type not supported by generator")
	ErrNoExit              = errors.New("no border cell can serve as exit")
)

// Generator is a maze generation algorithm.
type Generator interface {
	// Generate builds a width*height maze of type t whose entrance is entrance.
	Generate(t maze.Type, width, height int, entrance maze.Point, sink stream.Sink) (*maze.Maze, error)
	// Name identifies the algorithm.
	Name() algorithm.Kind
}

var (
	_ Generator = (*DFS)(nil)
	_ Generator = (*Backtracking)(nil)
	_ Generator = (*WFC)(nil)
)

// Options defines parameters shared by the generators.
type Options struct {
	Rand *rand.Rand
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSeed makes generation reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rand.New(rand.NewSource(seed)) }
}

// WithRand injects the random source.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) { o.Rand = rng }
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

// checkRequest validates the arguments shared by every generator.
func checkRequest(width, height int, entrance maze.Point) error {
	if width < MinDimension || height < MinDimension {
		return fmt.Errorf("%w: %dx%d, minimum is %dx%d", ErrInvalidDimensions, width, height, MinDimension, MinDimension)
	}
	if entrance.X < 1 || entrance.Y < 1 || entrance.X > width-2 || entrance.Y > height-2 {
		return fmt.Errorf("%w: %s in %dx%d", ErrInvalidEntrance, entrance, width, height)
	}
	return nil
}

// progress forwards carving snapshots until the receiver goes away.
type progress struct {
	sink stream.Sink
}

func (p *progress) emit(m *maze.Maze) {
	if p.sink == nil {
		return
	}
	if err := stream.Emit(p.sink, m, nil); err != nil {
		p.sink = nil
	}
}

// seal marks the endpoints, takes the backup and emits the finished maze.
func seal(m *maze.Maze, entrance, exit maze.Point, p *progress) *maze.Maze {
	m.MarkEntrance(entrance)
	m.MarkExit(exit)
	m.Backup()
	p.emit(m)
	return m
}

// sealAtRandomExit picks the exit among the border cells touching the carved area.
func sealAtRandomExit(m *maze.Maze, entrance maze.Point, rng *rand.Rand, p *progress) (*maze.Maze, error) {
	exit, ok := m.RandomBoundaryPoint(rng)
	if !ok {
		return nil, ErrNoExit
	}
	return seal(m, entrance, exit, p), nil
}

// carveFrame is one level of the explicit carving stack.
type carveFrame struct {
	point      maze.Point
	directions [4]maze.Direction
	next       int
}

func shuffledSteps(rep maze.Representation, rng *rand.Rand) [4]maze.Direction {
	steps := rep.CarveSteps()
	rng.Shuffle(len(steps), func(i, j int) { steps[i], steps[j] = steps[j], steps[i] })
	return steps
}
