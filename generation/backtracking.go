package generation

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

// Backtracking is the recursive backtracker: a randomized depth-first carve that
// tracks visited cells in an explicit set and retreats along its stack whenever
// every direction out of the current cell is exhausted.
type Backtracking struct {
	rng *rand.Rand
}

// NewBacktracking creates a backtracking generator.
func NewBacktracking(options ...Option) *Backtracking {
	opts := applyOptions(options)
	return &Backtracking{rng: opts.Rand}
}

// Generate implements Generator.
func (g *Backtracking) Generate(t maze.Type, width, height int, entrance maze.Point, sink stream.Sink) (*maze.Maze, error) {
	if err := checkRequest(width, height, entrance); err != nil {
		return nil, err
	}

	m := maze.NewBlank(width, height, t)
	rep := m.Representation()
	p := &progress{sink: sink}

	visited := mapset.New[maze.Point]()
	visit := func(point maze.Point) []carveFrame {
		visited.Put(point)
		return []carveFrame{{point: point, directions: shuffledSteps(rep, g.rng)}}
	}

	if t == maze.Thick {
		m.MarkPath(entrance)
	}
	p.emit(m)

	stack := visit(entrance)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.directions) {
			// backtrack
			stack = stack[:len(stack)-1]
			continue
		}

		next := top.point.Add(top.directions[top.next])
		top.next++
		if visited.Has(next) || !rep.CanCarveTo(m, next) {
			continue
		}

		rep.Carve(m, top.point, next)
		p.emit(m)
		stack = append(stack, visit(next)...)
	}

	return sealAtRandomExit(m, entrance, g.rng, p)
}

// Name implements Generator.
func (g *Backtracking) Name() algorithm.Kind { return algorithm.Backtracking }
