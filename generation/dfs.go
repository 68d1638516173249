package generation

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
)

// DFS carves a perfect maze depth first. A step is taken only when the target cell
// is still uncarved, so the maze itself records what has been visited.
type DFS struct {
	rng *rand.Rand
}

// NewDFS creates a depth-first generator.
func NewDFS(options ...Option) *DFS {
	opts := applyOptions(options)
	return &DFS{rng: opts.Rand}
}

// Generate implements Generator.
func (g *DFS) Generate(t maze.Type, width, height int, entrance maze.Point, sink stream.Sink) (*maze.Maze, error) {
	if err := checkRequest(width, height, entrance); err != nil {
		return nil, err
	}

	m := maze.NewBlank(width, height, t)
	rep := m.Representation()
	p := &progress{sink: sink}

	if t == maze.Thick {
		m.MarkPath(entrance)
	}
	p.emit(m)

	stack := []carveFrame{{point: entrance, directions: shuffledSteps(rep, g.rng)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.directions) {
			stack = stack[:len(stack)-1]
			continue
		}

		next := top.point.Add(top.directions[top.next])
		top.next++
		// The entrance of a slim maze keeps all its walls until the first carve
		if next == entrance || !rep.CanCarveTo(m, next) {
			continue
		}

		rep.Carve(m, top.point, next)
		p.emit(m)
		stack = append(stack, carveFrame{point: next, directions: shuffledSteps(rep, g.rng)})
	}

	return sealAtRandomExit(m, entrance, g.rng, p)
}

// Name implements Generator.
func (g *DFS) Name() algorithm.Kind { return algorithm.DFS }
