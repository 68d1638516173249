package pathfinding

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

// Backtracking is a randomized depth-first search. Directions are shuffled per
// cell, a cell is marked Visited on entry and FinalPath when the walk moves on
// from it, and demoted back to Visited when that branch fails.
//
// Route length and shape vary between runs unless the random source is seeded.
type Backtracking struct {
	rng   *rand.Rand
	stats stream.Stats
}

// NewBacktracking creates a randomized backtracking search.
func NewBacktracking(options ...Option) *Backtracking {
	opts := applyOptions(options)
	return &Backtracking{rng: opts.Rand}
}

// FindPath implements Algorithm.
func (b *Backtracking) FindPath(m *maze.Maze, sink stream.Sink) {
	b.stats = stream.Stats{}
	start, goal := endpoints(m)
	visited := mapset.New[maze.Point]()

	enter := func(p maze.Point) error {
		visited.Put(p)
		if p == goal {
			m.MarkFinalPath(p)
		} else {
			m.MarkVisited(p)
		}
		b.stats.NewStep()
		return stream.Emit(sink, m, &b.stats)
	}

	if err := enter(start); err != nil || start == goal {
		return
	}

	stack := []dfsFrame{{point: start, directions: b.shuffled()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.directions) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				// The branch through the parent failed
				m.MarkVisited(stack[len(stack)-1].point)
				if err := stream.Emit(sink, m, &b.stats); err != nil {
					return
				}
			}
			continue
		}

		neighbor := top.point.Add(top.directions[top.next])
		top.next++
		if !m.IsValidCoord(neighbor.X, neighbor.Y) || visited.Has(neighbor) || m.IsNotPassable(top.point, neighbor) {
			continue
		}

		m.MarkFinalPath(top.point)
		stack = append(stack, dfsFrame{point: neighbor, directions: b.shuffled()})
		if err := enter(neighbor); err != nil || neighbor == goal {
			return
		}
	}
}

func (b *Backtracking) shuffled() [4]maze.Direction {
	directions := maze.Directions()
	b.rng.Shuffle(len(directions), func(i, j int) {
		directions[i], directions[j] = directions[j], directions[i]
	})
	return directions
}

// Name implements Algorithm.
func (b *Backtracking) Name() algorithm.Kind { return algorithm.Backtracking }

// Stats implements Algorithm.
func (b *Backtracking) Stats() *stream.Stats {
	s := b.stats
	return &s
}
