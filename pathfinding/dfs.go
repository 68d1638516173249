package pathfinding

import (
	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

// dfsFrame is one level of the explicit depth-first stack.
type dfsFrame struct {
	point      maze.Point
	directions [4]maze.Direction
	next       int
}

// DFS walks depth first in a fixed direction order. Cells are marked FinalPath
// speculatively on entry and demoted to Visited when the walk backs out of a dead
// end, so only the cells on the entrance-to-exit stack remain FinalPath.
type DFS struct {
	stats stream.Stats
}

// NewDFS creates a depth-first search.
func NewDFS() *DFS {
	return &DFS{}
}

// FindPath implements Algorithm.
func (d *DFS) FindPath(m *maze.Maze, sink stream.Sink) {
	d.stats = stream.Stats{}
	start, goal := endpoints(m)
	visited := mapset.New[maze.Point]()

	enter := func(p maze.Point) error {
		visited.Put(p)
		m.MarkFinalPath(p)
		d.stats.NewStep()
		return stream.Emit(sink, m, &d.stats)
	}

	if err := enter(start); err != nil || start == goal {
		return
	}

	stack := []dfsFrame{{point: start, directions: maze.Directions()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next == len(top.directions) {
			// Dead end: the cell is not on the route after all
			m.MarkVisited(top.point)
			stack = stack[:len(stack)-1]
			if err := stream.Emit(sink, m, &d.stats); err != nil {
				return
			}
			continue
		}

		neighbor := top.point.Add(top.directions[top.next])
		top.next++
		if !m.IsValidCoord(neighbor.X, neighbor.Y) || visited.Has(neighbor) || m.IsNotPassable(top.point, neighbor) {
			continue
		}

		stack = append(stack, dfsFrame{point: neighbor, directions: maze.Directions()})
		if err := enter(neighbor); err != nil || neighbor == goal {
			return
		}
	}
}

// Name implements Algorithm.
func (d *DFS) Name() algorithm.Kind { return algorithm.DFS }

// Stats implements Algorithm.
func (d *DFS) Stats() *stream.Stats {
	s := d.stats
	return &s
}
