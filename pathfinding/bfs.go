package pathfinding

import (
	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

// BFS expands the frontier level by level; with unit costs the first route found
// is a shortest one.
type BFS struct {
	stats stream.Stats
}

// NewBFS creates a breadth-first search.
func NewBFS() *BFS {
	return &BFS{}
}

// FindPath implements Algorithm.
func (b *BFS) FindPath(m *maze.Maze, sink stream.Sink) {
	b.stats = stream.Stats{}
	start, goal := endpoints(m)

	queue := []maze.Point{start}
	discovered := mapset.New[maze.Point]()
	discovered.Put(start)
	cameFrom := make(map[maze.Point]maze.Point)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		m.MarkVisited(current)
		b.stats.NewStep()
		if err := stream.Emit(sink, m, &b.stats); err != nil {
			return
		}

		if current == goal {
			_ = markRoute(m, reconstructPath(cameFrom, current, start), sink, &b.stats)
			return
		}

		for _, neighbor := range m.Neighbors(current) {
			if discovered.Has(neighbor) {
				continue
			}
			discovered.Put(neighbor)
			cameFrom[neighbor] = current
			queue = append(queue, neighbor)
		}
	}
}

// Name implements Algorithm.
func (b *BFS) Name() algorithm.Kind { return algorithm.BFS }

// Stats implements Algorithm.
func (b *BFS) Stats() *stream.Stats {
	s := b.stats
	return &s
}
