package pathfinding

import (
	"math"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
)

const (
	infinity   = math.MaxInt
	edgeWeight = 1
)

// BellmanFord relaxes every grid edge for up to width*height-1 rounds, emitting a
// snapshot per successful relaxation.
//
// After round k every route of at most k edges has been relaxed, so once the
// exit's distance is at most k it is final and the search stops. A run that ends
// any other way performs the negative cycle pass; with unit weights it never finds
// anything, and NegativeCycleFound exposes that for tests.
type BellmanFord struct {
	exhaustive           bool
	stats                stream.Stats
	negativeCycleChecked bool
	negativeCycleFound   bool
}

// NewBellmanFord creates a Bellman-Ford search. WithExhaustive disables the
// early exit.
func NewBellmanFord(options ...Option) *BellmanFord {
	opts := applyOptions(options)
	return &BellmanFord{exhaustive: opts.Exhaustive}
}

// FindPath implements Algorithm.
func (b *BellmanFord) FindPath(m *maze.Maze, sink stream.Sink) {
	b.stats = stream.Stats{}
	b.negativeCycleChecked = false
	b.negativeCycleFound = false

	start, goal := endpoints(m)
	distance := make([]int, m.Width()*m.Height())
	for i := range distance {
		distance[i] = infinity
	}
	predecessor := make(map[maze.Point]maze.Point)
	distance[m.Index(start.X, start.Y)] = 0

	m.MarkVisited(start)
	if err := stream.Emit(sink, m, &b.stats); err != nil {
		return
	}

	goalIndex := m.Index(goal.X, goal.Y)
	finalized := false
	rounds := m.Width()*m.Height() - 1
	for round := 1; round <= rounds; round++ {
		relaxed, err := b.relaxAll(m, sink, distance, predecessor)
		if err != nil {
			return
		}
		if !b.exhaustive && distance[goalIndex] <= round {
			finalized = true
			break
		}
		if !relaxed {
			break
		}
	}

	if !finalized {
		b.negativeCycleChecked = true
		b.negativeCycleFound = hasNegativeCycle(m, distance)
	}

	if distance[goalIndex] == infinity {
		return
	}
	_ = markRoute(m, reconstructPath(predecessor, goal, start), sink, &b.stats)
}

// relaxAll runs one relaxation round over every edge in row-major order.
func (b *BellmanFord) relaxAll(m *maze.Maze, sink stream.Sink, distance []int, predecessor map[maze.Point]maze.Point) (bool, error) {
	relaxed := false
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			current := maze.Point{X: x, Y: y}
			d := distance[m.Index(x, y)]
			if d == infinity {
				continue
			}

			for _, neighbor := range m.Neighbors(current) {
				i := m.Index(neighbor.X, neighbor.Y)
				if d+edgeWeight >= distance[i] {
					continue
				}
				distance[i] = d + edgeWeight
				predecessor[neighbor] = current
				relaxed = true

				m.MarkVisited(neighbor)
				b.stats.NewStep()
				if err := stream.Emit(sink, m, &b.stats); err != nil {
					return relaxed, err
				}
			}
		}
	}
	return relaxed, nil
}

// hasNegativeCycle reports whether any edge can still be relaxed.
func hasNegativeCycle(m *maze.Maze, distance []int) bool {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			d := distance[m.Index(x, y)]
			if d == infinity {
				continue
			}
			for _, neighbor := range m.Neighbors(maze.Point{X: x, Y: y}) {
				if d+edgeWeight < distance[m.Index(neighbor.X, neighbor.Y)] {
					return true
				}
			}
		}
	}
	return false
}

// NegativeCycleChecked reports whether the last run performed the negative
// cycle pass.
func (b *BellmanFord) NegativeCycleChecked() bool { return b.negativeCycleChecked }

// NegativeCycleFound reports whether the negative cycle pass relaxed an edge.
func (b *BellmanFord) NegativeCycleFound() bool { return b.negativeCycleFound }

// Name implements Algorithm.
func (b *BellmanFord) Name() algorithm.Kind { return algorithm.BellmanFord }

// Stats implements Algorithm.
func (b *BellmanFord) Stats() *stream.Stats {
	s := b.stats
	return &s
}
