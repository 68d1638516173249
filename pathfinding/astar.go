package pathfinding

import (
	"container/heap"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

// Heuristic estimates the remaining cost from a point to the goal.
type Heuristic func(from, goal maze.Point) int

// Manhattan is admissible and consistent on a 4-connected unit-cost grid.
func Manhattan(from, goal maze.Point) int {
	return from.Manhattan(goal)
}

// Zero turns best-first search into Dijkstra's algorithm.
func Zero(maze.Point, maze.Point) int {
	return 0
}

// AStar is best-first search ordered by f = g + h with the Manhattan heuristic.
type AStar struct {
	stats stream.Stats
}

// NewAStar creates an A* search.
func NewAStar() *AStar {
	return &AStar{}
}

// FindPath implements Algorithm.
func (a *AStar) FindPath(m *maze.Maze, sink stream.Sink) {
	a.stats = stream.Stats{}
	bestFirst(m, sink, Manhattan, &a.stats)
}

// Name implements Algorithm.
func (a *AStar) Name() algorithm.Kind { return algorithm.AStar }

// Stats implements Algorithm.
func (a *AStar) Stats() *stream.Stats {
	s := a.stats
	return &s
}

// Dijkstra is A* without a heuristic.
type Dijkstra struct {
	stats stream.Stats
}

// NewDijkstra creates a Dijkstra search.
func NewDijkstra() *Dijkstra {
	return &Dijkstra{}
}

// FindPath implements Algorithm.
func (d *Dijkstra) FindPath(m *maze.Maze, sink stream.Sink) {
	d.stats = stream.Stats{}
	bestFirst(m, sink, Zero, &d.stats)
}

// Name implements Algorithm.
func (d *Dijkstra) Name() algorithm.Kind { return algorithm.Dijkstra }

// Stats implements Algorithm.
func (d *Dijkstra) Stats() *stream.Stats {
	s := d.stats
	return &s
}

// bestFirst runs a uniform-cost best-first search guided by h. Each expanded cell
// is marked visited and counted as one step.
func bestFirst(m *maze.Maze, sink stream.Sink, h Heuristic, stats *stream.Stats) {
	start, goal := endpoints(m)

	openSet := make(priorityQueue, 0)
	heap.Init(&openSet)
	seq := 0
	heap.Push(&openSet, &priorityQueueItem{point: start, g: 0, f: h(start, goal), seq: seq})

	cameFrom := make(map[maze.Point]maze.Point)
	gScore := map[maze.Point]int{start: 0}
	closedSet := mapset.New[maze.Point]()

	for openSet.Len() > 0 {
		item := heap.Pop(&openSet).(*priorityQueueItem)
		current := item.point

		// Skip stale entries left behind by a later improvement
		if closedSet.Has(current) || item.g > gScore[current] {
			continue
		}
		closedSet.Put(current)

		m.MarkVisited(current)
		stats.NewStep()
		if err := stream.Emit(sink, m, stats); err != nil {
			return
		}

		if current == goal {
			_ = markRoute(m, reconstructPath(cameFrom, current, start), sink, stats)
			return
		}

		for _, neighbor := range m.Neighbors(current) {
			if closedSet.Has(neighbor) {
				continue
			}
			tentativeG := gScore[current] + 1
			if previousG, ok := gScore[neighbor]; !ok || tentativeG < previousG {
				gScore[neighbor] = tentativeG
				cameFrom[neighbor] = current
				seq++
				heap.Push(&openSet, &priorityQueueItem{
					point: neighbor,
					g:     tentativeG,
					f:     tentativeG + h(neighbor, goal),
					seq:   seq,
				})
			}
		}
	}
}
