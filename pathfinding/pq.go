package pathfinding

import "github.com/beka-birhanu/vinom-pathfinder/maze"

type priorityQueueItem struct {
	point maze.Point
	g     int
	f     int
	seq   int
	index int
}

// priorityQueue is a min-heap on f. Equal f values pop in insertion order, which
// keeps expansion order deterministic for a given maze.
type priorityQueue []*priorityQueueItem

func (q priorityQueue) Len() int { return len(q) }

func (q priorityQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q priorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *priorityQueue) Push(x any) {
	item := x.(*priorityQueueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
