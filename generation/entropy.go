package generation

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/zyedidia/generic/mapset"
)

// entropyOf ranks an uncollapsed cell. Cells with fewer than three open neighbours
// are less constrained and collapse first.
func entropyOf(m *maze.Maze, p maze.Point) int {
	if countPathNeighbors(m, p) < 3 {
		return lowEntropy
	}
	return highEntropy
}

// bucket is a set of points supporting uniform random picks.
type bucket struct {
	points []maze.Point
	index  map[maze.Point]int
}

func (b *bucket) add(p maze.Point) {
	if _, ok := b.index[p]; ok {
		return
	}
	b.index[p] = len(b.points)
	b.points = append(b.points, p)
}

func (b *bucket) remove(p maze.Point) {
	i, ok := b.index[p]
	if !ok {
		return
	}
	last := len(b.points) - 1
	b.points[i] = b.points[last]
	b.index[b.points[i]] = i
	b.points = b.points[:last]
	delete(b.index, p)
}

// entropyBuckets groups the uncollapsed cells by entropy. Collapsing a cell only
// changes the entropy of its four neighbours, so each step touches a constant number
// of cells instead of rescanning the grid.
type entropyBuckets struct {
	low  bucket
	high bucket
}

func newEntropyBuckets(m *maze.Maze, collapsed mapset.Set[maze.Point]) *entropyBuckets {
	e := &entropyBuckets{
		low:  bucket{index: make(map[maze.Point]int)},
		high: bucket{index: make(map[maze.Point]int)},
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			if !collapsed.Has(p) {
				e.place(m, p)
			}
		}
	}
	return e
}

func (e *entropyBuckets) place(m *maze.Maze, p maze.Point) {
	if entropyOf(m, p) == lowEntropy {
		e.high.remove(p)
		e.low.add(p)
		return
	}
	e.low.remove(p)
	e.high.add(p)
}

func (e *entropyBuckets) tracked(p maze.Point) bool {
	_, low := e.low.index[p]
	_, high := e.high.index[p]
	return low || high
}

// remove stops tracking a collapsed cell.
func (e *entropyBuckets) remove(p maze.Point) {
	e.low.remove(p)
	e.high.remove(p)
}

// refreshAround re-ranks the uncollapsed neighbours of a cell that just became path.
func (e *entropyBuckets) refreshAround(m *maze.Maze, p maze.Point) {
	for _, d := range maze.Directions() {
		next := p.Add(d)
		if m.IsValidCoord(next.X, next.Y) && e.tracked(next) {
			e.place(m, next)
		}
	}
}

// lowest picks a random cell of minimal entropy.
func (e *entropyBuckets) lowest(rng *rand.Rand) (maze.Point, bool) {
	for _, b := range []*bucket{&e.low, &e.high} {
		if len(b.points) > 0 {
			return b.points[rng.Intn(len(b.points))], true
		}
	}
	return maze.Point{}, false
}
