package generation

import (
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/zyedidia/generic/mapset"
)

const (
	lowEntropy  = 2
	highEntropy = 3
	// initialBranches caps how many cells around the entrance are opened up front.
	initialBranches = 2
)

// WFC is a heuristic collapse in the spirit of wave function collapse. Interior
// cells are resolved to Path or Wall one at a time, least constrained first, with a
// path bias that shrinks as a cell gains path neighbours. The exit is chosen by
// score and its connection to the entrance is repaired afterwards if needed.
//
// Only thick mazes are supported.
type WFC struct {
	rng *rand.Rand
}

// NewWFC creates a collapse generator.
func NewWFC(options ...Option) *WFC {
	opts := applyOptions(options)
	return &WFC{rng: opts.Rand}
}

// pathProbability returns the chance a cell with n path neighbours becomes Path.
func pathProbability(n int) float64 {
	switch n {
	case 0:
		return 0.8
	case 1:
		return 0.7
	case 2:
		return 0.4
	}
	return 0.2
}

// Generate implements Generator.
func (g *WFC) Generate(t maze.Type, width, height int, entrance maze.Point, sink stream.Sink) (*maze.Maze, error) {
	if t != maze.Thick {
		return nil, fmt.Errorf("%w: %s does not support %s mazes", ErrUnsupportedMazeType, algorithm.WFC, t)
	}
	if err := checkRequest(width, height, entrance); err != nil {
		return nil, err
	}

	m := maze.NewBlank(width, height, t)
	p := &progress{sink: sink}
	collapsed := mapset.New[maze.Point]()

	// The outer ring is fixed as wall
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if isBorder(m, maze.Point{X: x, Y: y}) {
				collapsed.Put(maze.Point{X: x, Y: y})
			}
		}
	}

	m.MarkEntrance(entrance)
	collapsed.Put(entrance)
	opened := 0
	for _, d := range maze.Directions() {
		next := entrance.Add(d)
		if opened == initialBranches {
			break
		}
		if !isBorder(m, next) {
			m.MarkPath(next)
			collapsed.Put(next)
			opened++
		}
	}
	p.emit(m)

	entropy := newEntropyBuckets(m, collapsed)
	maxIterations := width * height * 2
	for iteration := 0; collapsed.Size() < width*height && iteration < maxIterations; iteration++ {
		point, ok := entropy.lowest(g.rng)
		if !ok {
			break
		}

		pathNeighbors := countPathNeighbors(m, point)
		collapsed.Put(point)
		entropy.remove(point)
		if g.rng.Float64() >= pathProbability(pathNeighbors) {
			p.emit(m)
			continue
		}

		m.MarkPath(point)
		entropy.refreshAround(m, point)
		if pathNeighbors == 0 {
			if neighbor, ok := g.openIsolated(m, point, collapsed); ok {
				entropy.remove(neighbor)
				entropy.refreshAround(m, neighbor)
			}
		}
		p.emit(m)
	}

	// Anything the iteration cap left undecided becomes path
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			point := maze.Point{X: x, Y: y}
			if !collapsed.Has(point) {
				m.MarkPath(point)
				collapsed.Put(point)
			}
		}
	}

	exit := g.chooseExit(m, entrance)
	m.MarkExit(exit)
	if !connected(m, entrance, exit) {
		carveRoute(m, exit, entrance)
		p.emit(m)
	}

	return seal(m, entrance, exit, p), nil
}

// Name implements Generator.
func (g *WFC) Name() algorithm.Kind { return algorithm.WFC }

// openIsolated opens one random interior wall next to a path cell that has no path
// neighbour yet.
func (g *WFC) openIsolated(m *maze.Maze, point maze.Point, collapsed mapset.Set[maze.Point]) (maze.Point, bool) {
	directions := maze.Directions()
	g.rng.Shuffle(len(directions), func(i, j int) { directions[i], directions[j] = directions[j], directions[i] })
	for _, d := range directions {
		next := point.Add(d)
		if !isBorder(m, next) && m.Cell(next).Status == maze.Wall {
			m.MarkPath(next)
			collapsed.Put(next)
			return next, true
		}
	}
	return maze.Point{}, false
}

// chooseExit scores every non-corner border cell touching a path cell by its squared
// distance from the entrance times one plus its path neighbour count.
func (g *WFC) chooseExit(m *maze.Maze, entrance maze.Point) maze.Point {
	var (
		best      maze.Point
		bestScore = -1
		bestPaths int
	)
	for _, point := range m.BoundaryPoints() {
		paths := countPathNeighbors(m, point)
		if paths == 0 {
			continue
		}
		dx, dy := point.X-entrance.X, point.Y-entrance.Y
		score := (dx*dx + dy*dy) * (paths + 1)
		if score > bestScore {
			best, bestScore, bestPaths = point, score, paths
		}
	}

	if bestScore < 0 {
		fallback := []maze.Point{
			{X: m.Width() - 2, Y: m.Height() - 1},
			{X: m.Width() - 1, Y: m.Height() - 2},
			{X: 1, Y: 0},
			{X: 0, Y: 1},
		}
		return fallback[g.rng.Intn(len(fallback))]
	}

	if bestPaths < 2 {
		for _, d := range maze.Directions() {
			next := best.Add(d)
			if m.IsValidCoord(next.X, next.Y) && !isBorder(m, next) && m.Cell(next).Status == maze.Wall {
				m.MarkPath(next)
			}
		}
	}
	return best
}

func isBorder(m *maze.Maze, p maze.Point) bool {
	return p.X <= 0 || p.Y <= 0 || p.X >= m.Width()-1 || p.Y >= m.Height()-1
}

// countPathNeighbors counts the in-bounds neighbours of p that are not walls.
func countPathNeighbors(m *maze.Maze, p maze.Point) int {
	n := 0
	for _, d := range maze.Directions() {
		next := p.Add(d)
		if m.IsValidCoord(next.X, next.Y) && m.Cell(next).Status != maze.Wall {
			n++
		}
	}
	return n
}
