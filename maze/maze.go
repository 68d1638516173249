/*
Package maze provides the grid model shared by the pathfinding and generation algorithms.

A Maze owns a flat row-major slice of cells plus a pristine snapshot taken once
generation completes. Pathfinding runs only touch status tags, so any number of runs
can be replayed on the same topology by resetting from the snapshot.

Two cell representations are supported: thick mazes, where a cell is either a wall or
walkable, and slim mazes, where every cell is walkable and per-edge wall bits decide
connectivity. The representation is chosen at construction and handles every
topology-dependent question, so callers never branch on the maze type.
*/
package maze

import (
	"fmt"
	"math/rand"
	"strings"
)

// Maze is a rectangular grid of cells with a backed-up original state.
type Maze struct {
	rep      Representation
	width    int
	height   int
	cells    []Cell
	original []Cell
	// snapshot marks a read-only copy sharing original with its source.
	snapshot bool
}

// New allocates a width*height maze with every cell set to fill.
func New(width, height int, t Type, fill Cell) *Maze {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("maze: invalid dimensions %dx%d", width, height))
	}

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = fill
	}
	original := make([]Cell, len(cells))
	copy(original, cells)

	return &Maze{
		rep:      RepresentationOf(t),
		width:    width,
		height:   height,
		cells:    cells,
		original: original,
	}
}

// NewBlank allocates a maze filled with the representation's uncarved cell.
func NewBlank(width, height int, t Type) *Maze {
	return New(width, height, t, RepresentationOf(t).Blank())
}

// NewOpen allocates a maze filled with the representation's fully carved cell.
func NewOpen(width, height int, t Type) *Maze {
	return New(width, height, t, RepresentationOf(t).Open())
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Type returns the maze's cell representation type.
func (m *Maze) Type() Type { return m.rep.Type() }

// Representation returns the topology rules of the maze.
func (m *Maze) Representation() Representation { return m.rep }

// Index converts a coordinate to its offset in the cell slice.
// Out of range coordinates are a caller defect and panic.
func (m *Maze) Index(x, y int) int {
	if !m.IsValidCoord(x, y) {
		panic(fmt.Sprintf("maze: coordinate (%d,%d) outside %dx%d grid", x, y, m.width, m.height))
	}
	return y*m.width + x
}

// Cell returns the cell at p.
func (m *Maze) Cell(p Point) Cell {
	return m.cells[m.Index(p.X, p.Y)]
}

// SetCell replaces the cell at (x, y).
func (m *Maze) SetCell(x, y int, c Cell) {
	m.cells[m.Index(x, y)] = c
}

// IsValidCoord reports whether (x, y) lies inside the grid. It takes signed values so
// neighbour offsets can be checked before they are used.
func (m *Maze) IsValidCoord(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// IsPassable reports whether a walker can move from current to the adjacent next.
func (m *Maze) IsPassable(current, next Point) bool {
	return m.rep.Passable(m, current, next)
}

// IsNotPassable is the negation of IsPassable.
func (m *Maze) IsNotPassable(current, next Point) bool {
	return !m.IsPassable(current, next)
}

// Neighbors returns the in-bounds neighbours of p reachable in one step, in the
// fixed order of Directions.
func (m *Maze) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 4)
	for _, d := range Directions() {
		next := p.Add(d)
		if m.IsValidCoord(next.X, next.Y) && m.IsPassable(p, next) {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

func (m *Maze) markAs(p Point, status Status) {
	i := m.Index(p.X, p.Y)
	m.cells[i] = m.cells[i].MarkAs(status)
}

// MarkVisited tags p as visited.
func (m *Maze) MarkVisited(p Point) { m.markAs(p, Visited) }

// MarkPath tags p as path. On thick mazes this carves the cell.
func (m *Maze) MarkPath(p Point) { m.markAs(p, Path) }

// MarkFinalPath tags p as part of the reconstructed route.
func (m *Maze) MarkFinalPath(p Point) { m.markAs(p, FinalPath) }

// MarkEntrance tags p as the entrance.
func (m *Maze) MarkEntrance(p Point) { m.markAs(p, Entrance) }

// MarkExit tags p as the exit.
func (m *Maze) MarkExit(p Point) { m.markAs(p, Exit) }

func (m *Maze) setWall(p Point, d Direction, hasWall bool) {
	i := m.Index(p.X, p.Y)
	m.cells[i] = m.cells[i].WithWall(d, hasWall)
}

// Backup snapshots the current cells as the original state. The original slice is
// replaced rather than overwritten, since snapshots may still share the old one.
func (m *Maze) Backup() {
	m.original = append([]Cell(nil), m.cells...)
	m.snapshot = false
}

// Reset restores every cell from the original snapshot.
func (m *Maze) Reset() {
	copy(m.cells, m.original)
}

// FromOriginal returns a new maze whose cells are the original snapshot.
func (m *Maze) FromOriginal() *Maze {
	cells := make([]Cell, len(m.original))
	copy(cells, m.original)
	original := make([]Cell, len(m.original))
	copy(original, m.original)

	return &Maze{rep: m.rep, width: m.width, height: m.height, cells: cells, original: original}
}

// Clone returns a deep copy of the maze, current cells included.
func (m *Maze) Clone() *Maze {
	c := m.FromOriginal()
	copy(c.cells, m.cells)
	return c
}

// Snapshot returns a copy of the current cells that shares the original state with
// m. It is meant for read-only progress frames; its JSON form omits the original.
func (m *Maze) Snapshot() *Maze {
	cells := make([]Cell, len(m.cells))
	copy(cells, m.cells)
	return &Maze{rep: m.rep, width: m.width, height: m.height, cells: cells, original: m.original, snapshot: true}
}

// IsSnapshot reports whether m was produced by Snapshot.
func (m *Maze) IsSnapshot() bool { return m.snapshot }

// Entrance scans the original snapshot for the entrance cell.
func (m *Maze) Entrance() (Point, bool) {
	return m.findOriginal(Entrance)
}

// Exit scans the original snapshot for the exit cell.
func (m *Maze) Exit() (Point, bool) {
	return m.findOriginal(Exit)
}

// MustEntrance returns the entrance and panics when the maze was never generated.
func (m *Maze) MustEntrance() Point {
	p, ok := m.Entrance()
	if !ok {
		panic("maze: entrance not found")
	}
	return p
}

// MustExit returns the exit and panics when the maze was never generated.
func (m *Maze) MustExit() Point {
	p, ok := m.Exit()
	if !ok {
		panic("maze: exit not found")
	}
	return p
}

func (m *Maze) findOriginal(status Status) (Point, bool) {
	for i, c := range m.original {
		if c.Status == status {
			return m.pointAt(i), true
		}
	}
	return Point{}, false
}

func (m *Maze) pointAt(i int) Point {
	return Point{X: i % m.width, Y: i / m.width}
}

// Count returns how many current cells carry status.
func (m *Maze) Count(status Status) int {
	n := 0
	for _, c := range m.cells {
		if c.Status == status {
			n++
		}
	}
	return n
}

// PointsWithStatus returns the coordinates of every current cell tagged status, in
// row-major order.
func (m *Maze) PointsWithStatus(status Status) []Point {
	var points []Point
	for i, c := range m.cells {
		if c.Status == status {
			points = append(points, m.pointAt(i))
		}
	}
	return points
}

// FinalPath returns the cells currently on the reconstructed route, in row-major
// order.
func (m *Maze) FinalPath() []Point {
	return m.PointsWithStatus(FinalPath)
}

// HasOpenNeighbor reports whether p can step into at least one adjacent cell.
func (m *Maze) HasOpenNeighbor(p Point) bool {
	return len(m.Neighbors(p)) > 0
}

// BoundaryPoints returns the border cells excluding the four corners.
func (m *Maze) BoundaryPoints() []Point {
	var points []Point
	for x := 1; x < m.width-1; x++ {
		points = append(points, Point{X: x, Y: 0})
		if m.height > 1 {
			points = append(points, Point{X: x, Y: m.height - 1})
		}
	}
	for y := 1; y < m.height-1; y++ {
		points = append(points, Point{X: 0, Y: y})
		if m.width > 1 {
			points = append(points, Point{X: m.width - 1, Y: y})
		}
	}
	return points
}

// RandomBoundaryPoint samples a non-corner border cell that already has a passable
// neighbour. Sampling is by rejection; after a bounded number of misses the choice
// falls back to the eligible points directly. It returns false when no border cell
// qualifies, which happens on degenerate grids such as 2x2.
func (m *Maze) RandomBoundaryPoint(rng *rand.Rand) (Point, bool) {
	boundary := m.BoundaryPoints()
	var eligible []Point
	for _, p := range boundary {
		if m.HasOpenNeighbor(p) {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return Point{}, false
	}

	for attempt := 0; attempt < 4*len(boundary); attempt++ {
		p := boundary[rng.Intn(len(boundary))]
		if m.HasOpenNeighbor(p) {
			return p, true
		}
	}
	return eligible[rng.Intn(len(eligible))], true
}

var statusGlyphs = map[Status]string{
	Wall:      "██",
	Path:      "  ",
	Entrance:  " >",
	Exit:      " E",
	Visited:   " v",
	FinalPath: " F",
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	if m.rep.Type() == Slim {
		return m.slimString()
	}

	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			b.WriteString(statusGlyphs[m.Cell(Point{X: x, Y: y}).Status])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Maze) slimString() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for x := 0; x < m.width; x++ {
		if m.Cell(Point{X: x, Y: 0}).HasTopWall() {
			b.WriteString("--+")
		} else {
			b.WriteString("  +")
		}
	}
	b.WriteString("\n")

	for y := 0; y < m.height; y++ {
		row := "|"
		if !m.Cell(Point{X: 0, Y: y}).HasLeftWall() {
			row = " "
		}
		walls := "+"
		for x := 0; x < m.width; x++ {
			cell := m.Cell(Point{X: x, Y: y})
			row += statusGlyphs[cell.Status]
			if cell.HasRightWall() {
				row += "|"
			} else {
				row += " "
			}
			if cell.HasBottomWall() {
				walls += "--+"
			} else {
				walls += "  +"
			}
		}
		b.WriteString(row + "\n")
		b.WriteString(walls + "\n")
	}
	return b.String()
}
