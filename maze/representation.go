package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Type selects the cell representation of a maze.
type Type uint8

const (
	// Thick mazes use whole cells as walls.
	Thick Type = iota
	// Slim mazes keep every cell walkable and block edges with wall bits.
	Slim
)

var ErrUnknownType = errors.New("unknown maze type")

func (t Type) String() string {
	switch t {
	case Thick:
		return "thick"
	case Slim:
		return "slim"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType resolves a maze type from its name.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thick", "":
		return Thick, nil
	case "slim":
		return Slim, nil
	}
	return Thick, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Representation captures everything that differs between thick and slim mazes, so
// the Maze and the algorithms never branch on the maze type themselves.
type Representation interface {
	// Type returns the maze type this representation implements.
	Type() Type
	// Blank returns the cell a maze is filled with before carving starts.
	Blank() Cell
	// Open returns a fully carved cell.
	Open() Cell
	// Passable reports whether a walker can step from current to the adjacent next.
	Passable(m *Maze, current, next Point) bool
	// CarveSteps returns the offsets carving algorithms move along.
	CarveSteps() [4]Direction
	// CanCarveTo reports whether p is inside the carvable area and still uncarved.
	CanCarveTo(m *Maze, p Point) bool
	// Carve opens the passage between from and to, which are one carve step apart.
	Carve(m *Maze, from, to Point)
}

// RepresentationOf returns the representation implementing t.
func RepresentationOf(t Type) Representation {
	if t == Slim {
		return slimWalls{}
	}
	return thickWalls{}
}

type thickWalls struct{}

func (thickWalls) Type() Type  { return Thick }
func (thickWalls) Blank() Cell { return Cell{Status: Wall} }
func (thickWalls) Open() Cell  { return Cell{Status: Path} }

func (thickWalls) Passable(m *Maze, _, next Point) bool {
	return m.Cell(next).Status != Wall
}

func (thickWalls) CarveSteps() [4]Direction {
	return DoubledDirections()
}

// CanCarveTo keeps the outer ring intact so the exit can be placed on it later.
func (thickWalls) CanCarveTo(m *Maze, p Point) bool {
	if p.X <= 0 || p.Y <= 0 || p.X >= m.width-1 || p.Y >= m.height-1 {
		return false
	}
	return m.Cell(p).Status == Wall
}

func (thickWalls) Carve(m *Maze, from, to Point) {
	mid := from.Add(Direction{DX: to.X - from.X, DY: to.Y - from.Y}.Half())
	m.MarkPath(mid)
	m.MarkPath(to)
}

type slimWalls struct{}

func (slimWalls) Type() Type  { return Slim }
func (slimWalls) Blank() Cell { return Cell{Status: Path, Walls: AllWalls} }
func (slimWalls) Open() Cell  { return Cell{Status: Path, Walls: NoWalls} }

func (slimWalls) Passable(m *Maze, current, next Point) bool {
	d := CalculateDirection(current, next)
	return !m.Cell(current).HasWallInDirection(d) && !m.Cell(next).HasWallInDirection(d.Opposite())
}

func (slimWalls) CarveSteps() [4]Direction {
	return Directions()
}

func (slimWalls) CanCarveTo(m *Maze, p Point) bool {
	if !m.IsValidCoord(p.X, p.Y) {
		return false
	}
	return m.Cell(p).Walls == AllWalls
}

func (slimWalls) Carve(m *Maze, from, to Point) {
	d := CalculateDirection(from, to)
	m.setWall(from, d, false)
	m.setWall(to, d.Opposite(), false)
}
