package maze

import "fmt"

// Status is the role tag carried by a cell.
type Status uint8

const (
	Wall Status = iota
	Path
	Entrance
	Exit
	Visited
	FinalPath
)

var statusNames = map[Status]string{
	Wall:      "wall",
	Path:      "path",
	Entrance:  "entrance",
	Exit:      "exit",
	Visited:   "visited",
	FinalPath: "final_path",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Walls is a 4-bit mask of blocked edges for slim-wall cells.
type Walls uint8

const (
	LeftWall   Walls = 0b1000
	RightWall  Walls = 0b0100
	TopWall    Walls = 0b0010
	BottomWall Walls = 0b0001

	NoWalls  Walls = 0
	AllWalls Walls = LeftWall | RightWall | TopWall | BottomWall
)

// wallFor maps a unit direction to the wall bit on that side.
func wallFor(d Direction) Walls {
	switch d {
	case Right:
		return RightWall
	case Down:
		return BottomWall
	case Left:
		return LeftWall
	case Up:
		return TopWall
	}
	panic(fmt.Sprintf("maze: invalid direction (%d,%d)", d.DX, d.DY))
}

// Cell represents a single cell in a maze grid.
// Thick-wall mazes only use Status; slim-wall mazes never use the Wall status and
// carry their topology in Walls.
type Cell struct {
	Status Status // Status is the role of the cell (wall, path, visited...).
	Walls  Walls  // Walls is the set of blocked edges, slim mazes only.
}

// IsEntrance reports whether the cell is the entrance.
func (c Cell) IsEntrance() bool {
	return c.Status == Entrance
}

// IsExit reports whether the cell is the exit.
func (c Cell) IsExit() bool {
	return c.Status == Exit
}

// MarkAs returns a copy of the cell tagged with status. Wall bits are preserved.
func (c Cell) MarkAs(status Status) Cell {
	c.Status = status
	return c
}

// HasLeftWall returns true if there is a wall on the left side of the cell.
func (c Cell) HasLeftWall() bool {
	return c.Walls&LeftWall != 0
}

// HasRightWall returns true if there is a wall on the right side of the cell.
func (c Cell) HasRightWall() bool {
	return c.Walls&RightWall != 0
}

// HasTopWall returns true if there is a wall on the top side of the cell.
func (c Cell) HasTopWall() bool {
	return c.Walls&TopWall != 0
}

// HasBottomWall returns true if there is a wall on the bottom side of the cell.
func (c Cell) HasBottomWall() bool {
	return c.Walls&BottomWall != 0
}

// HasWallInDirection reports whether the edge towards d is blocked.
func (c Cell) HasWallInDirection(d Direction) bool {
	return c.Walls&wallFor(d) != 0
}

// WithWall returns a copy of the cell with the wall towards d set or cleared.
func (c Cell) WithWall(d Direction, hasWall bool) Cell {
	if hasWall {
		c.Walls |= wallFor(d)
	} else {
		c.Walls &^= wallFor(d)
	}
	return c
}
