package maze

import "fmt"

// Direction is a cardinal offset on the grid.
type Direction struct {
	DX int
	DY int
}

var (
	Down  = Direction{DX: 0, DY: 1}
	Right = Direction{DX: 1, DY: 0}
	Up    = Direction{DX: 0, DY: -1}
	Left  = Direction{DX: -1, DY: 0}
)

// Directions returns the four unit offsets in a fixed order.
func Directions() [4]Direction {
	return [4]Direction{Down, Right, Up, Left}
}

// DoubledDirections returns the unit offsets scaled by two. Carving along these leaves
// a one cell wall between neighbouring corridors.
func DoubledDirections() [4]Direction {
	return [4]Direction{{0, 2}, {2, 0}, {0, -2}, {-2, 0}}
}

// Opposite returns the inverse of a unit direction.
// It panics on anything other than the four unit offsets.
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Right:
		return Left
	case Up:
		return Down
	case Left:
		return Right
	}
	panic(fmt.Sprintf("maze: invalid direction (%d,%d)", d.DX, d.DY))
}

// Half returns the unit direction of a doubled offset.
func (d Direction) Half() Direction {
	return Direction{DX: d.DX / 2, DY: d.DY / 2}
}

// GetOppositeDirection maps an offset to its inverse.
func GetOppositeDirection(dx, dy int) (int, int) {
	o := Direction{DX: dx, DY: dy}.Opposite()
	return o.DX, o.DY
}

// CalculateDirection returns the unit direction pointing from current to next.
// Both points must be orthogonally adjacent.
func CalculateDirection(current, next Point) Direction {
	d := Direction{DX: next.X - current.X, DY: next.Y - current.Y}
	if abs(d.DX)+abs(d.DY) != 1 {
		panic(fmt.Sprintf("maze: %s and %s are not adjacent", current, next))
	}
	return d
}
