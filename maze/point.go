package maze

import "fmt"

// Point is a grid coordinate. X grows to the right and Y grows downwards.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DefaultPoint returns (1,1), the first interior cell inside the outer wall ring.
func DefaultPoint() Point {
	return Point{X: 1, Y: 1}
}

// Add returns the point moved by the given direction.
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Manhattan returns the taxicab distance between two points.
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
