package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	t.Run("Wall bits map to directions", func(t *testing.T) {
		c := Cell{Status: Path, Walls: LeftWall | BottomWall}

		assert.True(t, c.HasLeftWall())
		assert.True(t, c.HasBottomWall())
		assert.False(t, c.HasRightWall())
		assert.False(t, c.HasTopWall())
		assert.True(t, c.HasWallInDirection(Left))
		assert.True(t, c.HasWallInDirection(Down))
		assert.False(t, c.HasWallInDirection(Up))
	})

	t.Run("WithWall sets and clears a single bit", func(t *testing.T) {
		c := Cell{Status: Path, Walls: AllWalls}.WithWall(Up, false)
		assert.Equal(t, LeftWall|RightWall|BottomWall, c.Walls)

		c = c.WithWall(Up, true)
		assert.Equal(t, AllWalls, c.Walls)
	})

	t.Run("MarkAs keeps the wall mask", func(t *testing.T) {
		c := Cell{Status: Path, Walls: RightWall}.MarkAs(Visited)

		assert.Equal(t, Visited, c.Status)
		assert.Equal(t, RightWall, c.Walls)
		assert.True(t, c.MarkAs(Entrance).IsEntrance())
		assert.True(t, c.MarkAs(Exit).IsExit())
	})

	t.Run("Invalid direction panics", func(t *testing.T) {
		assert.Panics(t, func() { Cell{}.HasWallInDirection(Direction{DX: 2}) })
	})

	t.Run("Status names", func(t *testing.T) {
		assert.Equal(t, "final_path", FinalPath.String())
		assert.Equal(t, "status(42)", Status(42).String())
	})
}

func TestMovement(t *testing.T) {
	t.Run("Opposites", func(t *testing.T) {
		for _, d := range Directions() {
			assert.Equal(t, d, d.Opposite().Opposite())
			assert.Equal(t, Point{}, Point{}.Add(d).Add(d.Opposite()))
		}
		dx, dy := GetOppositeDirection(0, 1)
		assert.Equal(t, 0, dx)
		assert.Equal(t, -1, dy)
	})

	t.Run("Doubled directions halve to the unit set", func(t *testing.T) {
		doubled := DoubledDirections()
		for i, d := range Directions() {
			assert.Equal(t, d, doubled[i].Half())
		}
	})

	t.Run("CalculateDirection", func(t *testing.T) {
		assert.Equal(t, Right, CalculateDirection(Point{X: 1, Y: 1}, Point{X: 2, Y: 1}))
		assert.Equal(t, Up, CalculateDirection(Point{X: 1, Y: 1}, Point{X: 1, Y: 0}))
		assert.Panics(t, func() { CalculateDirection(Point{X: 1, Y: 1}, Point{X: 2, Y: 2}) })
		assert.Panics(t, func() { CalculateDirection(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}) })
	})

	t.Run("Manhattan", func(t *testing.T) {
		assert.Equal(t, 4, DefaultPoint().Manhattan(Point{X: 3, Y: 3}))
		assert.Equal(t, 0, DefaultPoint().Manhattan(DefaultPoint()))
	})
}
