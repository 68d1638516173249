package generation

import (
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/spakin/disjoint"
)

// connected reports whether a and b fall in the same passable component. Every
// passable cell starts in its own set and is merged with its passable neighbours.
func connected(m *maze.Maze, a, b maze.Point) bool {
	sets := make([]*disjoint.Element, m.Width()*m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			sets[m.Index(x, y)] = disjoint.NewElement()
		}
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			current := maze.Point{X: x, Y: y}
			if m.Cell(current).Status == maze.Wall {
				continue
			}
			// Right and down cover every edge once
			for _, d := range []maze.Direction{maze.Right, maze.Down} {
				next := current.Add(d)
				if m.IsValidCoord(next.X, next.Y) && m.IsPassable(current, next) {
					disjoint.Union(sets[m.Index(x, y)], sets[m.Index(next.X, next.Y)])
				}
			}
		}
	}

	return sets[m.Index(a.X, a.Y)].Find() == sets[m.Index(b.X, b.Y)].Find()
}

// carveRoute opens the shortest route from exit to entrance through the interior,
// ignoring walls, turning every wall on it into path.
func carveRoute(m *maze.Maze, exit, entrance maze.Point) {
	cameFrom := map[maze.Point]maze.Point{exit: exit}
	queue := []maze.Point{exit}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == entrance {
			break
		}
		for _, d := range maze.Directions() {
			next := current.Add(d)
			if _, seen := cameFrom[next]; seen || (isBorder(m, next) && next != entrance) {
				continue
			}
			if !m.IsValidCoord(next.X, next.Y) {
				continue
			}
			cameFrom[next] = current
			queue = append(queue, next)
		}
	}

	for p := entrance; p != exit; p = cameFrom[p] {
		if m.Cell(p).Status == maze.Wall {
			m.MarkPath(p)
		}
	}
}
