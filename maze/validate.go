package maze

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Maze invariant violations reported by Validate.
var (
	ErrCellCount       = errors.New("cell count does not match dimensions")
	ErrEntranceCount   = errors.New("original snapshot must hold exactly one entrance")
	ErrExitCount       = errors.New("original snapshot must hold exactly one exit")
	ErrSlimWallStatus  = errors.New("slim maze cell tagged as wall")
	ErrDirtyOriginal   = errors.New("original snapshot holds search marks")
	ErrUnreachableExit = errors.New("exit is not reachable from the entrance")
)

// Validate checks the invariants of a generated maze and returns every violation
// found, combined into one error.
func (m *Maze) Validate() error {
	var err error

	if len(m.cells) != m.width*m.height {
		err = multierr.Append(err, fmt.Errorf("%w: cells=%d", ErrCellCount, len(m.cells)))
	}
	if len(m.original) != m.width*m.height {
		err = multierr.Append(err, fmt.Errorf("%w: original=%d", ErrCellCount, len(m.original)))
	}

	counts := make(map[Status]int)
	for i, c := range m.original {
		counts[c.Status]++
		if m.rep.Type() == Slim && c.Status == Wall {
			err = multierr.Append(err, fmt.Errorf("%w at %s", ErrSlimWallStatus, m.pointAt(i)))
		}
	}

	if counts[Entrance] != 1 {
		err = multierr.Append(err, fmt.Errorf("%w: found %d", ErrEntranceCount, counts[Entrance]))
	}
	if counts[Exit] != 1 {
		err = multierr.Append(err, fmt.Errorf("%w: found %d", ErrExitCount, counts[Exit]))
	}
	if counts[Visited]+counts[FinalPath] > 0 {
		err = multierr.Append(err, ErrDirtyOriginal)
	}

	if counts[Entrance] == 1 && counts[Exit] == 1 && !m.FromOriginal().Reachable(m.MustEntrance(), m.MustExit()) {
		err = multierr.Append(err, ErrUnreachableExit)
	}

	return err
}

// Reachable runs a passability-respecting breadth-first search from start and
// reports whether goal is reached. Cell statuses are not modified.
func (m *Maze) Reachable(start, goal Point) bool {
	seen := make([]bool, len(m.cells))
	seen[m.Index(start.X, start.Y)] = true
	queue := []Point{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return true
		}
		for _, next := range m.Neighbors(current) {
			i := m.Index(next.X, next.Y)
			if !seen[i] {
				seen[i] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
