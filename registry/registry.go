// Package registry maps algorithm kinds to ready-to-run instances.
package registry

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/generation"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

var (
	ErrNotPathfinding = errors.New("algorithm cannot search a maze")
	ErrNotGeneration  = errors.New("algorithm cannot generate a maze")
)

// Pathfinder returns a fresh search for kind.
func Pathfinder(kind algorithm.Kind, options ...pathfinding.Option) (pathfinding.Algorithm, error) {
	switch kind {
	case algorithm.AStar:
		return pathfinding.NewAStar(), nil
	case algorithm.Dijkstra:
		return pathfinding.NewDijkstra(), nil
	case algorithm.BellmanFord:
		return pathfinding.NewBellmanFord(options...), nil
	case algorithm.BFS:
		return pathfinding.NewBFS(), nil
	case algorithm.DFS:
		return pathfinding.NewDFS(), nil
	case algorithm.Backtracking:
		return pathfinding.NewBacktracking(options...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotPathfinding, kind)
}

// Generator returns a fresh generator for kind.
func Generator(kind algorithm.Kind, options ...generation.Option) (generation.Generator, error) {
	switch kind {
	case algorithm.DFS:
		return generation.NewDFS(options...), nil
	case algorithm.Backtracking:
		return generation.NewBacktracking(options...), nil
	case algorithm.WFC:
		return generation.NewWFC(options...), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotGeneration, kind)
}
