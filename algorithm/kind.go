// Package algorithm enumerates every pathfinding and maze generation algorithm.
//
// One closed enumeration spans both roles; some members only search, WFC only
// generates, and DFS and Backtracking do both. Use IsPathfinding and IsGeneration
// before handing a Kind to the matching registry.
package algorithm

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
)

// Kind identifies an algorithm.
type Kind uint8

const (
	AStar Kind = iota
	Backtracking
	BellmanFord
	BFS
	DFS
	Dijkstra
	WFC
)

var ErrUnknownKind = errors.New("unknown algorithm")

// All lists every algorithm in declaration order.
var All = []Kind{AStar, Backtracking, BellmanFord, BFS, DFS, Dijkstra, WFC}

var (
	identifiers = map[Kind]string{
		AStar:        "astar",
		Backtracking: "backtracking",
		BellmanFord:  "bellman-ford",
		BFS:          "bfs",
		DFS:          "dfs",
		Dijkstra:     "dijkstra",
		WFC:          "wfc",
	}
	displayNames = map[Kind]string{
		AStar:        "A*",
		Backtracking: "Backtracking",
		BellmanFord:  "Bellman-Ford",
		BFS:          "Breadth-First Search (BFS)",
		DFS:          "Depth-First Search (DFS)",
		Dijkstra:     "Dijkstra's",
		WFC:          "Wave Function Collapse",
	}
)

// String returns the stable identifier used in configuration and URLs.
func (k Kind) String() string {
	if id, ok := identifiers[k]; ok {
		return id
	}
	return fmt.Sprintf("algorithm(%d)", uint8(k))
}

// DisplayName returns a human readable name.
func (k Kind) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return k.String()
}

// Parse resolves a Kind from its identifier, case-insensitively.
func Parse(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, id := range identifiers {
		if id == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := identifiers[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PathfindingKinds lists the algorithms that can search a maze.
func PathfindingKinds() []Kind {
	return []Kind{AStar, Backtracking, BellmanFord, BFS, DFS, Dijkstra}
}

// GenerationKinds lists the algorithms that can generate a maze of type t.
func GenerationKinds(t maze.Type) []Kind {
	if t == maze.Slim {
		return []Kind{DFS, Backtracking}
	}
	return []Kind{DFS, Backtracking, WFC}
}

// IsPathfinding reports whether k can search a maze.
func (k Kind) IsPathfinding() bool {
	return slices.Contains(PathfindingKinds(), k)
}

// IsGeneration reports whether k can generate a maze of any type.
func (k Kind) IsGeneration() bool {
	return slices.Contains(GenerationKinds(maze.Thick), k) || slices.Contains(GenerationKinds(maze.Slim), k)
}

// SupportsMazeType reports whether k can generate a maze of type t.
func (k Kind) SupportsMazeType(t maze.Type) bool {
	return slices.Contains(GenerationKinds(t), k)
}
