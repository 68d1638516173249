package algorithm

import (
	"encoding/json"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Run("Parse round trips every identifier", func(t *testing.T) {
		for _, k := range All {
			parsed, err := Parse(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, parsed)
		}

		k, err := Parse("  Bellman-Ford ")
		require.NoError(t, err)
		assert.Equal(t, BellmanFord, k)

		_, err = Parse("greedy")
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("Roles", func(t *testing.T) {
		assert.True(t, AStar.IsPathfinding())
		assert.False(t, AStar.IsGeneration())
		assert.True(t, WFC.IsGeneration())
		assert.False(t, WFC.IsPathfinding())
		assert.True(t, DFS.IsPathfinding() && DFS.IsGeneration())
		assert.True(t, Backtracking.IsPathfinding() && Backtracking.IsGeneration())

		for _, k := range All {
			assert.True(t, k.IsPathfinding() || k.IsGeneration(), k.String())
		}
	})

	t.Run("WFC generates thick mazes only", func(t *testing.T) {
		assert.True(t, WFC.SupportsMazeType(maze.Thick))
		assert.False(t, WFC.SupportsMazeType(maze.Slim))
		assert.ElementsMatch(t, []Kind{DFS, Backtracking}, GenerationKinds(maze.Slim))
	})

	t.Run("Names", func(t *testing.T) {
		assert.Equal(t, "A*", AStar.DisplayName())
		assert.Equal(t, "algorithm(99)", Kind(99).String())
		assert.Equal(t, "algorithm(99)", Kind(99).DisplayName())
	})

	t.Run("JSON uses identifiers", func(t *testing.T) {
		b, err := json.Marshal(map[string]Kind{"kind": BellmanFord})
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"bellman-ford"}`, string(b))

		var decoded struct{ Kind Kind }
		require.NoError(t, json.Unmarshal([]byte(`{"Kind":"dijkstra"}`), &decoded))
		assert.Equal(t, Dijkstra, decoded.Kind)

		assert.Error(t, json.Unmarshal([]byte(`{"Kind":"nope"}`), &decoded))
		_, err = json.Marshal(Kind(99))
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}
