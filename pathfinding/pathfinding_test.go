package pathfinding_test

import (
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/generation"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openRoom is a 5x5 thick maze with a walled ring and an empty 3x3 interior.
func openRoom() *maze.Maze {
	m := maze.NewBlank(5, 5, maze.Thick)
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 3; x++ {
			m.MarkPath(maze.Point{X: x, Y: y})
		}
	}
	m.MarkEntrance(maze.Point{X: 1, Y: 1})
	m.MarkExit(maze.Point{X: 3, Y: 3})
	m.Backup()
	return m
}

// splitRoom is openRoom with the middle column walled off.
func splitRoom() *maze.Maze {
	m := openRoom()
	for y := 1; y <= 3; y++ {
		m.SetCell(2, y, maze.Cell{Status: maze.Wall})
	}
	m.Backup()
	return m
}

func allAlgorithms() []pathfinding.Algorithm {
	return []pathfinding.Algorithm{
		pathfinding.NewAStar(),
		pathfinding.NewDijkstra(),
		pathfinding.NewBellmanFord(),
		pathfinding.NewBFS(),
		pathfinding.NewDFS(),
		pathfinding.NewBacktracking(pathfinding.WithSeed(7)),
	}
}

func shortestPathAlgorithms() []pathfinding.Algorithm {
	return []pathfinding.Algorithm{
		pathfinding.NewAStar(),
		pathfinding.NewDijkstra(),
		pathfinding.NewBellmanFord(),
		pathfinding.NewBFS(),
	}
}

func generatedMazes(t *testing.T) []*maze.Maze {
	t.Helper()
	var mazes []*maze.Maze
	for seed := int64(1); seed <= 3; seed++ {
		for _, g := range []generation.Generator{
			generation.NewDFS(generation.WithSeed(seed)),
			generation.NewBacktracking(generation.WithSeed(seed)),
		} {
			for _, typ := range []maze.Type{maze.Thick, maze.Slim} {
				m, err := g.Generate(typ, 15, 11, maze.DefaultPoint(), nil)
				require.NoError(t, err)
				mazes = append(mazes, m)
			}
		}
		m, err := generation.NewWFC(generation.WithSeed(seed)).Generate(maze.Thick, 15, 11, maze.DefaultPoint(), nil)
		require.NoError(t, err)
		mazes = append(mazes, m)
	}
	return mazes
}

// perfectMazes have exactly one route between any two cells.
func perfectMazes(t *testing.T) []*maze.Maze {
	t.Helper()
	var mazes []*maze.Maze
	for seed := int64(1); seed <= 3; seed++ {
		for _, typ := range []maze.Type{maze.Thick, maze.Slim} {
			m, err := generation.NewBacktracking(generation.WithSeed(seed)).Generate(typ, 13, 9, maze.DefaultPoint(), nil)
			require.NoError(t, err)
			mazes = append(mazes, m)
		}
	}
	return mazes
}

func TestOpenRoom(t *testing.T) {
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name().String(), func(t *testing.T) {
			m := openRoom()
			alg.FindPath(m, nil)

			assert.True(t, pathfinding.Succeeded(m))
			assert.LessOrEqual(t, m.Count(maze.Visited)+m.Count(maze.FinalPath), 25)
			assert.Positive(t, alg.Stats().Steps)
		})
	}

	t.Run("shortest route has five cells", func(t *testing.T) {
		for _, alg := range shortestPathAlgorithms() {
			m := openRoom()
			alg.FindPath(m, nil)
			assert.Equal(t, 5, m.Count(maze.FinalPath), alg.Name().String())
		}
	})

	t.Run("dfs follows the fixed direction order", func(t *testing.T) {
		m := openRoom()
		pathfinding.NewDFS().FindPath(m, nil)

		assert.Equal(t, []maze.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3}}, m.PointsWithStatus(maze.FinalPath))
	})
}

func TestShortestPathsAgree(t *testing.T) {
	for i, original := range generatedMazes(t) {
		lengths := make(map[string]int)
		for _, alg := range shortestPathAlgorithms() {
			m := original.FromOriginal()
			alg.FindPath(m, nil)
			require.True(t, pathfinding.Succeeded(m), "maze %d, %s", i, alg.Name())
			lengths[alg.Name().String()] = m.Count(maze.FinalPath)
		}

		bfs := lengths["bfs"]
		for name, length := range lengths {
			assert.Equal(t, bfs, length, "maze %d, %s", i, name)
		}
	}
}

// assertSimpleRoute walks the FinalPath cells from the entrance and checks they form
// one passable chain that ends at the exit without revisiting a cell.
func assertSimpleRoute(t *testing.T, m *maze.Maze) {
	t.Helper()
	entrance, exit := m.MustEntrance(), m.MustExit()
	route := m.PointsWithStatus(maze.FinalPath)
	require.NotEmpty(t, route)

	seen := map[maze.Point]bool{entrance: true}
	current := entrance
	for steps := 1; current != exit; steps++ {
		var next []maze.Point
		for _, n := range m.Neighbors(current) {
			if !seen[n] && m.Cell(n).Status == maze.FinalPath {
				next = append(next, n)
			}
		}
		require.Len(t, next, 1, "route forks or breaks at %s", current)
		current = next[0]
		seen[current] = true
		require.LessOrEqual(t, steps, len(route))
	}
	assert.Len(t, seen, len(route))
}

func TestDepthFirstRoutes(t *testing.T) {
	for i, original := range perfectMazes(t) {
		for _, alg := range []pathfinding.Algorithm{
			pathfinding.NewDFS(),
			pathfinding.NewBacktracking(pathfinding.WithSeed(int64(i))),
		} {
			t.Run(alg.Name().String(), func(t *testing.T) {
				m := original.FromOriginal()
				alg.FindPath(m, nil)

				require.True(t, pathfinding.Succeeded(m))
				assertSimpleRoute(t, m)

				// A perfect maze has a single route, which BFS also finds
				reference := original.FromOriginal()
				pathfinding.NewBFS().FindPath(reference, nil)
				assert.Equal(t, reference.Count(maze.FinalPath), m.Count(maze.FinalPath))
			})
		}
	}
}

func TestResetBetweenRuns(t *testing.T) {
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name().String(), func(t *testing.T) {
			m := generatedMazes(t)[0]
			pristine := m.FromOriginal()
			entrance, exit := m.MustEntrance(), m.MustExit()

			for run := 0; run < 2; run++ {
				alg.FindPath(m, nil)
				m.Reset()

				assert.Zero(t, m.Count(maze.Visited))
				assert.Zero(t, m.Count(maze.FinalPath))
				assert.Equal(t, entrance, m.MustEntrance())
				assert.Equal(t, exit, m.MustExit())
				for y := 0; y < m.Height(); y++ {
					for x := 0; x < m.Width(); x++ {
						p := maze.Point{X: x, Y: y}
						assert.Equal(t, pristine.Cell(p), m.Cell(p), "cell %s", p)
					}
				}
			}
		})
	}
}

func TestTopologyUntouched(t *testing.T) {
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name().String(), func(t *testing.T) {
			original := generatedMazes(t)[1]
			m := original.FromOriginal()
			alg.FindPath(m, nil)

			for y := 0; y < m.Height(); y++ {
				for x := 0; x < m.Width(); x++ {
					p := maze.Point{X: x, Y: y}
					assert.Equal(t, original.Cell(p).Walls, m.Cell(p).Walls)
					assert.Equal(t, original.Cell(p).Status == maze.Wall, m.Cell(p).Status == maze.Wall)
				}
			}
		})
	}
}

func TestUnreachableExit(t *testing.T) {
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name().String(), func(t *testing.T) {
			m := splitRoom()
			alg.FindPath(m, nil)

			assert.False(t, pathfinding.Succeeded(m))
			assert.Zero(t, m.Count(maze.FinalPath))
			assert.Positive(t, m.Count(maze.Visited))
		})
	}
}

func TestBellmanFord(t *testing.T) {
	t.Run("negative cycle pass never relaxes", func(t *testing.T) {
		for _, original := range generatedMazes(t) {
			bf := pathfinding.NewBellmanFord(pathfinding.WithExhaustive())
			m := original.FromOriginal()
			bf.FindPath(m, nil)

			assert.True(t, pathfinding.Succeeded(m))
			assert.True(t, bf.NegativeCycleChecked())
			assert.False(t, bf.NegativeCycleFound())
		}
	})

	t.Run("early exit never relaxes more", func(t *testing.T) {
		for _, original := range generatedMazes(t) {
			early, full := pathfinding.NewBellmanFord(), pathfinding.NewBellmanFord(pathfinding.WithExhaustive())
			a, b := original.FromOriginal(), original.FromOriginal()
			early.FindPath(a, nil)
			full.FindPath(b, nil)

			assert.LessOrEqual(t, early.Stats().Steps, full.Stats().Steps)
			assert.Equal(t, b.Count(maze.FinalPath), a.Count(maze.FinalPath))
		}
	})

	t.Run("unreachable exit runs the check", func(t *testing.T) {
		bf := pathfinding.NewBellmanFord()
		bf.FindPath(splitRoom(), nil)

		assert.True(t, bf.NegativeCycleChecked())
		assert.False(t, bf.NegativeCycleFound())
	})
}

func TestStreaming(t *testing.T) {
	t.Run("one snapshot per step and per route cell", func(t *testing.T) {
		sink := &stream.Collector{}
		bfs := pathfinding.NewBFS()
		m := openRoom()
		bfs.FindPath(m, sink)

		results := sink.Results()
		assert.Len(t, results, bfs.Stats().Steps+m.Count(maze.FinalPath))

		last, ok := sink.Last()
		require.True(t, ok)
		assert.Equal(t, m.Count(maze.FinalPath), last.Maze.Count(maze.FinalPath))
		assert.Equal(t, bfs.Stats().Steps, last.Stats.Steps)

		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i].Stats.Steps, results[i-1].Stats.Steps)
		}
	})

	t.Run("snapshots are independent clones", func(t *testing.T) {
		sink := &stream.Collector{}
		pathfinding.NewAStar().FindPath(openRoom(), sink)

		first := sink.Results()[0]
		assert.Equal(t, 1, first.Maze.Count(maze.Visited))
		assert.Zero(t, first.Maze.Count(maze.FinalPath))
	})

	t.Run("dropped receiver stops the search", func(t *testing.T) {
		for _, alg := range allAlgorithms() {
			s := stream.New()
			s.Drop()
			m := openRoom()
			alg.FindPath(m, s)

			assert.LessOrEqual(t, alg.Stats().Steps, 1, alg.Name().String())
			assert.False(t, pathfinding.Succeeded(m), alg.Name().String())
		}
	})
}

func TestMissingEndpointsPanic(t *testing.T) {
	for _, alg := range allAlgorithms() {
		t.Run(alg.Name().String(), func(t *testing.T) {
			assert.Panics(t, func() {
				alg.FindPath(maze.NewOpen(5, 5, maze.Thick), nil)
			})
		})
	}
}
