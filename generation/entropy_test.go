package generation

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

// assertBucketsMatchScan compares the incremental buckets with a full grid rescan.
func assertBucketsMatchScan(t *testing.T, m *maze.Maze, collapsed mapset.Set[maze.Point], e *entropyBuckets) {
	t.Helper()
	low, high := 0, 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := maze.Point{X: x, Y: y}
			if collapsed.Has(p) {
				require.False(t, e.tracked(p), "collapsed %s still tracked", p)
				continue
			}
			_, inLow := e.low.index[p]
			if entropyOf(m, p) == lowEntropy {
				require.True(t, inLow, "%s belongs to the low bucket", p)
				low++
			} else {
				require.False(t, inLow, "%s belongs to the high bucket", p)
				high++
			}
		}
	}
	assert.Len(t, e.low.points, low)
	assert.Len(t, e.high.points, high)
}

func TestEntropyBuckets(t *testing.T) {
	t.Run("Incremental updates match a rescan", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		m := maze.NewBlank(15, 11, maze.Thick)
		collapsed := mapset.New[maze.Point]()
		for y := 0; y < m.Height(); y++ {
			for x := 0; x < m.Width(); x++ {
				if p := (maze.Point{X: x, Y: y}); isBorder(m, p) {
					collapsed.Put(p)
				}
			}
		}

		e := newEntropyBuckets(m, collapsed)
		assertBucketsMatchScan(t, m, collapsed, e)
		for {
			p, ok := e.lowest(rng)
			if !ok {
				break
			}
			collapsed.Put(p)
			e.remove(p)
			if rng.Intn(2) == 0 {
				m.MarkPath(p)
				e.refreshAround(m, p)
			}
			assertBucketsMatchScan(t, m, collapsed, e)
		}
		assert.Equal(t, m.Width()*m.Height(), collapsed.Size())
	})

	t.Run("Lowest prefers the low bucket", func(t *testing.T) {
		m := maze.NewOpen(5, 5, maze.Thick)
		collapsed := mapset.New[maze.Point]()
		e := newEntropyBuckets(m, collapsed)

		// Interior cells of an open grid have four open neighbours
		require.NotEmpty(t, e.high.points)
		p, ok := e.lowest(rand.New(rand.NewSource(1)))
		require.True(t, ok)
		assert.Equal(t, lowEntropy, entropyOf(m, p))
	})

	t.Run("Large collapse stays valid", func(t *testing.T) {
		m, err := NewWFC(WithSeed(7)).Generate(maze.Thick, 101, 101, maze.DefaultPoint(), nil)
		require.NoError(t, err)
		assert.NoError(t, m.Validate())
		assert.True(t, connected(m, m.MustEntrance(), m.MustExit()))
	})
}
