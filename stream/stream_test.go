package stream

import (
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	t.Run("Nil sink is a no-op", func(t *testing.T) {
		assert.NoError(t, Emit(nil, maze.NewOpen(3, 3, maze.Thick), &Stats{}))
	})

	t.Run("Snapshots are copies", func(t *testing.T) {
		c := &Collector{}
		m := maze.NewOpen(3, 3, maze.Thick)
		stats := &Stats{}
		stats.NewStep()

		require.NoError(t, Emit(c, m, stats))
		m.MarkVisited(maze.Point{X: 1, Y: 1})
		stats.NewStep()
		require.NoError(t, Emit(c, m, nil))

		results := c.Results()
		require.Len(t, results, 2)
		assert.Zero(t, results[0].Maze.Count(maze.Visited))
		assert.True(t, results[0].Maze.IsSnapshot())
		assert.Equal(t, 1, results[0].Stats.Steps)
		assert.Equal(t, 1, results[1].Maze.Count(maze.Visited))
		assert.Nil(t, results[1].Stats)
	})
}

func TestStream(t *testing.T) {
	t.Run("Delivers in order after close", func(t *testing.T) {
		s := New()
		m := maze.NewOpen(3, 3, maze.Thick)
		for i := 1; i <= 100; i++ {
			require.NoError(t, s.Send(Result{Maze: m, Stats: &Stats{Steps: i}}))
		}
		s.Close()

		var steps []int
		for {
			r, err := s.Recv()
			if err != nil {
				assert.ErrorIs(t, err, ErrClosed)
				break
			}
			steps = append(steps, r.Stats.Steps)
		}
		require.Len(t, steps, 100)
		for i, step := range steps {
			assert.Equal(t, i+1, step)
		}
	})

	t.Run("Send does not wait for the consumer", func(t *testing.T) {
		s := New()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 1000; i++ {
				_ = s.Send(Result{Stats: &Stats{Steps: i}})
			}
			s.Close()
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("producer blocked on an idle consumer")
		}

		n := 0
		for range s.C() {
			n++
		}
		assert.Equal(t, 1000, n)
	})

	t.Run("TryRecv", func(t *testing.T) {
		s := New()
		_, err := s.TryRecv()
		assert.ErrorIs(t, err, ErrEmpty)

		require.NoError(t, s.Send(Result{Stats: &Stats{Steps: 7}}))
		s.Close()

		assert.Eventually(t, func() bool {
			r, err := s.TryRecv()
			return err == nil && r.Stats.Steps == 7
		}, time.Second, time.Millisecond)
		assert.Eventually(t, func() bool {
			_, err := s.TryRecv()
			return err == ErrClosed
		}, time.Second, time.Millisecond)
	})

	t.Run("Drop fails the producer", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Send(Result{}))
		s.Drop()
		s.Drop()

		assert.ErrorIs(t, s.Send(Result{}), ErrReceiverGone)
		// Buffered results may still race out, but the channel must close
		for range s.C() {
		}
	})

	t.Run("Concurrent drop unblocks a sender", func(t *testing.T) {
		s := New()
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s.Send(Result{}) == nil {
			}
		}()
		time.Sleep(10 * time.Millisecond)
		s.Drop()
		wg.Wait()
	})
}

func TestCollector(t *testing.T) {
	c := &Collector{}
	_, ok := c.Last()
	assert.False(t, ok)

	require.NoError(t, c.Send(Result{Stats: &Stats{Steps: 1}}))
	require.NoError(t, c.Send(Result{Stats: &Stats{Steps: 2}}))

	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, 2, last.Stats.Steps)

	results := c.Results()
	results[0] = Result{}
	assert.NotNil(t, c.Results()[0].Stats, "Results returns a copy")
}
