package service

import (
	"fmt"
	"sync"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// WorkerPanic carries a value recovered from a crashed algorithm worker.
type WorkerPanic struct {
	Value any
}

func (p *WorkerPanic) Error() string {
	return fmt.Sprintf("pathfinding worker panicked: %v", p.Value)
}

// Run is one pathfinding algorithm executing on its own goroutine against an
// exclusive copy of a maze. Snapshots flow to the consumer through an unbounded
// stream that the worker closes when the algorithm returns.
type Run struct {
	ID   uuid.UUID
	Kind algorithm.Kind

	alg     pathfinding.Algorithm
	maze    *maze.Maze
	results *stream.Stream
	group   errgroup.Group

	joinOnce sync.Once
	joinErr  error
}

// StartRun resets a copy of m from its original snapshot and searches it with alg
// on a new goroutine.
func StartRun(alg pathfinding.Algorithm, m *maze.Maze) *Run {
	return startRun(alg, m, true)
}

// startRun launches the worker. An unobserved run passes a nil sink, so the
// algorithm takes no snapshots and the stream closes empty.
func startRun(alg pathfinding.Algorithm, m *maze.Maze, observed bool) *Run {
	r := &Run{
		ID:      uuid.New(),
		Kind:    alg.Name(),
		alg:     alg,
		maze:    m.FromOriginal(),
		results: stream.New(),
	}

	r.group.Go(func() (err error) {
		defer r.results.Close()
		defer func() {
			if p := recover(); p != nil {
				err = &WorkerPanic{Value: p}
			}
		}()

		if !observed {
			alg.FindPath(r.maze, nil)
			return nil
		}
		alg.FindPath(r.maze, r.results)
		return nil
	})
	return r
}

// C returns the snapshots in emission order. It is closed when the run ends.
func (r *Run) C() <-chan stream.Result {
	return r.results.C()
}

// Recv blocks for the next snapshot, returning stream.ErrClosed once the run ended.
func (r *Run) Recv() (stream.Result, error) {
	return r.results.Recv()
}

// TryRecv polls for the next snapshot.
func (r *Run) TryRecv() (stream.Result, error) {
	return r.results.TryRecv()
}

// Cancel stops observing the run. The worker notices on its next send and returns.
func (r *Run) Cancel() {
	r.results.Drop()
}

// Join waits for the worker and returns its panic, if any, as a *WorkerPanic.
func (r *Run) Join() error {
	r.joinOnce.Do(func() { r.joinErr = r.group.Wait() })
	return r.joinErr
}

// Wait joins the worker and returns the searched maze. A worker panic is raised
// again on the calling goroutine.
func (r *Run) Wait() *maze.Maze {
	if err := r.Join(); err != nil {
		if p, ok := err.(*WorkerPanic); ok {
			panic(p.Value)
		}
		panic(err)
	}
	return r.maze
}

// Stats returns the algorithm counters. Call it after the run has been joined.
func (r *Run) Stats() *stream.Stats {
	return r.alg.Stats()
}

// Solve runs alg on a copy of m, draining every snapshot, and returns the searched
// maze together with the snapshots in order.
func Solve(alg pathfinding.Algorithm, m *maze.Maze) (*maze.Maze, []stream.Result) {
	r := StartRun(alg, m)

	var results []stream.Result
	for {
		res, err := r.Recv()
		if err != nil {
			break
		}
		results = append(results, res)
	}
	return r.Wait(), results
}
