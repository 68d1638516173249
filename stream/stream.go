// Package stream carries algorithm progress from a worker to its consumer.
//
// An algorithm emits one Result per significant step. Each Result holds a full copy
// of the maze cells, so consumers can display it directly without diffing.
package stream

import (
	"errors"
	"sync"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
)

// Stream errors.
var (
	ErrReceiverGone = errors.New("stream receiver dropped")
	ErrClosed       = errors.New("stream closed")
	ErrEmpty        = errors.New("stream empty")
)

// Stats holds per-run counters reported alongside snapshots.
type Stats struct {
	Steps int `json:"steps"` // Steps counts cells visited or expanded so far.
}

// NewStep records one more visited cell.
func (s *Stats) NewStep() {
	s.Steps++
}

// Result is an immutable snapshot of an algorithm run.
type Result struct {
	Maze  *maze.Maze `json:"maze"`
	Stats *Stats     `json:"stats,omitempty"`
}

// Sink receives snapshots from a running algorithm. A non-nil error means nobody
// is listening any more and the algorithm should stop.
type Sink interface {
	Send(Result) error
}

// Emit snapshots m and stats into a Result and sends it. A nil sink discards the
// snapshot without copying.
func Emit(sink Sink, m *maze.Maze, stats *Stats) error {
	if sink == nil {
		return nil
	}
	r := Result{Maze: m.Snapshot()}
	if stats != nil {
		s := *stats
		r.Stats = &s
	}
	return sink.Send(r)
}

// Stream is an unbounded, ordered, single-producer channel of Results. Send never
// blocks on a slow consumer; results are buffered until received.
//
// The producer calls Close when the algorithm returns; that is the only termination
// signal. The consumer may call Drop to stop observing, after which Send fails with
// ErrReceiverGone. Send must not be called after Close.
type Stream struct {
	in        chan Result
	out       chan Result
	dropped   chan struct{}
	closeOnce sync.Once
	dropOnce  sync.Once
}

// New creates a stream and starts its relay goroutine.
func New() *Stream {
	s := &Stream{
		in:      make(chan Result),
		out:     make(chan Result),
		dropped: make(chan struct{}),
	}
	go s.relay()
	return s
}

// relay moves results from in to out through an unbounded buffer.
func (s *Stream) relay() {
	defer close(s.out)

	var buf []Result
	in := s.in
	for in != nil || len(buf) > 0 {
		var out chan Result
		var next Result
		if len(buf) > 0 {
			out = s.out
			next = buf[0]
		}

		select {
		case r, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buf = append(buf, r)
		case out <- next:
			buf[0] = Result{}
			buf = buf[1:]
		case <-s.dropped:
			return
		}
	}
}

// Send implements Sink.
func (s *Stream) Send(r Result) error {
	select {
	case <-s.dropped:
		return ErrReceiverGone
	default:
	}

	select {
	case s.in <- r:
		return nil
	case <-s.dropped:
		return ErrReceiverGone
	}
}

// Close marks the end of the stream. Buffered results are still delivered.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.in) })
}

// Drop tells the producer nobody is listening and discards buffered results.
func (s *Stream) Drop() {
	s.dropOnce.Do(func() { close(s.dropped) })
}

// C returns the receive side. It is closed once the stream is closed and drained,
// or dropped.
func (s *Stream) C() <-chan Result {
	return s.out
}

// Recv blocks for the next result. It returns ErrClosed once the stream is over.
func (s *Stream) Recv() (Result, error) {
	r, ok := <-s.out
	if !ok {
		return Result{}, ErrClosed
	}
	return r, nil
}

// TryRecv returns the next result without blocking. It returns ErrEmpty when
// nothing is buffered yet and ErrClosed once the stream is over.
func (s *Stream) TryRecv() (Result, error) {
	select {
	case r, ok := <-s.out:
		if !ok {
			return Result{}, ErrClosed
		}
		return r, nil
	default:
		return Result{}, ErrEmpty
	}
}
