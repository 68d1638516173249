package service

import (
	"errors"

	"github.com/beka-birhanu/vinom-pathfinder/stream"
)

// PathfindingState tracks whether a search is in flight.
type PathfindingState uint8

const (
	NotStarted PathfindingState = iota
	Searching
	Finished
)

func (s PathfindingState) String() string {
	switch s {
	case Searching:
		return "running"
	case Finished:
		return "finished"
	}
	return "not_started"
}

// AnimationState tracks whether buffered snapshots are being replayed.
type AnimationState uint8

const (
	NotAnimating AnimationState = iota
	Animating
	Paused
)

func (s AnimationState) String() string {
	switch s {
	case Animating:
		return "running"
	case Paused:
		return "paused"
	}
	return "not_running"
}

var ErrNoRun = errors.New("playback has no run")

// Playback replays a run one snapshot per tick. Every tick drains whatever the
// worker produced so far into a buffer without blocking, then advances the display
// by at most one frame. Once the stream is closed the worker is joined, so a worker
// panic surfaces from Tick.
type Playback struct {
	run         *Run
	buffer      []stream.Result
	current     stream.Result
	pathfinding PathfindingState
	animation   AnimationState
}

// NewPlayback returns an idle playback.
func NewPlayback() *Playback {
	return &Playback{}
}

// Start begins replaying r, abandoning any previous run.
func (p *Playback) Start(r *Run) {
	p.Stop()
	p.run = r
	p.buffer = nil
	p.current = stream.Result{}
	p.pathfinding = Searching
	p.animation = Animating
}

// Tick polls the run and advances by one frame. It reports whether the current
// frame changed.
func (p *Playback) Tick() (stream.Result, bool) {
	if p.run == nil {
		return p.current, false
	}
	p.poll()

	if p.animation != Animating || len(p.buffer) == 0 {
		if p.pathfinding == Finished && len(p.buffer) == 0 {
			p.animation = NotAnimating
		}
		return p.current, false
	}

	p.current = p.buffer[0]
	p.buffer[0] = stream.Result{}
	p.buffer = p.buffer[1:]
	if p.pathfinding == Finished && len(p.buffer) == 0 {
		p.animation = NotAnimating
	}
	return p.current, true
}

func (p *Playback) poll() {
	if p.pathfinding != Searching {
		return
	}
	for {
		r, err := p.run.TryRecv()
		switch {
		case err == nil:
			p.buffer = append(p.buffer, r)
			continue
		case errors.Is(err, stream.ErrClosed):
			p.pathfinding = Finished
			p.run.Wait()
		}
		return
	}
}

// Pause freezes the display. Snapshots keep being buffered.
func (p *Playback) Pause() error {
	if p.run == nil {
		return ErrNoRun
	}
	if p.animation == Animating {
		p.animation = Paused
	}
	return nil
}

// Resume continues a paused replay.
func (p *Playback) Resume() error {
	if p.run == nil {
		return ErrNoRun
	}
	if p.animation == Paused {
		p.animation = Animating
	}
	return nil
}

// Stop abandons the current run without waiting for its worker.
func (p *Playback) Stop() {
	if p.run != nil && p.pathfinding == Searching {
		p.run.Cancel()
	}
	p.run = nil
	p.buffer = nil
	p.pathfinding = NotStarted
	p.animation = NotAnimating
}

// State returns both state machines.
func (p *Playback) State() (PathfindingState, AnimationState) {
	return p.pathfinding, p.animation
}

// Pending returns how many snapshots are buffered but not shown yet.
func (p *Playback) Pending() int {
	return len(p.buffer)
}

// Current returns the frame on display.
func (p *Playback) Current() stream.Result {
	return p.current
}
