package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/generation"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/registry"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/beka-birhanu/vinom-pathfinder/stream"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 101
	defaultRunRetention = time.Hour
	defaultMaxFrames    = 4096
)

var (
	ErrRunInProgress    = errors.New("a run is already in progress on this maze")
	ErrRunNotFound      = errors.New("run not found")
	ErrMazeTooLarge     = errors.New("maze dimensions exceed the configured maximum")
	ErrInvalidFrameFrom = errors.New("frame index out of range")
)

type runRecord struct {
	run        *Run
	mazeID     uuid.UUID
	frames     []stream.Result
	latest     stream.Result // latest is the newest snapshot past the frame cap.
	truncated  bool
	done       bool
	discarded  bool
	finishedAt time.Time
	success    bool
	stats      *stream.Stats
	err        error
}

// MazeService generates mazes into a store and runs pathfinding on them. At most
// one run per maze is in flight; its snapshots are buffered so clients can poll
// them incrementally. Finished runs are evicted after the retention window.
type MazeService struct {
	store        i.MazeStore
	logger       i.Logger
	maxDimension int
	maxFrames    int
	retention    time.Duration
	runs         map[uuid.UUID]*runRecord
	seeds        *rand.Rand
	seedsMu      sync.Mutex
	now          func() time.Time
	sync.Mutex
}

// Config holds the dependencies of a MazeService.
type Config struct {
	Store        i.MazeStore
	Logger       i.Logger
	MaxDimension int           // MaxDimension bounds width and height. Zero means 101.
	MaxFrames    int           // MaxFrames caps the snapshots buffered per run. Zero means 4096.
	RunRetention time.Duration // RunRetention is how long finished runs stay pollable. Zero means an hour.
	Seed         int64         // Seed drives every generator. Zero seeds from the clock.
}

// NewMazeService creates a MazeService.
func NewMazeService(c *Config) (*MazeService, error) {
	if c.Store == nil || c.Logger == nil {
		return nil, errors.New("maze service needs a store and a logger")
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxDimension := c.MaxDimension
	if maxDimension == 0 {
		maxDimension = defaultMaxDimension
	}
	maxFrames := c.MaxFrames
	if maxFrames <= 0 {
		maxFrames = defaultMaxFrames
	}
	retention := c.RunRetention
	if retention <= 0 {
		retention = defaultRunRetention
	}

	return &MazeService{
		store:        c.Store,
		logger:       c.Logger,
		maxDimension: maxDimension,
		maxFrames:    maxFrames,
		retention:    retention,
		runs:         make(map[uuid.UUID]*runRecord),
		seeds:        rand.New(rand.NewSource(seed)),
		now:          time.Now,
	}, nil
}

// nextRand hands each algorithm its own source derived from the service seed.
func (s *MazeService) nextRand() *rand.Rand {
	s.seedsMu.Lock()
	defer s.seedsMu.Unlock()
	return rand.New(rand.NewSource(s.seeds.Int63()))
}

// Generate implements i.MazeService.
func (s *MazeService) Generate(ctx context.Context, req i.GenerateRequest) (uuid.UUID, *maze.Maze, error) {
	if req.Width > s.maxDimension || req.Height > s.maxDimension {
		return uuid.Nil, nil, fmt.Errorf("%w: %dx%d, maximum is %d", ErrMazeTooLarge, req.Width, req.Height, s.maxDimension)
	}
	if req.Kind.IsGeneration() && !req.Kind.SupportsMazeType(req.Type) {
		return uuid.Nil, nil, fmt.Errorf("%w: %s cannot build %s mazes", generation.ErrUnsupportedMazeType, req.Kind, req.Type)
	}

	g, err := registry.Generator(req.Kind, generation.WithRand(s.nextRand()))
	if err != nil {
		return uuid.Nil, nil, err
	}
	m, err := g.Generate(req.Type, req.Width, req.Height, req.Entrance, nil)
	if err != nil {
		return uuid.Nil, nil, err
	}

	id := uuid.New()
	if err := s.store.Save(ctx, id, m); err != nil {
		s.logger.Error(fmt.Sprintf("saving maze %s: %s", id, err))
		return uuid.Nil, nil, err
	}

	s.logger.Info(fmt.Sprintf("generated %s %dx%d maze %s with %s", req.Type, req.Width, req.Height, id, req.Kind))
	return id, m, nil
}

// Maze implements i.MazeService.
func (s *MazeService) Maze(ctx context.Context, id uuid.UUID) (*maze.Maze, error) {
	return s.store.ByID(ctx, id)
}

func (s *MazeService) pathfinder(kind algorithm.Kind) (pathfinding.Algorithm, error) {
	return registry.Pathfinder(kind, pathfinding.WithRand(s.nextRand()))
}

// StartRun implements i.MazeService.
func (s *MazeService) StartRun(ctx context.Context, mazeID uuid.UUID, kind algorithm.Kind) (uuid.UUID, error) {
	alg, err := s.pathfinder(kind)
	if err != nil {
		return uuid.Nil, err
	}
	m, err := s.store.ByID(ctx, mazeID)
	if err != nil {
		return uuid.Nil, err
	}

	release, err := s.store.LockRun(ctx, mazeID)
	if err != nil {
		if errors.Is(err, i.ErrRunLocked) {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrRunInProgress, mazeID)
		}
		s.logger.Error(fmt.Sprintf("locking maze %s: %s", mazeID, err))
		return uuid.Nil, err
	}

	run := StartRun(alg, m)
	s.Lock()
	s.evictExpired()
	s.runs[run.ID] = &runRecord{run: run, mazeID: mazeID}
	s.Unlock()

	go s.collect(run, release)
	s.logger.Info(fmt.Sprintf("started %s run %s on maze %s", kind, run.ID, mazeID))
	return run.ID, nil
}

// collect buffers the snapshots of a run up to the frame cap, then joins the worker
// and releases the maze before the run is reported done. Past the cap only the
// newest snapshot is kept, and it is appended once the run ends so pollers always
// see the final state.
func (s *MazeService) collect(run *Run, release func()) {
	for r := range run.C() {
		s.Lock()
		rec := s.runs[run.ID]
		switch {
		case rec.discarded:
		case len(rec.frames) < s.maxFrames:
			rec.frames = append(rec.frames, r)
		default:
			rec.latest = r
			rec.truncated = true
		}
		s.Unlock()
	}

	err := run.Join()
	release()
	s.Lock()
	rec := s.runs[run.ID]
	if rec.truncated && !rec.discarded {
		rec.frames = append(rec.frames, rec.latest)
		rec.latest = stream.Result{}
	}
	rec.done = true
	rec.finishedAt = s.now()
	rec.err = err
	if err == nil {
		rec.success = pathfinding.Succeeded(run.maze)
		rec.stats = run.Stats()
	}
	success := rec.success
	if rec.discarded {
		delete(s.runs, run.ID)
	}
	s.Unlock()

	if err != nil {
		s.logger.Error(fmt.Sprintf("%s run %s failed: %s", run.Kind, run.ID, err))
		return
	}
	s.logger.Info(fmt.Sprintf("%s run %s finished, reached exit: %t", run.Kind, run.ID, success))
}

// evictExpired drops finished runs older than the retention window. The caller
// holds the write lock.
func (s *MazeService) evictExpired() {
	cutoff := s.now().Add(-s.retention)
	for id, rec := range s.runs {
		if rec.done && rec.finishedAt.Before(cutoff) {
			delete(s.runs, id)
		}
	}
}

// Frames implements i.MazeService.
func (s *MazeService) Frames(runID uuid.UUID, from int) (i.Frames, error) {
	s.Lock()
	defer s.Unlock()

	s.evictExpired()
	rec, ok := s.runs[runID]
	if !ok || rec.discarded {
		return i.Frames{}, ErrRunNotFound
	}
	if from < 0 || from > len(rec.frames) {
		return i.Frames{}, fmt.Errorf("%w: %d of %d", ErrInvalidFrameFrom, from, len(rec.frames))
	}

	results := make([]stream.Result, len(rec.frames)-from)
	copy(results, rec.frames[from:])
	return i.Frames{
		MazeID:    rec.mazeID,
		Kind:      rec.run.Kind,
		From:      from,
		Results:   results,
		Truncated: rec.truncated,
		Done:      rec.done,
		Succeeded: rec.success,
		Stats:     rec.stats,
		Err:       rec.err,
	}, nil
}

// CancelRun implements i.MazeService. The worker is told to stop on its next send
// and the buffered frames are dropped; a finished run is removed at once.
func (s *MazeService) CancelRun(runID uuid.UUID) error {
	s.Lock()
	rec, ok := s.runs[runID]
	if !ok || rec.discarded {
		s.Unlock()
		return ErrRunNotFound
	}
	if rec.done {
		delete(s.runs, runID)
	} else {
		rec.discarded = true
		rec.frames = nil
	}
	s.Unlock()

	rec.run.Cancel()
	s.logger.Info(fmt.Sprintf("cancelled run %s", runID))
	return nil
}

// Solve implements i.MazeService.
func (s *MazeService) Solve(ctx context.Context, mazeID uuid.UUID, kind algorithm.Kind) (*maze.Maze, *stream.Stats, error) {
	alg, err := s.pathfinder(kind)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.store.ByID(ctx, mazeID)
	if err != nil {
		return nil, nil, err
	}

	release, err := s.store.LockRun(ctx, mazeID)
	if err != nil {
		if errors.Is(err, i.ErrRunLocked) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunInProgress, mazeID)
		}
		return nil, nil, err
	}
	defer release()

	run := startRun(alg, m, false)
	if err := run.Join(); err != nil {
		s.logger.Error(fmt.Sprintf("%s solve on maze %s failed: %s", kind, mazeID, err))
		return nil, nil, err
	}
	return run.maze, run.Stats(), nil
}

// StopAll cancels every run still in flight.
func (s *MazeService) StopAll() {
	s.Lock()
	defer s.Unlock()

	for _, rec := range s.runs {
		if !rec.done {
			rec.run.Cancel()
		}
	}
}
