package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/algorithm"
	"github.com/beka-birhanu/vinom-pathfinder/generation"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/registry"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	storeTimeout = 2 * time.Second
	solveTimeout = 30 * time.Second
)

// Controller serves mazes and pathfinding runs.
type Controller struct {
	mazes         i.MazeService
	defaultWidth  int
	defaultHeight int
}

// Config holds the dependencies of a Controller.
type Config struct {
	Mazes         i.MazeService
	DefaultWidth  int
	DefaultHeight int
}

// NewController initializes a Controller.
func NewController(c Config) (*Controller, error) {
	if c.Mazes == nil {
		return nil, errors.New("maze controller needs a maze service")
	}
	return &Controller{
		mazes:         c.Mazes,
		defaultWidth:  c.DefaultWidth,
		defaultHeight: c.DefaultHeight,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/algorithms", mc.algorithms)
	route.GET("/mazes/:ID", mc.maze)
	route.GET("/runs/:ID/frames", mc.frames)
}

// RegisterProtected registers protected routes.
func (mc *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/mazes", mc.generate)
	route.POST("/mazes/:ID/runs", mc.startRun)
	route.POST("/mazes/:ID/solve", mc.solve)
	route.DELETE("/runs/:ID", mc.cancelRun)
}

// algorithms lists every algorithm and the roles it can play.
func (mc *Controller) algorithms(ctx *gin.Context) {
	infos := make([]AlgorithmInfo, 0, len(algorithm.All))
	for _, k := range algorithm.All {
		info := AlgorithmInfo{ID: k, Name: k.DisplayName(), Pathfinding: k.IsPathfinding()}
		for _, t := range []maze.Type{maze.Thick, maze.Slim} {
			if k.SupportsMazeType(t) {
				info.Generation = append(info.Generation, t)
			}
		}
		infos = append(infos, info)
	}
	ctx.JSON(http.StatusOK, infos)
}

// generate handles maze generation requests.
func (mc *Controller) generate(ctx *gin.Context) {
	request := GenerateRequest{Algorithm: algorithm.Backtracking}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if request.Width == 0 {
		request.Width = mc.defaultWidth
	}
	if request.Height == 0 {
		request.Height = mc.defaultHeight
	}
	entrance := maze.DefaultPoint()
	if request.Entrance != nil {
		entrance = *request.Entrance
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	id, m, err := mc.mazes.Generate(timeoutCtx, i.GenerateRequest{
		Kind:     request.Algorithm,
		Type:     request.Type,
		Width:    request.Width,
		Height:   request.Height,
		Entrance: entrance,
	})
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, &MazeResponse{ID: id, Maze: m})
}

// maze retrieves a stored maze.
func (mc *Controller) maze(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	m, err := mc.mazes.Maze(timeoutCtx, ID)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &MazeResponse{ID: ID, Maze: m})
}

// startRun launches a pathfinding run whose frames are polled separately.
func (mc *Controller) startRun(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}
	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	runID, err := mc.mazes.StartRun(timeoutCtx, ID, request.Algorithm)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusAccepted, &RunResponse{RunID: runID})
}

// solve runs an algorithm to completion and returns the searched maze.
func (mc *Controller) solve(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}
	var request RunRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, solveTimeout)
	defer cancel()
	m, stats, err := mc.mazes.Solve(timeoutCtx, ID, request.Algorithm)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &SolveResponse{Maze: m, Stats: stats, Succeeded: pathfinding.Succeeded(m)})
}

// frames returns the snapshots of a run from the index given by the from query.
func (mc *Controller) frames(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}
	from, err := strconv.Atoi(ctx.DefaultQuery("from", "0"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "from must be an integer"})
		return
	}

	frames, err := mc.mazes.Frames(ID, from)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	response := &FramesResponse{
		MazeID:    frames.MazeID,
		Algorithm: frames.Kind,
		From:      frames.From,
		Next:      frames.From + len(frames.Results),
		Frames:    frames.Results,
		Truncated: frames.Truncated,
		Done:      frames.Done,
		Succeeded: frames.Succeeded,
		Stats:     frames.Stats,
	}
	if frames.Err != nil {
		response.Error = frames.Err.Error()
	}
	ctx.JSON(http.StatusOK, response)
}

// cancelRun stops observing a run and drops its frames.
func (mc *Controller) cancelRun(ctx *gin.Context) {
	ID, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := mc.mazes.CancelRun(ID); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return ID, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, i.ErrMazeNotFound), errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRunInProgress):
		return http.StatusConflict
	case errors.Is(err, generation.ErrInvalidDimensions),
		errors.Is(err, generation.ErrInvalidEntrance),
		errors.Is(err, generation.ErrUnsupportedMazeType),
		errors.Is(err, service.ErrMazeTooLarge),
		errors.Is(err, service.ErrInvalidFrameFrom),
		errors.Is(err, registry.ErrNotGeneration),
		errors.Is(err, registry.ErrNotPathfinding):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
