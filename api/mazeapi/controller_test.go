package mazeapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	apii "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/auth"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/mazestore"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "secret"

type discardLogger struct{}

func (discardLogger) Info(string)    {}
func (discardLogger) Warning(string) {}
func (discardLogger) Error(string)   {}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := service.NewMazeService(&service.Config{
		Store:  mazestore.NewMemoryStore(60),
		Logger: discardLogger{},
		Seed:   1,
	})
	require.NoError(t, err)
	controller, err := NewController(Config{Mazes: svc, DefaultWidth: 15, DefaultHeight: 11})
	require.NoError(t, err)

	router := api.NewRouter(api.Config{
		BaseURL:                 "/api",
		Controllers:             []apii.Controller{controller},
		AuthorizationMiddleware: auth.BearerKey(apiKey),
	})
	return router.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any, out any) int {
	t.Helper()
	var reader bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reader).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Code < 300 && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestController(t *testing.T) {
	h := newServer(t)

	t.Run("Algorithms", func(t *testing.T) {
		var infos []AlgorithmInfo
		require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/algorithms", nil, &infos))
		require.Len(t, infos, 7)

		byID := make(map[string]AlgorithmInfo)
		for _, info := range infos {
			byID[info.ID.String()] = info
		}
		assert.Equal(t, []maze.Type{maze.Thick}, byID["wfc"].Generation)
		assert.False(t, byID["wfc"].Pathfinding)
		assert.True(t, byID["dfs"].Pathfinding)
		assert.Empty(t, byID["astar"].Generation)
	})

	var mazeID uuid.UUID
	t.Run("Generate with defaults", func(t *testing.T) {
		var resp MazeResponse
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/mazes", map[string]any{}, &resp))

		mazeID = resp.ID
		assert.Equal(t, 15, resp.Maze.Width())
		assert.Equal(t, 11, resp.Maze.Height())
		assert.Equal(t, maze.DefaultPoint(), resp.Maze.MustEntrance())
		assert.NoError(t, resp.Maze.Validate())
	})

	t.Run("Fetch maze", func(t *testing.T) {
		var resp MazeResponse
		require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/mazes/"+mazeID.String(), nil, &resp))
		assert.Equal(t, mazeID, resp.ID)

		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/mazes/"+uuid.NewString(), nil, nil))
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/mazes/nope", nil, nil))
	})

	t.Run("Run and poll frames", func(t *testing.T) {
		var run RunResponse
		require.Equal(t, http.StatusAccepted, do(t, h, http.MethodPost, fmt.Sprintf("/api/v1/mazes/%s/runs", mazeID), RunRequest{Algorithm: 3}, &run))

		var (
			next   int
			frames []json.RawMessage
			last   FramesResponse
		)
		require.Eventually(t, func() bool {
			var page struct {
				FramesResponse
				Frames []json.RawMessage `json:"frames"`
			}
			if do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/runs/%s/frames?from=%d", run.RunID, next), nil, &page) != http.StatusOK {
				return false
			}
			frames = append(frames, page.Frames...)
			next = page.Next
			last = page.FramesResponse
			return page.Done && page.Next == len(frames)
		}, 5*time.Second, 5*time.Millisecond)

		assert.True(t, last.Succeeded)
		assert.Equal(t, "bfs", last.Algorithm.String())
		assert.Equal(t, mazeID, last.MazeID)
		require.NotNil(t, last.Stats)
		assert.Positive(t, last.Stats.Steps)
		assert.Greater(t, len(frames), last.Stats.Steps)
		assert.False(t, last.Truncated)
		assert.NotContains(t, string(frames[0]), "original_status")

		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/runs/%s/frames?from=x", run.RunID), nil, nil))
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/runs/%s/frames?from=%d", run.RunID, next+1), nil, nil))
		assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/runs/"+run.RunID.String(), nil, nil))
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/runs/%s/frames", run.RunID), nil, nil))
		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/runs/"+run.RunID.String(), nil, nil))
	})

	t.Run("Solve", func(t *testing.T) {
		var resp SolveResponse
		require.Eventually(t, func() bool {
			return do(t, h, http.MethodPost, fmt.Sprintf("/api/v1/mazes/%s/solve", mazeID), map[string]string{"algorithm": "astar"}, &resp) == http.StatusOK
		}, 5*time.Second, 5*time.Millisecond)

		assert.True(t, resp.Succeeded)
		assert.Positive(t, resp.Stats.Steps)
		assert.NotEmpty(t, resp.Maze.FinalPath())
	})

	t.Run("Bad requests", func(t *testing.T) {
		body := map[string]any{"algorithm": "wfc", "type": "slim"}
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/mazes", body, nil))

		body = map[string]any{"algorithm": "dfs", "width": 2, "height": 2}
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/mazes", body, nil))

		body = map[string]any{"algorithm": "greedy"}
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/mazes", body, nil))

		body = map[string]any{"algorithm": "wfc"}
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, fmt.Sprintf("/api/v1/mazes/%s/runs", mazeID), body, nil))

		assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, fmt.Sprintf("/api/v1/runs/%s/frames", uuid.New()), nil, nil))
	})

	t.Run("Protected routes need the key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/mazes", bytes.NewBufferString("{}"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/v1/mazes", bytes.NewBufferString("{}"))
		req.Header.Set("Authorization", "Bearer wrong")
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/algorithms", nil)
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
