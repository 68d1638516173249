package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	"github.com/beka-birhanu/vinom-pathfinder/api/auth"
	api_i "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/mazeapi"
	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/mazestore"
	"github.com/beka-birhanu/vinom-pathfinder/logger"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient    *redis.Client
	mazeStore      i.MazeStore
	mazeService    *service.MazeService
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeStore(ctx context.Context) {
	if config.Envs.RedisAddr == "" {
		mazeStore = mazestore.NewMemoryStore(config.Envs.MazeTTLSeconds)
		appLogger.Warning("REDIS_ADDR not set, mazes are kept in memory")
		return
	}

	initRedis(ctx)
	var err error
	mazeStore, err = mazestore.NewRedisStore(redisClient, config.Envs.MazeTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis maze store: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Redis maze store initialized")
}

func initMazeService() {
	serviceLogger, err := logger.New("MAZE-SERVICE", logger.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(&service.Config{
		Store:        mazeStore,
		Logger:       serviceLogger,
		MaxDimension: config.Envs.MaxMazeDimension,
		MaxFrames:    config.Envs.MaxRunFrames,
		RunRetention: time.Duration(config.Envs.MazeTTLSeconds) * time.Second,
		Seed:         config.Envs.RNGSeed,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewController(mazeapi.Config{
		Mazes:         mazeService,
		DefaultWidth:  config.Envs.DefaultMazeWidth,
		DefaultHeight: config.Envs.DefaultMazeHeight,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: auth.BearerKey(config.Envs.APIKey),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	appLogger, err = logger.New("APP", logger.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating app logger: %v\n", err)
		os.Exit(1)
	}

	initMazeStore(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initMazeService()
	defer mazeService.StopAll()
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
