package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	APIKey            string // Bearer key for mutating routes; empty leaves them open
	RedisAddr         string // Redis address; empty keeps mazes in memory
	RedisPassword     string // Password for Redis
	RedisDB           int    // Redis logical database
	MazeTTLSeconds    int    // How long a stored maze lives
	DefaultMazeWidth  int    // Width used when a request omits it
	DefaultMazeHeight int    // Height used when a request omits it
	MaxMazeDimension  int    // Upper bound for width and height
	MaxRunFrames      int    // Snapshots buffered per pathfinding run
	RNGSeed           int64  // Seed for generation; 0 seeds from the clock
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:            mustGetEnv("HOST_IP"),
		RESTPort:          mustGetEnvAsInt("REST_PORT"),
		GinMode:           getEnvWithDefault("GIN_MODE", "release"),
		APIKey:            getEnvWithDefault("API_KEY", ""),
		RedisAddr:         getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:     getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsIntWithDefault("REDIS_DB", 0),
		MazeTTLSeconds:    getEnvAsIntWithDefault("MAZE_TTL_SECONDS", 3600),
		DefaultMazeWidth:  getEnvAsIntWithDefault("DEFAULT_MAZE_WIDTH", 21),
		DefaultMazeHeight: getEnvAsIntWithDefault("DEFAULT_MAZE_HEIGHT", 15),
		MaxMazeDimension:  getEnvAsIntWithDefault("MAX_MAZE_DIMENSION", 101),
		MaxRunFrames:      getEnvAsIntWithDefault("MAX_RUN_FRAMES", 4096),
		RNGSeed:           int64(getEnvAsIntWithDefault("RNG_SEED", 0)),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault is getEnvWithDefault for integers. A value that is set but
// not an integer is fatal.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
