package startup

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"

	"soundstash/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	Port string

	// Document store
	MongoURI      string
	MongoDatabase string

	// Distributed cache
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Blob store
	BlobEndpoint  string
	BlobAccessKey string
	BlobSecretKey string
	BlobUseSSL    bool

	// Process-local cache quota in bytes
	LocalCacheMaxBytes int64

	LogHealthChecks bool
}

// fileConfig mirrors Config for the optional YAML overlay. Environment
// variables override whatever the file provides.
type fileConfig struct {
	Port          string `yaml:"port"`
	MongoURI      string `yaml:"mongoUri"`
	MongoDatabase string `yaml:"mongoDatabase"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDb"`
	BlobEndpoint  string `yaml:"blobEndpoint"`
	BlobAccessKey string `yaml:"blobAccessKey"`
	BlobSecretKey string `yaml:"blobSecretKey"`
	BlobUseSSL    bool   `yaml:"blobUseSsl"`
}

// LoadConfig loads configuration from the environment, with an optional
// YAML file (CONFIG_FILE) supplying defaults underneath it.
func LoadConfig() (*Config, error) {
	printBanner()

	defaults := fileConfig{
		Port:          "8080",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "soundstash",
		RedisAddr:     "localhost:6379",
		BlobEndpoint:  "localhost:9000",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &defaults); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		logging.Info("Loaded configuration defaults from %s", path)
	}

	config := &Config{
		Port:               getEnv("PORT", defaults.Port),
		MongoURI:           getEnv("MONGO_URI", defaults.MongoURI),
		MongoDatabase:      getEnv("MONGO_DATABASE", defaults.MongoDatabase),
		RedisAddr:          getEnv("REDIS_ADDR", defaults.RedisAddr),
		RedisPassword:      getEnv("REDIS_PASSWORD", defaults.RedisPassword),
		RedisDB:            getEnvInt("REDIS_DB", defaults.RedisDB),
		BlobEndpoint:       getEnv("BLOB_ENDPOINT", defaults.BlobEndpoint),
		BlobAccessKey:      getEnv("BLOB_ACCESS_KEY", defaults.BlobAccessKey),
		BlobSecretKey:      getEnv("BLOB_SECRET_KEY", defaults.BlobSecretKey),
		BlobUseSSL:         getEnvBool("BLOB_USE_SSL", defaults.BlobUseSSL),
		LocalCacheMaxBytes: getEnvInt64("LOCAL_CACHE_MAX_BYTES", 256<<20),
		LogHealthChecks:    getEnvBool("LOG_HEALTH_CHECKS", false),
	}

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  PORT:                  %s", config.Port)
	logging.Info("  MONGO_URI:             %s", redactURI(config.MongoURI))
	logging.Info("  MONGO_DATABASE:        %s", config.MongoDatabase)
	logging.Info("  REDIS_ADDR:            %s", config.RedisAddr)
	logging.Info("  BLOB_ENDPOINT:         %s", config.BlobEndpoint)
	logging.Info("  BLOB_USE_SSL:          %v", config.BlobUseSSL)
	logging.Info("  LOCAL_CACHE_MAX_BYTES: %d", config.LocalCacheMaxBytes)
	logging.Info("  LOG_HEALTH_CHECKS:     %v", config.LogHealthChecks)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())

	return config, nil
}

// redactURI strips credentials from a connection URI before logging.
func redactURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	if schemeEnd < 0 {
		return uri
	}
	rest := uri[schemeEnd+3:]
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	return uri[:schemeEnd+3] + "***@" + rest[at+1:]
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		logging.Warn("Invalid boolean for %s: %q, using %v", key, value, fallback)
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logging.Warn("Invalid integer for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func printBanner() {
	logging.Info("============================================================")
	logging.Info("  soundstash %s (%s)", Version, Commit)
	logging.Info("  %s on %s/%s", GoVersion, runtime.GOOS, runtime.GOARCH)
	logging.Info("============================================================")
}

// LogFatal logs a fatal startup error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// LogHTTPRoutes walks the router and logs every registered route.
func LogHTTPRoutes(router *mux.Router) {
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP ROUTES")
	logging.Info("------------------------------------------------------------")

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		template, err := route.GetPathTemplate()
		if err != nil {
			return nil //nolint:nilerr // routes without templates are skipped
		}
		methods, err := route.GetMethods()
		if err != nil {
			logging.Info("  *       %s", template)
			return nil //nolint:nilerr
		}
		logging.Info("  %-7s %s", strings.Join(methods, ","), template)
		return nil
	})
	if err != nil {
		logging.Warn("Failed to walk routes: %v", err)
	}
}
