package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"soundstash/internal/blob"
	"soundstash/internal/cache"
	"soundstash/internal/catalog"
	"soundstash/internal/handlers"
	"soundstash/internal/logging"
	"soundstash/internal/middleware"
	"soundstash/internal/startup"
	"soundstash/internal/store"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Connect the document store. A failed connection is not fatal: the
	// service starts degraded and catalog routes answer 503 until restart.
	storeStart := time.Now()
	st := store.New(context.Background(), config.MongoURI, config.MongoDatabase)
	if st.IsConnected() {
		logging.Info("Document store connected in %v", time.Since(storeStart).Round(time.Millisecond))
	} else {
		logging.Warn("Document store unreachable; catalog routes will answer 503")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st.Close(ctx)
	}()

	// Distributed cache. Like the store, failure here degrades rather
	// than aborts: image requests fall through to the local tier and origin.
	redisCache := cache.NewRedisCache(config.RedisAddr, config.RedisPassword, config.RedisDB)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			logging.Warn("Distributed cache unreachable at startup: %v", err)
		} else {
			logging.Info("Distributed cache connected at %s", config.RedisAddr)
		}
		cancel()
	}
	defer redisCache.Close()

	localCache := cache.NewLocalLRU(config.LocalCacheMaxBytes)

	// Blob store client. Credential problems only surface on first use.
	blobs, err := blob.NewMinioClient(blob.MinioOptions{
		Endpoint:  config.BlobEndpoint,
		AccessKey: config.BlobAccessKey,
		SecretKey: config.BlobSecretKey,
		UseSSL:    config.BlobUseSSL,
	})
	if err != nil {
		startup.LogFatal("Failed to initialize blob client: %v", err)
	}

	media := cache.NewTiered(localCache, redisCache, blobs)
	repo := catalog.NewRepository(st)

	// Initialize handlers
	h := handlers.New(repo, st, media, redisCache, blobs)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(router)

	// Apply CORS middleware
	handler := middleware.CORS()(loggedHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv)

	logging.Info("Server listening on port %s (startup took %v)",
		config.Port, time.Since(startTime).Round(time.Millisecond))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Metrics middleware is registered on the router so the route
	// template is available as the path label.
	r.Use(middleware.Metrics())

	// Health, diagnostics, and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/health/mongodb", h.MongoHealthCheck).Methods("GET")
	r.HandleFunc("/diagnostics/mongodb", h.MongoDiagnostics).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Catalog routes
	api.HandleFunc("/artists", h.ListArtists).Methods("GET")
	api.HandleFunc("/artists", h.CreateArtist).Methods("POST")
	api.HandleFunc("/artists/{id}", h.GetArtist).Methods("GET")
	api.HandleFunc("/artists/{id}", h.UpdateArtist).Methods("PUT")
	api.HandleFunc("/artists/{id}", h.DeleteArtist).Methods("DELETE")

	api.HandleFunc("/albums", h.ListAlbums).Methods("GET")
	api.HandleFunc("/albums", h.CreateAlbum).Methods("POST")
	api.HandleFunc("/albums/{id}", h.GetAlbum).Methods("GET")
	api.HandleFunc("/albums/{id}", h.UpdateAlbum).Methods("PUT")
	api.HandleFunc("/albums/{id}", h.DeleteAlbum).Methods("DELETE")

	api.HandleFunc("/songs", h.ListSongs).Methods("GET")
	api.HandleFunc("/songs", h.CreateSong).Methods("POST")
	api.HandleFunc("/songs/{id}", h.GetSong).Methods("GET")
	api.HandleFunc("/songs/{id}", h.UpdateSong).Methods("PUT")
	api.HandleFunc("/songs/{id}", h.DeleteSong).Methods("DELETE")

	api.HandleFunc("/playlists", h.ListPlaylists).Methods("GET")
	api.HandleFunc("/playlists", h.CreatePlaylist).Methods("POST")
	api.HandleFunc("/playlists/{id}", h.GetPlaylist).Methods("GET")
	api.HandleFunc("/playlists/{id}", h.UpdatePlaylist).Methods("PUT")
	api.HandleFunc("/playlists/{id}", h.DeletePlaylist).Methods("DELETE")
	api.HandleFunc("/playlists/{id}/songs", h.AddPlaylistSong).Methods("POST")

	api.HandleFunc("/search", h.SearchCatalog).Methods("GET")

	// Media routes
	api.HandleFunc("/media/image", h.GetImage).Methods("GET")
	api.HandleFunc("/media/audio", h.GetAudio).Methods("GET")
	api.HandleFunc("/media/cache/status", h.CacheStatus).Methods("GET")
	api.HandleFunc("/media/cache/clear", h.CacheClear).Methods("GET")

	// Admin routes
	api.HandleFunc("/admin/catalog/bulk", h.BulkInsertCatalog).Methods("POST")
	api.HandleFunc("/admin/media/upload", h.UploadMedia).Methods("POST")

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		logging.Info("HTTP server stopped")
	}
}
