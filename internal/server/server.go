package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"moodtunes/internal/auth"
	"moodtunes/internal/config"
	"moodtunes/internal/database"
	"moodtunes/internal/library"
	"moodtunes/internal/metadata"
	"moodtunes/internal/ngrok"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// MoodServer represents the mood-based music player backend
type MoodServer struct {
	db           *database.Database
	config       *config.Config
	locator      *library.Locator
	authService  *auth.Service
	extractor    *metadata.Extractor
	watcher      *fsnotify.Watcher
	ngrokService *ngrok.Service
	logger       *logrus.Logger
}

// NewMoodServer creates a new server instance wiring the stores and the song
// locator together.
func NewMoodServer(cfg *config.Config, db *database.Database, logger *logrus.Logger) (*MoodServer, error) {
	ngrokSvc, err := ngrok.NewService(&cfg.Ngrok, logger)
	if err != nil {
		logger.WithError(err).Warn("Ngrok service not available")
		ngrokSvc = nil
	}

	server := &MoodServer{
		db:           db,
		config:       cfg,
		locator:      library.NewLocator(cfg.Music.SongsDir, cfg.Music.BaseURL, cfg.Music.SupportedFormats, logger),
		authService:  auth.NewService(db, cfg.Auth.HashPasswords, logger),
		extractor:    metadata.NewExtractor(cfg.Music.SupportedFormats),
		ngrokService: ngrokSvc,
		logger:       logger,
	}

	return server, nil
}

// Start starts the HTTP server. It blocks until the listener fails.
func (ms *MoodServer) Start() {
	// Start songs directory watcher if enabled
	if ms.config.Music.WatchForChanges {
		if err := ms.startLibraryWatcher(); err != nil {
			ms.logger.WithError(err).Warn("Could not start library watcher")
		} else {
			defer ms.stopLibraryWatcher()
		}
	}

	handler := ms.buildHandler()

	localAddress := fmt.Sprintf("http://%s", ms.config.GetAddress())

	ms.logger.WithFields(logrus.Fields{
		"port":      ms.config.Server.Port,
		"songs_dir": ms.config.Music.SongsDir,
		"origin":    ms.config.Server.AllowedOrigin,
	}).Info("Moodtunes server starting")
	ms.logger.WithField("address", localAddress).Info("Local access")

	// Start ngrok tunnel if enabled
	if ms.ngrokService != nil {
		ctx := context.Background()
		if err := ms.ngrokService.StartTunnel(ctx, localAddress); err != nil {
			ms.logger.WithError(err).Warn("Could not start ngrok tunnel")
		} else {
			defer ms.ngrokService.Stop()
		}
	}

	server := &http.Server{
		Addr:        ms.config.GetAddress(),
		Handler:     handler,
		ReadTimeout: time.Duration(ms.config.Server.ReadTimeout) * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		ms.logger.WithError(err).Fatal("Server failed to start")
	}
}

// buildHandler assembles the route mux and wraps it with the middleware chain.
func (ms *MoodServer) buildHandler() http.Handler {
	mux := http.NewServeMux()

	// Song endpoints (read-only, never wrapped in the success envelope)
	mux.HandleFunc("/play", ms.handlePlay)
	mux.HandleFunc("/songs", ms.handleGetSongs)
	mux.HandleFunc("/songs/info", ms.handleGetSongInfo)
	mux.HandleFunc("/health", ms.handleHealthCheck)

	// Playlist endpoints
	mux.HandleFunc("/api/playlist/add", ms.handleAddToPlaylist)
	mux.HandleFunc("/api/playlist/get", ms.handleGetPlaylist)
	mux.HandleFunc("/api/playlist/remove/", ms.handleRemoveFromPlaylist)

	// User endpoints
	mux.HandleFunc("/api/users/register", ms.handleRegister)
	mux.HandleFunc("/api/users/login", ms.handleLogin)

	// Innermost first: logging sees the final status, CORS headers apply to
	// every response, recovery catches everything below it.
	var handler http.Handler = mux
	handler = ms.requestLoggingMiddleware(handler)
	handler = ms.corsMiddleware(handler)
	handler = ms.panicRecoveryMiddleware(handler)
	return handler
}

// Shutdown gracefully shuts down the server's background services.
func (ms *MoodServer) Shutdown() {
	ms.logger.Info("Shutting down moodtunes server...")

	ms.stopLibraryWatcher()

	ms.logger.Info("Moodtunes server shutdown complete")
}
