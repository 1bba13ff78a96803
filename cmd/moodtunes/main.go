package main

import (
	"os"
	"os/signal"
	"syscall"

	"moodtunes/internal/config"
	"moodtunes/internal/database"
	"moodtunes/internal/server"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := "./config.toml"

	// Load .env if present (ngrok auth token, local overrides)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			logrus.WithError(err).Warn("Could not load .env file")
		}
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Error loading configuration")
	}

	applyLoggingConfig(logger, &cfg.Logging)

	// Check if songs directory exists
	if _, err := os.Stat(cfg.Music.SongsDir); os.IsNotExist(err) {
		logger.WithField("songs_dir", cfg.Music.SongsDir).Warn("Songs directory does not exist; every mood will resolve to no songs until it is created")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Error initializing database")
	}
	defer db.Close()

	// Create the server
	moodServer, err := server.NewMoodServer(cfg, db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Error creating server")
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		moodServer.Start()
	}()

	<-c

	logger.Info("Received shutdown signal")
	moodServer.Shutdown()
}

// applyLoggingConfig sets logrus level and format from the config file.
func applyLoggingConfig(logger *logrus.Logger, cfg *config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}
