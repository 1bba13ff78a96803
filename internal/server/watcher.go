package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// startLibraryWatcher initializes fsnotify monitoring of the songs directory.
// Songs are never persisted, so the watcher only logs changes and keeps new
// mood folders registered; the locator re-reads the filesystem per request.
func (ms *MoodServer) startLibraryWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	ms.watcher = watcher

	go ms.watchLibrary()

	if err := ms.addDirectoryToWatcher(ms.config.Music.SongsDir); err != nil {
		return err
	}

	ms.logger.WithField("songs_dir", ms.config.Music.SongsDir).Info("Library watcher started")
	return nil
}

// addDirectoryToWatcher recursively walks and adds subdirectories to watcher.
func (ms *MoodServer) addDirectoryToWatcher(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return ms.watcher.Add(path)
		}
		return nil
	})
}

// watchLibrary selects on watcher channels and dispatches events.
func (ms *MoodServer) watchLibrary() {
	defer ms.watcher.Close()

	for {
		select {
		case event, ok := <-ms.watcher.Events:
			if !ok {
				return
			}
			ms.handleLibraryEvent(event)

		case err, ok := <-ms.watcher.Errors:
			if !ok {
				return
			}
			ms.logger.WithError(err).Error("Library watcher error")
		}
	}
}

// handleLibraryEvent logs audio file changes and registers new mood folders.
func (ms *MoodServer) handleLibraryEvent(event fsnotify.Event) {
	// Ignore temporary files and hidden files
	fileName := filepath.Base(event.Name)
	if strings.HasPrefix(fileName, ".") || strings.HasSuffix(fileName, ".tmp") {
		return
	}

	isAudioFile := ms.extractor.IsAudioFile(event.Name)

	switch {
	case event.Has(fsnotify.Create) && isAudioFile:
		ms.logger.WithField("file", event.Name).Info("New song file detected")

	case event.Has(fsnotify.Remove) && isAudioFile:
		ms.logger.WithField("file", event.Name).Info("Song file removed")

	case event.Has(fsnotify.Create):
		// Check if it's a new mood folder
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			ms.watcher.Add(event.Name)
			ms.logger.WithField("directory", event.Name).Info("Watching new mood folder")
		}
	}
}

// stopLibraryWatcher closes the watcher (idempotent).
func (ms *MoodServer) stopLibraryWatcher() {
	if ms.watcher != nil {
		ms.watcher.Close()
	}
}
