package server

import (
	"fmt"
	"net/http"
)

// handlePlay resolves one random song for the requested mood and returns its
// URL as plain text. An empty or missing mood folder is reported as a plain
// not-found message with HTTP 200, not as an error.
func (ms *MoodServer) handlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mood := sanitizeInput(r.URL.Query().Get("mood"))
	if verr := validateMood(mood); verr != nil {
		http.Error(w, verr.Message, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	url, ok := ms.locator.ResolvePlayableSong(mood)
	if !ok {
		fmt.Fprintf(w, "No songs found for mood: %s", mood)
		return
	}

	fmt.Fprint(w, url)
}

// handleGetSongs lists all songs available for the requested mood. A missing
// or empty mood folder yields an empty JSON array.
func (ms *MoodServer) handleGetSongs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mood := sanitizeInput(r.URL.Query().Get("mood"))
	if verr := validateMood(mood); verr != nil {
		http.Error(w, verr.Message, http.StatusBadRequest)
		return
	}

	songs := ms.locator.ListSongs(mood)
	ms.respondJSON(w, http.StatusOK, songs)
}

// handleGetSongInfo returns tag metadata and duration for one file in a mood
// folder. The name parameter is the full filename including extension.
func (ms *MoodServer) handleGetSongInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mood := sanitizeInput(r.URL.Query().Get("mood"))
	if verr := validateMood(mood); verr != nil {
		http.Error(w, verr.Message, http.StatusBadRequest)
		return
	}

	name := sanitizeInput(r.URL.Query().Get("name"))
	if verr := validateSongFilename(name); verr != nil {
		http.Error(w, verr.Message, http.StatusBadRequest)
		return
	}

	if !ms.extractor.IsAudioFile(name) {
		http.Error(w, "Unsupported file type", http.StatusBadRequest)
		return
	}

	details, err := ms.extractor.ExtractFromFile(ms.locator.FilePath(mood, name))
	if err != nil {
		http.Error(w, "Song not found", http.StatusNotFound)
		return
	}

	details.Mood = mood
	details.URL = ms.locator.SongURL(mood, name)
	ms.respondJSON(w, http.StatusOK, details)
}

// handleHealthCheck reports process liveness and database reachability.
func (ms *MoodServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := ms.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = err.Error()
		code = http.StatusServiceUnavailable
	}

	ms.respondJSON(w, code, map[string]string{
		"status":   status,
		"database": dbStatus,
	})
}
