package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"moodtunes/pkg/models"
)

// handleAddToPlaylist saves a song into the user's playlist. Every failure,
// from malformed JSON to a store outage, collapses into the same
// {success:false, message} envelope with HTTP 400.
func (ms *MoodServer) handleAddToPlaylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AddPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ms.respondFailure(w, r, "Invalid JSON body")
		return
	}

	if req.UserID <= 0 {
		ms.respondFailure(w, r, "userId must be a positive integer")
		return
	}
	if strings.TrimSpace(req.SongName) == "" || strings.TrimSpace(req.SongURL) == "" || strings.TrimSpace(req.Mood) == "" {
		ms.respondFailure(w, r, "songName, songUrl and mood are required")
		return
	}

	entry := models.PlaylistEntry{
		UserID:   req.UserID,
		SongName: req.SongName,
		SongURL:  req.SongURL,
		Mood:     req.Mood,
	}

	if _, err := ms.db.AddPlaylistEntry(entry); err != nil {
		ms.respondFailure(w, r, err.Error())
		return
	}

	ms.respondSuccess(w, "Added to playlist", nil)
}

// handleGetPlaylist returns all entries saved by a user as a JSON array
// (possibly empty). Read-only route: no envelope.
func (ms *MoodServer) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil || userID <= 0 {
		http.Error(w, "userId must be a positive integer", http.StatusBadRequest)
		return
	}

	entries, err := ms.db.GetPlaylistEntries(userID)
	if err != nil {
		http.Error(w, "Error retrieving playlist", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []models.PlaylistEntry{}
	}
	ms.respondJSON(w, http.StatusOK, entries)
}

// handleRemoveFromPlaylist deletes one entry by id. Removing an id that no
// longer exists still reports success; the end state is the same either way.
func (ms *MoodServer) handleRemoveFromPlaylist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path shape: /api/playlist/remove/{id}
	pathParts := strings.Split(r.URL.Path, "/")
	id, verr := validateEntryID(pathParts, 5)
	if verr != nil {
		ms.respondFailure(w, r, verr.Message)
		return
	}

	if err := ms.db.RemovePlaylistEntry(id); err != nil {
		ms.respondFailure(w, r, err.Error())
		return
	}

	ms.respondSuccess(w, "Removed from playlist", nil)
}
