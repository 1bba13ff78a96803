package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ValidationError represents a validation error with details. Validation runs
// at the boundary; business logic only sees well-formed input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// respondJSON writes a JSON payload with the given status code.
func (ms *MoodServer) respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		ms.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// respondSuccess writes the standard success envelope, merging any extra
// fields (username, userId, ...) into it.
func (ms *MoodServer) respondSuccess(w http.ResponseWriter, message string, extra map[string]interface{}) {
	response := map[string]interface{}{
		"success": true,
		"message": message,
	}
	for k, v := range extra {
		response[k] = v
	}
	ms.respondJSON(w, http.StatusOK, response)
}

// respondFailure writes the standard failure envelope with HTTP 400. Every
// business failure funnels through here regardless of kind.
func (ms *MoodServer) respondFailure(w http.ResponseWriter, r *http.Request, message string) {
	ms.logger.WithFields(logrus.Fields{
		"method":  r.Method,
		"path":    r.URL.Path,
		"message": message,
	}).Warn("Request failed")

	ms.respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// validateMood rejects mood labels that are empty or would escape the songs
// directory when joined into a path.
func validateMood(mood string) *ValidationError {
	if mood == "" {
		return &ValidationError{
			Field:   "mood",
			Message: "mood query parameter is required",
			Code:    "MISSING_MOOD",
		}
	}

	if strings.ContainsAny(mood, "/\\") || strings.Contains(mood, "..") || strings.Contains(mood, "\x00") {
		return &ValidationError{
			Field:   "mood",
			Message: "mood contains invalid characters",
			Code:    "INVALID_MOOD",
		}
	}

	return nil
}

// validateSongFilename rejects filenames that would escape a mood folder.
func validateSongFilename(name string) *ValidationError {
	if name == "" {
		return &ValidationError{
			Field:   "name",
			Message: "name query parameter is required",
			Code:    "MISSING_NAME",
		}
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") || strings.Contains(name, "\x00") {
		return &ValidationError{
			Field:   "name",
			Message: "name contains invalid characters",
			Code:    "INVALID_NAME",
		}
	}

	return nil
}

// validateEntryID validates and parses a playlist entry ID from the URL path.
func validateEntryID(pathParts []string, minParts int) (int, *ValidationError) {
	if len(pathParts) < minParts {
		return 0, &ValidationError{
			Field:   "id",
			Message: "Playlist entry ID is required",
			Code:    "MISSING_ENTRY_ID",
		}
	}

	idStr := pathParts[minParts-1]
	if idStr == "" {
		return 0, &ValidationError{
			Field:   "id",
			Message: "Playlist entry ID cannot be empty",
			Code:    "EMPTY_ENTRY_ID",
		}
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, &ValidationError{
			Field:   "id",
			Message: "Playlist entry ID must be a valid integer",
			Code:    "INVALID_ENTRY_ID_FORMAT",
		}
	}

	if id <= 0 {
		return 0, &ValidationError{
			Field:   "id",
			Message: "Playlist entry ID must be positive",
			Code:    "INVALID_ENTRY_ID_VALUE",
		}
	}

	return id, nil
}

// sanitizeInput sanitizes user input to prevent injection attacks
func sanitizeInput(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
