package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"moodtunes/pkg/models"
)

// handleRegister creates a new user account. A taken username, like every
// other failure on this route, surfaces as the failure envelope with 400.
func (ms *MoodServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ms.respondFailure(w, r, "Invalid JSON body")
		return
	}

	req.Username = sanitizeInput(req.Username)
	if req.Username == "" || strings.TrimSpace(req.Password) == "" {
		ms.respondFailure(w, r, "username and password are required")
		return
	}

	user, err := ms.authService.Register(req.Username, req.Password)
	if err != nil {
		ms.respondFailure(w, r, err.Error())
		return
	}

	ms.respondSuccess(w, "Registration successful", map[string]interface{}{
		"username": user.Username,
	})
}

// handleLogin checks credentials and returns the stored user's id. Unknown
// usernames and wrong passwords both come back as the failure envelope; only
// the message text differs.
func (ms *MoodServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ms.respondFailure(w, r, "Invalid JSON body")
		return
	}

	req.Username = sanitizeInput(req.Username)
	if req.Username == "" || req.Password == "" {
		ms.respondFailure(w, r, "username and password are required")
		return
	}

	user, err := ms.authService.Login(req.Username, req.Password)
	if err != nil {
		ms.respondFailure(w, r, err.Error())
		return
	}

	ms.respondSuccess(w, "Login successful", map[string]interface{}{
		"username": user.Username,
		"userId":   user.ID,
	})
}
