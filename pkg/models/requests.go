package models

// AddPlaylistRequest is the body of POST /api/playlist/add.
type AddPlaylistRequest struct {
	UserID   int    `json:"userId"`
	SongName string `json:"songName"`
	SongURL  string `json:"songUrl"`
	Mood     string `json:"mood"`
}

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
