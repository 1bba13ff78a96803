package models

// PlaylistEntry is a single saved song belonging to one user. Entries are
// created via the add endpoint and destroyed by id; they are never updated.
// Duplicates across (userId, songUrl) are allowed.
type PlaylistEntry struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	SongName string `json:"songName"`
	SongURL  string `json:"songUrl"`
	Mood     string `json:"mood"`
}
