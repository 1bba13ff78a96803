package models

// Song is a file found in a mood folder. It is derived from the filesystem on
// every listing request and never persisted.
type Song struct {
	Name string `json:"name"` // filename minus extension
	URL  string `json:"url"`
	Mood string `json:"mood"`
}

// SongDetails carries tag metadata and duration for a single song file.
type SongDetails struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration"` // in seconds
	FileSize int64  `json:"fileSize"`
	Mood     string `json:"mood"`
	URL      string `json:"url"`
}
