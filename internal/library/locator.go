package library

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moodtunes/pkg/models"

	"github.com/sirupsen/logrus"
)

// Locator resolves playable songs for a mood label. It owns no state: every
// call enumerates <songsDir>/<mood>/ directly, so the filesystem is always
// the source of truth.
type Locator struct {
	songsDir         string
	baseURL          string
	supportedFormats []string
	logger           *logrus.Logger
}

// NewLocator creates a song locator rooted at songsDir. URLs are built by
// joining baseURL, "/songs/", the mood and the filename.
func NewLocator(songsDir, baseURL string, supportedFormats []string, logger *logrus.Logger) *Locator {
	return &Locator{
		songsDir:         songsDir,
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		supportedFormats: supportedFormats,
		logger:           logger,
	}
}

// ListSongs returns one Song per audio file in the mood's folder, in directory
// enumeration order. A missing or empty folder yields an empty slice, never
// an error.
func (l *Locator) ListSongs(mood string) []models.Song {
	files := l.scanMoodDir(mood)

	songs := make([]models.Song, 0, len(files))
	for _, filename := range files {
		songs = append(songs, models.Song{
			Name: strings.TrimSuffix(filename, filepath.Ext(filename)),
			URL:  l.SongURL(mood, filename),
			Mood: mood,
		})
	}
	return songs
}

// ResolvePlayableSong picks one audio file from the mood's folder uniformly at
// random and returns its URL. ok is false when the folder is missing or holds
// no audio files.
func (l *Locator) ResolvePlayableSong(mood string) (url string, ok bool) {
	files := l.scanMoodDir(mood)
	if len(files) == 0 {
		return "", false
	}

	// Uniform pick with a locally seeded source; no shared RNG state.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	chosen := files[rng.Intn(len(files))]

	return l.SongURL(mood, chosen), true
}

// SongURL builds the browsable URL for a file in a mood folder.
func (l *Locator) SongURL(mood, filename string) string {
	return l.baseURL + "/songs/" + mood + "/" + filename
}

// FilePath returns the on-disk path for a file in a mood folder.
func (l *Locator) FilePath(mood, filename string) string {
	return filepath.Join(l.songsDir, mood, filename)
}

// scanMoodDir lists audio filenames in the mood's folder.
func (l *Locator) scanMoodDir(mood string) []string {
	dir := filepath.Join(l.songsDir, mood)

	entries, err := os.ReadDir(dir)
	exists := err == nil

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if l.isAudioFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}

	l.logger.WithFields(logrus.Fields{
		"mood":   mood,
		"dir":    dir,
		"exists": exists,
		"count":  len(files),
	}).Debug("Scanned mood folder")

	return files
}

// isAudioFile checks if a filename has a supported audio extension
func (l *Locator) isAudioFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, format := range l.supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
