package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestLocator(t *testing.T) (*Locator, string) {
	t.Helper()

	songsDir := t.TempDir()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	locator := NewLocator(songsDir, "http://localhost:3000", []string{".mp3"}, logger)
	return locator, songsDir
}

func addSong(t *testing.T, songsDir, mood, filename string) {
	t.Helper()

	dir := filepath.Join(songsDir, mood)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create mood dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte("not real audio"), 0644); err != nil {
		t.Fatalf("Failed to write song file: %v", err)
	}
}

func TestListSongs(t *testing.T) {
	locator, songsDir := newTestLocator(t)

	addSong(t, songsDir, "happy", "sunrise.mp3")
	addSong(t, songsDir, "happy", "dance.mp3")
	addSong(t, songsDir, "happy", "notes.txt") // not audio, must be skipped

	t.Run("ReturnsOneSongPerAudioFile", func(t *testing.T) {
		songs := locator.ListSongs("happy")
		if len(songs) != 2 {
			t.Fatalf("Expected 2 songs, got %d", len(songs))
		}

		names := []string{songs[0].Name, songs[1].Name}
		sort.Strings(names)
		if names[0] != "dance" || names[1] != "sunrise" {
			t.Errorf("Expected names [dance sunrise], got %v", names)
		}

		for _, song := range songs {
			if song.Mood != "happy" {
				t.Errorf("Expected mood happy, got %s", song.Mood)
			}
			if !strings.HasPrefix(song.URL, "http://localhost:3000/songs/happy/") {
				t.Errorf("Unexpected URL prefix: %s", song.URL)
			}
			if !strings.HasSuffix(song.URL, ".mp3") {
				t.Errorf("Expected URL to end in filename, got %s", song.URL)
			}
		}
	})

	t.Run("MissingMoodDirYieldsEmptySlice", func(t *testing.T) {
		songs := locator.ListSongs("nonexistent")
		if len(songs) != 0 {
			t.Errorf("Expected 0 songs for missing mood, got %d", len(songs))
		}
	})

	t.Run("EmptyMoodDirYieldsEmptySlice", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(songsDir, "calm"), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		songs := locator.ListSongs("calm")
		if len(songs) != 0 {
			t.Errorf("Expected 0 songs for empty mood, got %d", len(songs))
		}
	})

	t.Run("RepeatedListingsAreStable", func(t *testing.T) {
		first := locator.ListSongs("happy")
		second := locator.ListSongs("happy")
		if len(first) != len(second) {
			t.Fatalf("Expected stable listing size, got %d then %d", len(first), len(second))
		}

		seen := make(map[string]bool)
		for _, song := range first {
			seen[song.URL] = true
		}
		for _, song := range second {
			if !seen[song.URL] {
				t.Errorf("Song %s appeared only in second listing", song.URL)
			}
		}
	})
}

func TestResolvePlayableSong(t *testing.T) {
	locator, songsDir := newTestLocator(t)

	files := []string{"one.mp3", "two.mp3", "three.mp3"}
	for _, f := range files {
		addSong(t, songsDir, "sad", f)
	}

	t.Run("ReturnsURLForExistingFile", func(t *testing.T) {
		url, ok := locator.ResolvePlayableSong("sad")
		if !ok {
			t.Fatal("Expected a song to be resolved")
		}

		matched := false
		for _, f := range files {
			if url == "http://localhost:3000/songs/sad/"+f {
				matched = true
			}
		}
		if !matched {
			t.Errorf("Resolved URL %s does not match any file in the folder", url)
		}
	})

	t.Run("EveryFileSelectedOverManyTrials", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			url, ok := locator.ResolvePlayableSong("sad")
			if !ok {
				t.Fatal("Expected a song to be resolved")
			}
			seen[url] = true
		}
		if len(seen) != len(files) {
			t.Errorf("Expected all %d files selected over trials, saw %d", len(files), len(seen))
		}
	})

	t.Run("MissingMoodDirSignalsNotFound", func(t *testing.T) {
		if _, ok := locator.ResolvePlayableSong("nonexistent"); ok {
			t.Error("Expected not found for missing mood dir")
		}
	})

	t.Run("EmptyMoodDirSignalsNotFound", func(t *testing.T) {
		if err := os.MkdirAll(filepath.Join(songsDir, "angry"), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if _, ok := locator.ResolvePlayableSong("angry"); ok {
			t.Error("Expected not found for empty mood dir")
		}
	})
}

func TestSongURL(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	// Trailing slash on the base URL must not double up
	locator := NewLocator("/tmp/songs", "http://localhost:3000/", []string{".mp3"}, logger)
	url := locator.SongURL("happy", "sunrise.mp3")
	if url != "http://localhost:3000/songs/happy/sunrise.mp3" {
		t.Errorf("Unexpected URL: %s", url)
	}
}
