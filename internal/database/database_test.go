package database

import (
	"path/filepath"
	"testing"

	"moodtunes/pkg/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsers(t *testing.T) {
	db := newTestDatabase(t)

	t.Run("CreateAndGetUser", func(t *testing.T) {
		user, err := db.CreateUser("alice", "secret")
		if err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if user.ID <= 0 {
			t.Errorf("Expected positive user ID, got %d", user.ID)
		}

		found, err := db.GetUserByUsername("alice")
		if err != nil {
			t.Fatalf("Failed to get user: %v", err)
		}
		if found == nil {
			t.Fatal("Expected to find user alice")
		}
		if found.ID != user.ID {
			t.Errorf("Expected ID %d, got %d", user.ID, found.ID)
		}
		if found.Password != "secret" {
			t.Errorf("Expected stored password to round-trip, got %q", found.Password)
		}
	})

	t.Run("GetUnknownUser", func(t *testing.T) {
		found, err := db.GetUserByUsername("nobody")
		if err != nil {
			t.Fatalf("Unexpected error for unknown user: %v", err)
		}
		if found != nil {
			t.Errorf("Expected nil for unknown user, got %+v", found)
		}
	})

	t.Run("DuplicateUsernameRejectedByStore", func(t *testing.T) {
		if _, err := db.CreateUser("bob", "pw1"); err != nil {
			t.Fatalf("Failed to create user: %v", err)
		}
		if _, err := db.CreateUser("bob", "pw2"); err == nil {
			t.Error("Expected unique constraint violation for duplicate username")
		}
	})
}

func TestPlaylistEntries(t *testing.T) {
	db := newTestDatabase(t)

	entry := models.PlaylistEntry{
		UserID:   7,
		SongName: "sunrise",
		SongURL:  "http://localhost:3000/songs/happy/sunrise.mp3",
		Mood:     "happy",
	}

	t.Run("AddAndGet", func(t *testing.T) {
		id, err := db.AddPlaylistEntry(entry)
		if err != nil {
			t.Fatalf("Failed to add playlist entry: %v", err)
		}
		if id <= 0 {
			t.Errorf("Expected positive entry ID, got %d", id)
		}

		entries, err := db.GetPlaylistEntries(7)
		if err != nil {
			t.Fatalf("Failed to get playlist entries: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		got := entries[0]
		if got.SongName != entry.SongName || got.SongURL != entry.SongURL || got.Mood != entry.Mood {
			t.Errorf("Entry fields did not round-trip: %+v", got)
		}
	})

	t.Run("DuplicatesAllowed", func(t *testing.T) {
		// Saving the same song twice creates two distinct entries.
		id1, err := db.AddPlaylistEntry(entry)
		if err != nil {
			t.Fatalf("Failed to add entry: %v", err)
		}
		id2, err := db.AddPlaylistEntry(entry)
		if err != nil {
			t.Fatalf("Failed to add duplicate entry: %v", err)
		}
		if id1 == id2 {
			t.Errorf("Expected distinct IDs for duplicate entries, got %d twice", id1)
		}
	})

	t.Run("EntriesScopedToUser", func(t *testing.T) {
		other := entry
		other.UserID = 8
		if _, err := db.AddPlaylistEntry(other); err != nil {
			t.Fatalf("Failed to add entry for other user: %v", err)
		}

		entries, err := db.GetPlaylistEntries(8)
		if err != nil {
			t.Fatalf("Failed to get entries: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("Expected 1 entry for user 8, got %d", len(entries))
		}
		for _, e := range entries {
			if e.UserID != 8 {
				t.Errorf("Expected userId 8, got %d", e.UserID)
			}
		}
	})

	t.Run("RemoveById", func(t *testing.T) {
		id, err := db.AddPlaylistEntry(entry)
		if err != nil {
			t.Fatalf("Failed to add entry: %v", err)
		}

		if err := db.RemovePlaylistEntry(id); err != nil {
			t.Fatalf("Failed to remove entry: %v", err)
		}

		entries, err := db.GetPlaylistEntries(7)
		if err != nil {
			t.Fatalf("Failed to get entries after removal: %v", err)
		}
		for _, e := range entries {
			if e.ID == id {
				t.Errorf("Entry %d still present after removal", id)
			}
		}
	})

	t.Run("RemoveMissingIdIsNotAnError", func(t *testing.T) {
		if err := db.RemovePlaylistEntry(999999); err != nil {
			t.Errorf("Expected no error removing missing id, got %v", err)
		}
	})

	t.Run("EmptyPlaylist", func(t *testing.T) {
		entries, err := db.GetPlaylistEntries(12345)
		if err != nil {
			t.Fatalf("Failed to get entries for user with no playlist: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("Expected 0 entries, got %d", len(entries))
		}
	})
}
