package history

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "serene.db"))
	if err != nil {
		t.Fatalf("OpenAt() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordPlay_AndRecentlyPlayed(t *testing.T) {
	s := openTestStore(t)

	if err := s.RecordPlay(1, "Morning Calm"); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}
	if err := s.RecordPlay(2, "Evening Wind-Down"); err != nil {
		t.Fatalf("RecordPlay() error = %v", err)
	}

	entries, err := s.RecentlyPlayed(10)
	if err != nil {
		t.Fatalf("RecentlyPlayed() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].PlaylistID != 2 {
		t.Errorf("entries[0].PlaylistID = %d, want 2 (newest first)", entries[0].PlaylistID)
	}
}

func TestRecentlyPlayed_Empty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.RecentlyPlayed(10)
	if err != nil {
		t.Fatalf("RecentlyPlayed() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}

func TestRecordPlay_PrunesBeyondLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < recentLimit+5; i++ {
		if err := s.RecordPlay(int64(i), "Playlist"); err != nil {
			t.Fatalf("RecordPlay() error = %v", err)
		}
	}

	entries, err := s.RecentlyPlayed(0)
	if err != nil {
		t.Fatalf("RecentlyPlayed() error = %v", err)
	}
	if len(entries) != recentLimit {
		t.Errorf("len = %d, want %d after pruning", len(entries), recentLimit)
	}
}

func TestVolumes_DefaultsWhenUnsaved(t *testing.T) {
	s := openTestStore(t)

	v, err := s.GetVolumes()
	if err != nil {
		t.Fatalf("GetVolumes() error = %v", err)
	}
	if v.Primary != 1.0 || v.Background != 0.5 {
		t.Errorf("defaults = %v/%v, want 1.0/0.5", v.Primary, v.Background)
	}
}

func TestVolumes_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveVolumes(0.7, 0.3); err != nil {
		t.Fatalf("SaveVolumes() error = %v", err)
	}
	if err := s.SaveVolumes(0.6, 0.2); err != nil {
		t.Fatalf("second SaveVolumes() error = %v", err)
	}

	v, err := s.GetVolumes()
	if err != nil {
		t.Fatalf("GetVolumes() error = %v", err)
	}
	if v.Primary != 0.6 || v.Background != 0.2 {
		t.Errorf("volumes = %v/%v, want 0.6/0.2", v.Primary, v.Background)
	}
}
