package session

import (
	"errors"
	"testing"
	"time"

	"github.com/serenemind/serene/internal/affirmation"
)

func clips(n int) []affirmation.Affirmation {
	out := make([]affirmation.Affirmation, n)
	for i := range out {
		out[i] = affirmation.Affirmation{
			ID:       int64(i + 1),
			AudioURL: "https://cdn.example.com/clip.mp3",
		}
	}
	return out
}

func TestStart_EmptyPlaylist(t *testing.T) {
	_, err := Start(affirmation.Playlist{}, nil, 0, 1, 1)

	if !errors.Is(err, ErrEmptyPlaylist) {
		t.Errorf("Start() error = %v, want ErrEmptyPlaylist", err)
	}
}

func TestStart_MissingAudio(t *testing.T) {
	_, err := Start(affirmation.Playlist{}, []affirmation.Affirmation{{ID: 1}}, 0, 1, 1)

	if !errors.Is(err, ErrNoAudio) {
		t.Errorf("Start() error = %v, want ErrNoAudio", err)
	}
}

func TestStart_SetsIntentAndCursor(t *testing.T) {
	s, err := Start(affirmation.Playlist{ID: 7}, clips(3), 1, 0.8, 0.5)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if !s.Intent() {
		t.Error("Intent() = false, want true after start")
	}
	if s.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", s.Cursor())
	}
	if s.Current().ID != 2 {
		t.Errorf("Current().ID = %d, want 2", s.Current().ID)
	}
	if s.PrimaryVolume() != 0.8 || s.BackgroundVolume() != 0.5 {
		t.Errorf("volumes = %v/%v, want 0.8/0.5", s.PrimaryVolume(), s.BackgroundVolume())
	}
}

func TestStart_OutOfRangeIndexFallsBackToZero(t *testing.T) {
	s, err := Start(affirmation.Playlist{}, clips(2), 9, 1, 1)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", s.Cursor())
	}
}

func TestSetCursor_RejectsOutOfRange(t *testing.T) {
	s, _ := Start(affirmation.Playlist{}, clips(3), 0, 1, 1)

	if s.SetCursor(3) {
		t.Error("SetCursor(3) should be rejected")
	}
	if s.SetCursor(-1) {
		t.Error("SetCursor(-1) should be rejected")
	}
	if s.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0 after rejected moves", s.Cursor())
	}
}

func TestSetCursor_ResetsPositionAndDuration(t *testing.T) {
	s, _ := Start(affirmation.Playlist{}, clips(3), 0, 1, 1)
	s.SetDuration(60 * time.Second)
	s.SetPosition(30 * time.Second)

	if !s.SetCursor(1) {
		t.Fatal("SetCursor(1) rejected")
	}
	if s.Position() != 0 || s.Duration() != 0 {
		t.Errorf("position/duration = %v/%v, want 0/0 after cursor move", s.Position(), s.Duration())
	}
}

func TestProgress(t *testing.T) {
	s, _ := Start(affirmation.Playlist{}, clips(1), 0, 1, 1)

	if s.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0 with unknown duration", s.Progress())
	}

	s.SetDuration(60 * time.Second)
	s.SetPosition(15 * time.Second)
	if s.Progress() != 25 {
		t.Errorf("Progress() = %v, want 25", s.Progress())
	}

	// Verbatim computation, no clamping.
	s.SetPosition(90 * time.Second)
	if s.Progress() != 150 {
		t.Errorf("Progress() = %v, want 150", s.Progress())
	}
}

func TestVolume_Clamped(t *testing.T) {
	s, _ := Start(affirmation.Playlist{}, clips(1), 0, 1, 1)

	s.SetPrimaryVolume(1.5)
	if s.PrimaryVolume() != 1 {
		t.Errorf("PrimaryVolume() = %v, want 1", s.PrimaryVolume())
	}
	s.SetBackgroundVolume(-0.2)
	if s.BackgroundVolume() != 0 {
		t.Errorf("BackgroundVolume() = %v, want 0", s.BackgroundVolume())
	}
}
