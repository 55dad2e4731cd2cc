// Package playerbar renders the now-playing bar: affirmation text,
// playlist position, a progress bar and the background music bed, built
// purely from a transport view snapshot.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/serenemind/serene/internal/transport"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"

	// Height is the rendered bar height: top border + content + bottom border.
	Height = 3
)

// State holds everything needed to render the player bar.
type State struct {
	HasSession bool
	Playing    bool // audible right now
	Intent     bool // wants to play (may differ while loading or after a failure)

	Text     string
	Playlist string
	Index    int
	Count    int

	Position time.Duration
	Duration time.Duration

	Background string
}

// NewState builds a bar state from a transport view snapshot.
func NewState(v transport.View) State {
	s := State{
		HasSession: v.HasSession,
		Playing:    v.Audible,
		Intent:     v.Intent,
		Index:      v.Index,
		Count:      v.Count,
		Position:   v.Position,
		Duration:   v.Duration,
		Playlist:   v.Playlist.Title,
	}
	if v.Current != nil {
		s.Text = v.Current.Text
	}
	if v.Background != nil {
		s.Background = v.Background.Name
	}
	return s
}

// Render returns the player bar string for the given width, or the
// empty string when there is no session to show.
func Render(s State, width int) string {
	if !s.HasSession {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := pauseSymbol
	if s.Playing {
		status = playSymbol
	}

	text := s.Text
	if text == "" {
		text = "…"
	}

	counter := fmt.Sprintf("%d/%d", s.Index+1, s.Count)
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	statusWidth := lipgloss.Width(status + "  ")
	counterWidth := lipgloss.Width(counter)
	timeWidth := lipgloss.Width(timeStr)

	// Secondary line parts: playlist title, optional music bed
	info := s.Playlist
	if s.Background != "" {
		info += " · ♪ " + s.Background
	}

	minBarWidth := 10
	availableForContent := innerWidth - statusWidth - counterWidth - timeWidth - sepWidth*3 - minBarWidth

	textWidth := lipgloss.Width(text)
	infoWidth := lipgloss.Width(info)

	var styledText, styledInfo string
	var usedContentWidth int

	switch {
	case textWidth+sepWidth+infoWidth <= availableForContent:
		styledText = textStyle.Render(text)
		styledInfo = playlistStyle.Render(info)
		usedContentWidth = textWidth + sepWidth + infoWidth
	case textWidth+sepWidth <= availableForContent && info != "":
		maxInfo := availableForContent - textWidth - sepWidth
		styledText = textStyle.Render(text)
		styledInfo = playlistStyle.Render(truncate(info, maxInfo))
		usedContentWidth = textWidth + sepWidth + maxInfo
	default:
		maxText := max(availableForContent, 10)
		styledText = textStyle.Render(truncate(text, maxText))
		styledInfo = ""
		usedContentWidth = min(textWidth, maxText)
	}

	barWidth := max(innerWidth-usedContentWidth-statusWidth-counterWidth-timeWidth-sepWidth*3, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := progressFilledStyle.Render(strings.Repeat("━", filled))
	emptyBar := progressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	var content strings.Builder
	content.WriteString(styledText)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	content.WriteString(separator)
	content.WriteString(metaStyle.Render(counter))
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(timeStyle.Render(timeStr))

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

func truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
