// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpSessionStart Op = "start this playlist"
	OpSessionEnd   Op = "end the session"

	// Playback operations
	OpClipLoad Op = "load audio for this affirmation"
	OpClipPlay Op = "play this affirmation"
	OpSeek     Op = "seek"
	OpAdvance  Op = "advance to the next affirmation"

	// Background music operations
	OpBackgroundLoad Op = "load the background music"
	OpBackgroundPlay Op = "play the background music"

	// Catalog operations
	OpCatalogPlaylist     Op = "load the playlist"
	OpCatalogAffirmations Op = "load the affirmations"
	OpCatalogMusic        Op = "load the background music catalog"

	// History operations
	OpHistoryRecord Op = "record the play history"
	OpHistoryLoad   Op = "load recently played"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Could not %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Could not %s '%s': %v", op, context, err)
}
