package affirmation

// List is an ordered, index-addressable collection of affirmations.
// It is fixed for the lifetime of a playback session.
type List struct {
	clips []Affirmation
}

// NewList copies the given clips into a new list.
func NewList(clips []Affirmation) *List {
	l := &List{clips: make([]Affirmation, len(clips))}
	copy(l.clips, clips)
	return l
}

// At returns the clip at the given index, or nil if out of bounds.
func (l *List) At(index int) *Affirmation {
	if index < 0 || index >= len(l.clips) {
		return nil
	}
	return &l.clips[index]
}

// Len returns the number of clips.
func (l *List) Len() int {
	return len(l.clips)
}

// All returns a copy of all clips.
func (l *List) All() []Affirmation {
	result := make([]Affirmation, len(l.clips))
	copy(result, l.clips)
	return result
}
