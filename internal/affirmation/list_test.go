package affirmation

import "testing"

func TestList_At_OutOfBounds(t *testing.T) {
	l := NewList([]Affirmation{{ID: 1}, {ID: 2}})

	if l.At(-1) != nil {
		t.Error("At(-1) should be nil")
	}
	if l.At(2) != nil {
		t.Error("At(2) should be nil")
	}
	if got := l.At(1); got == nil || got.ID != 2 {
		t.Errorf("At(1) = %v, want clip 2", got)
	}
}

func TestList_CopiesInput(t *testing.T) {
	src := []Affirmation{{ID: 1, Text: "original"}}
	l := NewList(src)

	src[0].Text = "mutated"

	if l.At(0).Text != "original" {
		t.Errorf("list shares backing array with caller: %q", l.At(0).Text)
	}
}

func TestList_All_ReturnsCopy(t *testing.T) {
	l := NewList([]Affirmation{{ID: 1}})

	all := l.All()
	all[0].ID = 99

	if l.At(0).ID != 1 {
		t.Error("All() should return a copy")
	}
}

func TestAffirmation_HasAudio(t *testing.T) {
	if (Affirmation{}).HasAudio() {
		t.Error("empty locator should report no audio")
	}
	if !(Affirmation{AudioURL: "https://cdn.example.com/a.mp3"}).HasAudio() {
		t.Error("non-empty locator should report audio")
	}
}
