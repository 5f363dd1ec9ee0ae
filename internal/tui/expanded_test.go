package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandedSet_ToggleTwiceRestores(t *testing.T) {
	set := ExpandedSet{}
	set.Expand("Weekend")
	before := set.Names()

	if !set.Toggle("Weekdays") {
		t.Fatal("first toggle should expand")
	}
	if !set.Has("Weekdays") {
		t.Error("Weekdays should be expanded")
	}
	if set.Toggle("Weekdays") {
		t.Fatal("second toggle should collapse")
	}

	if diff := cmp.Diff(before, set.Names()); diff != "" {
		t.Errorf("expansion set changed (-before +after):\n%s", diff)
	}
}

func TestExpandedSet_Multiple(t *testing.T) {
	set := ExpandedSet{}
	set.Toggle("Weekdays")
	set.Toggle("Party Night")
	set.Expand("Weekdays")

	want := []string{"Party Night", "Weekdays"}
	if diff := cmp.Diff(want, set.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
