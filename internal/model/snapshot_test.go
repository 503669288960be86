package model

import "testing"

func TestMediaSnapshot_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		artist   string
		expected string
	}{
		{"Song", "Band", "Song - Band"},
		{"Song", "", "Song"},
		{"", "Band", NoMusicLabel},
		{"   ", "Band", NoMusicLabel},
		{"", "", NoMusicLabel},
	}

	for _, test := range tests {
		snap := MediaSnapshot{Title: test.title, Artist: test.artist}
		if result := snap.GetDisplayTitle(); result != test.expected {
			t.Errorf("GetDisplayTitle() with title=%q, artist=%q = %q, expected %q",
				test.title, test.artist, result, test.expected)
		}
	}
}

func TestMediaSnapshot_Empty(t *testing.T) {
	snap := EmptySnapshot()

	if !snap.IsEmpty() {
		t.Error("EmptySnapshot should be empty")
	}
	if snap.HasTitle() || snap.HasThumbnail() {
		t.Error("EmptySnapshot should carry neither title nor thumbnail")
	}

	partial := MediaSnapshot{Title: "Song", Artist: "Band"}
	if partial.IsEmpty() {
		t.Error("snapshot with title should not be empty")
	}
	if partial.HasThumbnail() {
		t.Error("snapshot without bytes should not report a thumbnail")
	}
}

func TestMediaSnapshot_Equal(t *testing.T) {
	a := MediaSnapshot{Title: "Song", Artist: "Band", Thumbnail: []byte{1, 2, 3}}
	b := MediaSnapshot{Title: "Song", Artist: "Band", Thumbnail: []byte{1, 2, 3}}
	c := MediaSnapshot{Title: "Song", Artist: "Band", Thumbnail: []byte{1, 2}}

	if !a.Equal(b) {
		t.Error("identical snapshots should be equal")
	}
	if a.Equal(c) {
		t.Error("snapshots with different thumbnails should differ")
	}
	if !EmptySnapshot().Equal(MediaSnapshot{Thumbnail: []byte{}}) {
		t.Error("nil and empty thumbnails should compare equal")
	}
}
