package model

import (
	"bytes"
	"strings"
)

// NoMusicLabel is shown when there is no active media session
const NoMusicLabel = "No Music"

// MediaSnapshot is a point-in-time view of the active media session.
// Empty fields mean "absent"; the zero value means "no session".
type MediaSnapshot struct {
	Title     string
	Artist    string
	Thumbnail []byte // opaque image bytes as reported by the session
}

// EmptySnapshot returns the snapshot used when there is no session or the query failed
func EmptySnapshot() MediaSnapshot {
	return MediaSnapshot{}
}

// HasTitle reports whether the snapshot carries a non-blank title
func (ms MediaSnapshot) HasTitle() bool {
	return strings.TrimSpace(ms.Title) != ""
}

// HasThumbnail reports whether thumbnail bytes are present
func (ms MediaSnapshot) HasThumbnail() bool {
	return len(ms.Thumbnail) > 0
}

// IsEmpty reports whether all fields are absent
func (ms MediaSnapshot) IsEmpty() bool {
	return ms.Title == "" && ms.Artist == "" && len(ms.Thumbnail) == 0
}

// Equal compares two snapshots field by field, including thumbnail bytes
func (ms MediaSnapshot) Equal(other MediaSnapshot) bool {
	return ms.Title == other.Title &&
		ms.Artist == other.Artist &&
		bytes.Equal(ms.Thumbnail, other.Thumbnail)
}

// GetDisplayTitle returns "Title - Artist", the title alone, or NoMusicLabel
func (ms MediaSnapshot) GetDisplayTitle() string {
	title := strings.TrimSpace(ms.Title)
	artist := strings.TrimSpace(ms.Artist)

	if title == "" {
		return NoMusicLabel
	}
	if artist == "" {
		return title
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(" - ")
	b.WriteString(artist)
	return b.String()
}
