package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

const (
	AppIcon             = "taskbar-widget.png"
	ThumbnailNamePrefix = "thumbnail-"
)

// LoadLogoResource loads the tray icon from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// NewThumbnailResource wraps artwork bytes in a resource with a unique name.
// Fyne caches decoded images by resource name, so reusing one name would
// keep showing the previous cover.
func NewThumbnailResource(data []byte) fyne.Resource {
	return fyne.NewStaticResource(thumbnailName(), data)
}

// thumbnailName uses UUID v7 for time ordering, falling back to a timestamp
func thumbnailName() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ThumbnailNamePrefix+"%d", time.Now().UnixNano())
	}
	return ThumbnailNamePrefix + id.String()
}
