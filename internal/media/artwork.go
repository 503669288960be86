package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dhowden/tag"

	"github.com/ytget/taskbar-widget/internal/platform"
)

// openArtwork resolves the artwork of a track. The published art URL wins;
// a local track without one falls back to its embedded picture.
// A nil reader with a nil error means the track has no artwork.
func openArtwork(ctx context.Context, client *http.Client, meta Metadata) (io.ReadCloser, int64, error) {
	if meta.ArtURL != "" {
		return openArtURL(ctx, client, meta.ArtURL)
	}
	if meta.TrackURL != "" && platform.URIScheme(meta.TrackURL) == platform.SchemeFile {
		return embeddedArtwork(meta.TrackURL)
	}
	return nil, 0, nil
}

func openArtURL(ctx context.Context, client *http.Client, artURL string) (io.ReadCloser, int64, error) {
	switch platform.URIScheme(artURL) {
	case platform.SchemeFile:
		path, err := platform.FileURIToPath(artURL)
		if err != nil {
			return nil, 0, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open artwork: %w", err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("failed to stat artwork: %w", err)
		}
		return f, info.Size(), nil

	case platform.SchemeHTTP, platform.SchemeHTTPS:
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, artURL, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build artwork request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to fetch artwork: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, 0, fmt.Errorf("artwork fetch returned %s", resp.Status)
		}
		return resp.Body, resp.ContentLength, nil

	default:
		return nil, 0, fmt.Errorf("unsupported artwork location %q", artURL)
	}
}

// embeddedArtwork reads the picture tag of a local audio file
func embeddedArtwork(trackURL string) (io.ReadCloser, int64, error) {
	path, err := platform.FileURIToPath(trackURL)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open track: %w", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to read track tags: %w", err)
	}

	picture := m.Picture()
	if picture == nil || len(picture.Data) == 0 {
		return nil, 0, nil
	}
	return io.NopCloser(bytes.NewReader(picture.Data)), int64(len(picture.Data)), nil
}
