package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytget/ytdlp/v2"
)

// DefaultDiscoveryTimeout bounds a playlist listing
const DefaultDiscoveryTimeout = 30 * time.Second

// URL parameters
const (
	PlaylistURLParam = "list"
)

// PlaylistCounter returns the number of entries in a playlist
type PlaylistCounter func(ctx context.Context, playlistID string) (int, error)

// ItemDiscoverer estimates how many items a URL resolves to
type ItemDiscoverer struct {
	timeout time.Duration
	count   PlaylistCounter
	logger  logrus.FieldLogger
}

// NewItemDiscoverer creates a discoverer listing playlists with ytget/ytdlp
func NewItemDiscoverer(logger logrus.FieldLogger) *ItemDiscoverer {
	return &ItemDiscoverer{
		timeout: DefaultDiscoveryTimeout,
		count:   countPlaylistItems,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for playlist listing
func (d *ItemDiscoverer) SetTimeout(timeout time.Duration) {
	d.timeout = timeout
}

// SetPlaylistCounter replaces the playlist listing backend
func (d *ItemDiscoverer) SetPlaylistCounter(counter PlaylistCounter) {
	d.count = counter
}

// CountItems returns 1 for single videos and the playlist length for playlist URLs.
// Empty playlists still count as 1 so progress has a denominator.
func (d *ItemDiscoverer) CountItems(ctx context.Context, rawURL string) (int, error) {
	playlistID, ok := ExtractPlaylistID(rawURL)
	if !ok {
		return 1, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	n, err := d.count(ctx, playlistID)
	if err != nil {
		return 1, fmt.Errorf("failed to list playlist %s: %w", playlistID, err)
	}
	if d.logger != nil {
		d.logger.WithFields(logrus.Fields{
			"playlist": playlistID,
			"items":    n,
		}).Debug("Playlist discovered")
	}
	if n < 1 {
		return 1, nil
	}
	return n, nil
}

// IsPlaylistURL reports whether rawURL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	_, ok := ExtractPlaylistID(rawURL)
	return ok
}

// ExtractPlaylistID returns the list= parameter of a YouTube URL. Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(u.Query().Get(PlaylistURLParam))
	return id, id != ""
}

func countPlaylistItems(ctx context.Context, playlistID string) (int, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
