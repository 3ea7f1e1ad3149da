package download

import (
	"context"

	"github.com/ytget/yt-archiver/internal/model"
)

// Archiver bundles the staging directory into a zip file
type Archiver interface {
	CreateArchive(ctx context.Context, srcDir, destPath string) (*model.ArchiveTask, error)
}

// ItemDiscoverer estimates how many items a URL resolves to
type ItemDiscoverer interface {
	CountItems(ctx context.Context, url string) (int, error)
}

// Tagger writes metadata to extracted audio files
type Tagger interface {
	TagDirectory(dir, album string) error
}

// Publisher uploads the finished archive and returns its location
type Publisher interface {
	Publish(ctx context.Context, path string) (string, error)
}

// DestinationFunc asks where to save the archive. suggested is a file name
// without directory. Returning ok=false cancels the save.
type DestinationFunc func(ctx context.Context, suggested string) (path string, ok bool)

// Starter starts download sessions
type Starter interface {
	Start(ctx context.Context, req Request) (*Handle, error)
}
