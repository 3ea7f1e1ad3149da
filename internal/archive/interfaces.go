package archive

import (
	"context"

	"github.com/ytget/yt-archiver/internal/model"
)

// Archiver defines the interface for the archive service.
type Archiver interface {
	SetUpdateCallback(func(model.ArchiveTask))
	CreateArchive(ctx context.Context, srcDir, destPath string) (*model.ArchiveTask, error)
	GetTask(taskID string) (*model.ArchiveTask, bool)
}
