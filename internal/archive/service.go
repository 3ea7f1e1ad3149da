// Package archive bundles a staging directory into a single zip file.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/logging"
	"github.com/ytget/yt-archiver/internal/model"
	"github.com/ytget/yt-archiver/internal/platform"
)

// Archive constants
const (
	Extension       = ".zip"
	TaskIDPrefix    = "archive-"
	tempFilePattern = ".yt-archiver-*.zip.tmp"
)

// Service writes zip archives and keeps track of their tasks
type Service struct {
	tasks      map[string]*model.ArchiveTask
	tasksMutex sync.RWMutex
	onUpdate   func(model.ArchiveTask) // callback for UI updates
	logger     logrus.FieldLogger
}

// NewService creates a new archive service
func NewService(logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		tasks:  make(map[string]*model.ArchiveTask),
		logger: logger,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.ArchiveTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// GetTask returns an archive task by ID
func (s *Service) GetTask(taskID string) (*model.ArchiveTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	cp := *task
	return &cp, true
}

// CreateArchive zips every finished file below srcDir into destPath. A ".zip"
// extension is appended when missing and the parent directory is created.
// The archive is written next to its destination and renamed into place, so a
// failed run leaves nothing behind.
func (s *Service) CreateArchive(ctx context.Context, srcDir, destPath string) (*model.ArchiveTask, error) {
	if _, err := os.Stat(srcDir); err != nil {
		return nil, fmt.Errorf("source directory does not exist: %w", err)
	}

	task := &model.ArchiveTask{
		ID:         generateTaskID(),
		SourceDir:  srcDir,
		OutputPath: platform.EnsureExtension(destPath, Extension),
		Status:     model.TaskStatusPending,
	}
	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()

	files, err := platform.ListStagedFiles(srcDir)
	if err != nil {
		return s.fail(task, fmt.Errorf("failed to list files: %w", err))
	}

	s.update(task, func(t *model.ArchiveTask) {
		t.Status = model.TaskStatusArchiving
		t.TotalFiles = len(files)
		t.StartedAt = time.Now()
	})

	if err := s.writeArchive(ctx, task, files); err != nil {
		return s.fail(task, err)
	}

	s.update(task, func(t *model.ArchiveTask) {
		t.Status = model.TaskStatusCompleted
		t.Progress = 1.0
		t.Percent = 100
		t.FinishedAt = time.Now()
	})

	s.logger.WithFields(logrus.Fields{
		"archive": task.OutputPath,
		"files":   len(files),
	}).Info("Archive created")

	result, _ := s.GetTask(task.ID)
	return result, nil
}

func (s *Service) writeArchive(ctx context.Context, task *model.ArchiveTask, files []string) (err error) {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(task.OutputPath)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(task.OutputPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(tmp)
	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		written, err := addFile(zw, task.SourceDir, rel)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}

		done := i + 1
		s.update(task, func(t *model.ArchiveTask) {
			t.Files = done
			t.Bytes += written
			t.Progress = float64(done) / float64(len(files))
			t.Percent = int(t.Progress * 100)
		})
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	if err := os.Rename(tmpPath, task.OutputPath); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}

// addFile stores one file under its slash-separated relative name
func addFile(zw *zip.Writer, root, rel string) (int64, error) {
	path := filepath.Join(root, rel)
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, err
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return io.Copy(w, f)
}

func (s *Service) fail(task *model.ArchiveTask, err error) (*model.ArchiveTask, error) {
	s.update(task, func(t *model.ArchiveTask) {
		t.Status = model.TaskStatusError
		t.LastError = err.Error()
		t.FinishedAt = time.Now()
	})
	s.logger.WithError(err).WithField("archive", task.OutputPath).Error("Archive failed")

	result, _ := s.GetTask(task.ID)
	return result, err
}

// update mutates task under the lock and notifies with a copy
func (s *Service) update(task *model.ArchiveTask, mutate func(*model.ArchiveTask)) {
	s.tasksMutex.Lock()
	mutate(task)
	snapshot := *task
	callback := s.onUpdate
	s.tasksMutex.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
