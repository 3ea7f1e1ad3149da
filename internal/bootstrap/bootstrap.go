// Package bootstrap wires the services shared by the desktop app and the CLI.
package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/archive"
	"github.com/ytget/yt-archiver/internal/audio"
	"github.com/ytget/yt-archiver/internal/config"
	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/metrics"
	"github.com/ytget/yt-archiver/internal/platform"
	"github.com/ytget/yt-archiver/internal/publish"
)

// Services holds the wired application services
type Services struct {
	Download *download.Service
	Archive  *archive.Service
	Metrics  *metrics.Collector
	Engine   *download.YTDLPEngine
}

// New builds the services described by cfg
func New(cfg *config.Config, logger *logrus.Logger) (*Services, error) {
	collector := metrics.New()

	engine := download.NewYTDLPEngine(logger)
	if cfg.YTDLPPath != "" {
		engine.SetExecutable(cfg.YTDLPPath)
	}

	archiveSvc := archive.NewService(logger)

	svc := download.NewService(engine, archiveSvc, logger)
	svc.SetMetrics(collector)
	svc.SetDiscoverer(platform.NewItemDiscoverer(logger))
	svc.SetTagger(audio.NewTagger(logger))
	svc.SetFFmpegLocation(cfg.FFmpegLocation)
	svc.SetOutputTemplate(cfg.FilenameTemplate)

	if cfg.S3.Enabled() {
		publisher, err := publish.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to configure archive upload: %w", err)
		}
		svc.SetPublisher(publisher)
		logger.WithField("bucket", cfg.S3.Bucket).Info("Archive upload enabled")
	}

	return &Services{
		Download: svc,
		Archive:  archiveSvc,
		Metrics:  collector,
		Engine:   engine,
	}, nil
}
