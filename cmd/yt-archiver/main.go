// Command yt-archiver downloads a video or playlist and saves it as a zip
// archive from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-archiver/internal/bootstrap"
	"github.com/ytget/yt-archiver/internal/config"
	"github.com/ytget/yt-archiver/internal/download"
	"github.com/ytget/yt-archiver/internal/logging"
	"github.com/ytget/yt-archiver/internal/model"
	"github.com/ytget/yt-archiver/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// errSessionFailed marks a failure that was already reported to the user
var errSessionFailed = errors.New("session failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errSessionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output    string
		configDir string
	)

	cmd := &cobra.Command{
		Use:           "yt-archiver <url>",
		Short:         "Download a video or playlist and bundle it into a zip archive",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var paths []string
			if configDir != "" {
				paths = append(paths, configDir)
			}
			cfg, err := config.LoadWithFlags(cmd.Flags(), paths...)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args[0], output)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "archive path (defaults to a name derived from the download)")
	flags.StringVar(&configDir, "config-dir", "", "directory holding "+config.ConfigName+"."+config.ConfigType)
	flags.StringP("tier", "t", string(config.DefaultTier), "quality tier: video_high, video_medium, video_low, audio_only")
	flags.String("output-dir", "", "directory for archives when --output is not set")
	flags.String("ffmpeg-location", "", "ffmpeg binary or directory")
	flags.String("yt-dlp", "", "yt-dlp executable")
	flags.String("template", config.DefaultFilenameTemplate, "file name template inside the archive")
	flags.String("log-level", config.DefaultLogLevel, "log level")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address")
	flags.String("s3-bucket", "", "upload the archive to this S3 bucket")
	flags.String("s3-region", config.DefaultS3Region, "S3 region")
	flags.String("s3-prefix", "", "S3 key prefix")
	flags.String("s3-endpoint", "", "S3 compatible endpoint")

	return cmd
}

func run(parent context.Context, cfg *config.Config, url, output string) error {
	logger := logging.NewLoggerTo(os.Stderr, cfg.LogLevel)

	services, err := bootstrap.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := services.Download.Start(ctx, download.Request{
		URL:         url,
		Tier:        cfg.DefaultTier,
		Destination: destination(cfg.ArchiveDir, output),
	})
	if err != nil {
		return err
	}

	renderer := newRenderer(os.Stdout)
	services.Archive.SetUpdateCallback(func(task model.ArchiveTask) {
		renderer.archiving(task)
	})

	g, gctx := errgroup.WithContext(ctx)
	metricsCtx, stopMetrics := context.WithCancel(gctx)
	defer stopMetrics()

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return services.Metrics.Serve(metricsCtx, cfg.MetricsAddr, logger)
		})
	}

	var summary download.Summary
	g.Go(func() error {
		defer stopMetrics()
		renderer.follow(handle)
		summary = handle.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Warn("Metrics server stopped")
	}

	renderer.summary(summary)
	if summary.PublishErr != nil {
		logger.WithError(summary.PublishErr).Warn("Archive upload failed")
	}
	if summary.Err != nil {
		return errSessionFailed
	}
	return nil
}

// destination resolves the archive path without prompting: an explicit
// output wins, otherwise the suggested name goes into the archive directory.
func destination(archiveDir, output string) download.DestinationFunc {
	return func(ctx context.Context, suggested string) (string, bool) {
		if output != "" {
			return platform.EnsureExtension(output, ".zip"), true
		}
		dir := archiveDir
		if dir == "" {
			var err error
			if dir, err = platform.GetHomeDownloadsDir(); err != nil {
				dir = "."
			}
		}
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return "", false
		}
		return filepath.Join(dir, suggested), true
	}
}
