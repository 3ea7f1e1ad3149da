package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-archiver/internal/bootstrap"
	"github.com/ytget/yt-archiver/internal/config"
	"github.com/ytget/yt-archiver/internal/logging"
	"github.com/ytget/yt-archiver/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-archiver"
	AppName = "YT Archiver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.LogLevel)
	logger.WithField("version", version).Infof("%s starting", AppName)
	if cfg.ConfigFile != "" {
		logger.WithField("file", cfg.ConfigFile).Info("Configuration loaded")
	}

	services, err := bootstrap.New(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize services")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := services.Metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.WithError(err).Warn("Metrics server stopped")
			}
		}()
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewArchiverTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	settings := config.NewSettings(myApp, cfg)
	rootUI := ui.NewRootUI(myWindow, services.Download, settings, logger)
	services.Archive.SetUpdateCallback(rootUI.OnArchiveUpdate)

	myWindow.ShowAndRun()
}
