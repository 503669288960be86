package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
	"github.com/ytget/taskbar-widget/internal/core"
	"github.com/ytget/taskbar-widget/internal/media"
	"github.com/ytget/taskbar-widget/internal/telemetry"
	"github.com/ytget/taskbar-widget/internal/ui"
)

func newRunCmd(lf *launchFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Show the widget (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, *lf)
		},
	}
}

func runWidget(cmd *cobra.Command, lf launchFlags) error {
	opts, err := loadOptions(cmd, lf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	logger := pslog.Ctx(ctx)
	logger.Info("taskbar widget starting", "version", version, "settings", opts.SettingsPath)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	localization := ui.NewLocalization()
	localization.SetLanguage("system")

	if desk, ok := myApp.(desktop.App); ok {
		if icon, err := ui.LoadLogoResource(); err == nil {
			desk.SetSystemTrayIcon(icon)
		} else {
			logger.Debug("tray icon not loaded", "err", err)
		}
	}

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	window := ui.NewOverlayWindow(myApp, windowTitle)
	overlay := ui.NewOverlay(myApp, window, localization, logger)

	// Initialize services
	store := config.Load(opts.SettingsPath, logger)

	source := media.NewMPRISSource()
	defer func() {
		if err := source.Close(); err != nil {
			logger.Debug("media session close failed", "err", err)
		}
	}()
	poller := media.NewPoller(source, media.Options{
		Interval:          opts.PollInterval,
		QueryTimeout:      opts.QueryTimeout,
		Attempts:          opts.QueryAttempts,
		ThumbnailMaxBytes: opts.ThumbnailMaxBytes,
	})
	sampler := telemetry.NewSampler(telemetry.NewHostReader(), opts.TelemetryInterval)

	widget := core.New(store, poller, sampler, source, overlay)
	overlay.SetController(widget)

	widget.Start(ctx)
	overlay.Animate(ctx, opts.VizFrameInterval)

	// An interrupt cancels ctx; leave the Fyne loop with it
	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(myApp.Quit)
		case <-stopped:
		}
	}()

	// Show and run
	window.ShowAndRun()

	close(stopped)
	cancel()
	widget.Stop()
	<-widget.Done()
	logger.Info("taskbar widget stopped")
	return nil
}
