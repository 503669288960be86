package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.taskbar-widget"
	AppName = "Taskbar Widget"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("taskbar-widget command failed")
		return 1
	}
	return 0
}

// launchFlags are shared by every command that reads launch options
type launchFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var lf launchFlags

	root := &cobra.Command{
		Use:           "taskbar-widget",
		Short:         "Compact taskbar strip with now-playing, network and CPU/memory readouts",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWidget(cmd, lf)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&lf.configPath, "config", "", "launch options file (YAML)")
	flags.String("settings-path", "", "persisted settings record")
	flags.Duration("poll-interval", config.DefaultPollInterval, "pause between media polls")
	flags.Duration("query-timeout", config.DefaultQueryTimeout, "deadline of one media poll, 0 disables")
	flags.Int("query-attempts", config.DefaultQueryAttempts, "media session query attempts per poll")
	flags.Int64("thumbnail-max-bytes", config.DefaultThumbnailMaxBytes, "artwork larger than this is dropped")
	flags.Duration("telemetry-interval", config.DefaultTelemetryInterval, "pause between telemetry samples")
	flags.Duration("viz-frame-interval", config.DefaultVizFrameInterval, "visualizer frame interval")

	root.AddCommand(newRunCmd(&lf))
	root.AddCommand(newProbeCmd(&lf))
	root.AddCommand(newSettingsCmd(&lf))
	root.AddCommand(newVersionCmd())

	return root
}

// loadOptions resolves launch options from the --config file, env and flags
func loadOptions(cmd *cobra.Command, lf launchFlags) (config.Options, error) {
	return config.LoadOptions(lf.configPath, cmd.Flags())
}
