package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ytget/taskbar-widget/internal/platform"
)

// EnvPrefix is the prefix of environment overrides, e.g. TASKBAR_WIDGET_POLL_INTERVAL
const EnvPrefix = "TASKBAR_WIDGET"

// Option keys, shared by the YAML file, env overrides and CLI flags
const (
	OptSettingsPath      = "settings_path"
	OptPollInterval      = "poll_interval"
	OptQueryTimeout      = "query_timeout"
	OptQueryAttempts     = "query_attempts"
	OptThumbnailMaxBytes = "thumbnail_max_bytes"
	OptTelemetryInterval = "telemetry_interval"
	OptVizFrameInterval  = "viz_frame_interval"
)

// Default launch options
const (
	DefaultPollInterval      = 2 * time.Second
	DefaultQueryTimeout      = 5 * time.Second
	DefaultQueryAttempts     = 2
	DefaultThumbnailMaxBytes = 4 << 20
	DefaultTelemetryInterval = time.Second
	DefaultVizFrameInterval  = 150 * time.Millisecond
)

// Options are process launch parameters. Unlike Settings they are never
// written back; they come from an optional YAML file, env and flags.
type Options struct {
	SettingsPath      string        `mapstructure:"settings_path"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	QueryTimeout      time.Duration `mapstructure:"query_timeout"`
	QueryAttempts     int           `mapstructure:"query_attempts"`
	ThumbnailMaxBytes int64         `mapstructure:"thumbnail_max_bytes"`
	TelemetryInterval time.Duration `mapstructure:"telemetry_interval"`
	VizFrameInterval  time.Duration `mapstructure:"viz_frame_interval"`
}

// DefaultOptions returns launch options with every default applied
func DefaultOptions() (Options, error) {
	settingsPath, err := platform.DefaultSettingsPath()
	if err != nil {
		return Options{}, err
	}
	return Options{
		SettingsPath:      settingsPath,
		PollInterval:      DefaultPollInterval,
		QueryTimeout:      DefaultQueryTimeout,
		QueryAttempts:     DefaultQueryAttempts,
		ThumbnailMaxBytes: DefaultThumbnailMaxBytes,
		TelemetryInterval: DefaultTelemetryInterval,
		VizFrameInterval:  DefaultVizFrameInterval,
	}, nil
}

// LoadOptions resolves launch options. Precedence: flags, env, file, defaults.
// An empty path uses the default location, which may be absent.
func LoadOptions(path string, flags *pflag.FlagSet) (Options, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := platform.DefaultOptionsPath()
		if err != nil {
			return Options{}, err
		}
		path = defaultPath
	}

	opts, err := DefaultOptions()
	if err != nil {
		return Options{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(OptSettingsPath, opts.SettingsPath)
	v.SetDefault(OptPollInterval, opts.PollInterval)
	v.SetDefault(OptQueryTimeout, opts.QueryTimeout)
	v.SetDefault(OptQueryAttempts, opts.QueryAttempts)
	v.SetDefault(OptThumbnailMaxBytes, opts.ThumbnailMaxBytes)
	v.SetDefault(OptTelemetryInterval, opts.TelemetryInterval)
	v.SetDefault(OptVizFrameInterval, opts.VizFrameInterval)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return Options{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Options{}, fmt.Errorf("failed to read options %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("failed to decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// bindFlags maps kebab-case flags (poll-interval) onto option keys (poll_interval).
// Only flags set on the command line are bound so flag defaults never shadow
// env or file values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch key {
		case OptSettingsPath, OptPollInterval, OptQueryTimeout, OptQueryAttempts,
			OptThumbnailMaxBytes, OptTelemetryInterval, OptVizFrameInterval:
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		}
	})
	return bindErr
}

// Validate rejects option values the poller and sampler cannot run with
func (o Options) Validate() error {
	if o.SettingsPath == "" {
		return fmt.Errorf("%s must not be empty", OptSettingsPath)
	}
	if o.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", OptPollInterval, o.PollInterval)
	}
	if o.QueryTimeout < 0 {
		return fmt.Errorf("%s must not be negative, got %s", OptQueryTimeout, o.QueryTimeout)
	}
	if o.QueryAttempts < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", OptQueryAttempts, o.QueryAttempts)
	}
	if o.ThumbnailMaxBytes <= 0 {
		return fmt.Errorf("%s must be positive, got %d", OptThumbnailMaxBytes, o.ThumbnailMaxBytes)
	}
	if o.TelemetryInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", OptTelemetryInterval, o.TelemetryInterval)
	}
	if o.VizFrameInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", OptVizFrameInterval, o.VizFrameInterval)
	}
	return nil
}
