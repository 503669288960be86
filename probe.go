package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/taskbar-widget/internal/media"
)

func newProbeCmd(lf *launchFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Query the media session once and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, *lf)
			if err != nil {
				return err
			}

			source := media.NewMPRISSource()
			defer source.Close()
			poller := media.NewPoller(source, media.Options{
				Interval:          opts.PollInterval,
				QueryTimeout:      opts.QueryTimeout,
				Attempts:          opts.QueryAttempts,
				ThumbnailMaxBytes: opts.ThumbnailMaxBytes,
			})

			snap, state := poller.PollOnce(cmd.Context())

			out := cmd.OutOrStdout()
			title := snap.GetDisplayTitle()
			if !snap.HasTitle() {
				title = "(none)"
			}
			if _, err := fmt.Fprintf(out, "title:     %s\n", title); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "state:     %s\n", state); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "thumbnail: %d bytes\n", len(snap.Thumbnail))
			return err
		},
	}
}
