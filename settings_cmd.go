package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
)

func newSettingsCmd(lf *launchFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset the persisted settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings record",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, *lf)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(store.Values(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd, *lf)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), opts.SettingsPath)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore and persist the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd, *lf)
			if err != nil {
				return err
			}
			store.Reset()
			pslog.Ctx(cmd.Context()).Info("settings reset", "path", store.Path())
			return nil
		},
	})

	return cmd
}

func openStore(cmd *cobra.Command, lf launchFlags) (*config.Store, error) {
	opts, err := loadOptions(cmd, lf)
	if err != nil {
		return nil, err
	}
	return config.Load(opts.SettingsPath, pslog.Ctx(cmd.Context())), nil
}
