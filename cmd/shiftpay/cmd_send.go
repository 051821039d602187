package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"
)

func newSendCmd(opts *options) *cobra.Command {
	var (
		period  periodFlags
		noImage bool
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send the period's report through the configured delivery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.resolve(time.Now())
			if err != nil {
				return err
			}
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			text, err := app.Dispatcher.SendReport(cmd.Context(), p, opts.language(app), !noImage)
			app.Metrics.RecordReport(err)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}
	period.register(cmd)
	cmd.Flags().BoolVar(&noImage, "no-image", false, "send the text only")
	return cmd
}
