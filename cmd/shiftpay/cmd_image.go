package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shiftpay/internal/domain/report"
)

func newImageCmd(opts *options) *cobra.Command {
	var (
		period periodFlags
		out    string
	)
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Render the schedule for a period as a PNG",
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

			table, err := app.Payroll.Schedule(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			render := func(w io.Writer) error {
				return report.RenderSchedulePNG(w, table, p.Start, p.End, app.Formatter.ImageOptions(opts.language(app)))
			}
			if err := writeAndClose(f, render); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	period.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "schedule.png", "output PNG file")
	return cmd
}
