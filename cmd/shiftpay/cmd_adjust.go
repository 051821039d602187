package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"shiftpay/internal/domain/audit"
)

func newAdjustCmd(opts *options) *cobra.Command {
	var clearAll, list, history bool
	cmd := &cobra.Command{
		Use:   "adjust NAME [TEXT]",
		Short: "Show, set or clear salary adjustments",
		Long: `Adjustments are free text whose first number is added to the employee's total,
for example "-300 advance" or "+500 bonus". An empty TEXT removes the adjustment.

  shiftpay adjust Alice               print Alice's adjustment
  shiftpay adjust -- Alice "-300"     set it ("--" lets TEXT start with a minus)
  shiftpay adjust Alice ""            remove it
  shiftpay adjust --list              print all adjustments
  shiftpay adjust --clear             remove all adjustments after a payout
  shiftpay adjust --history           print recent changes, newest first`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bulk := clearAll || list || history
			if bulk && len(args) > 0 {
				return errors.New("--clear, --list and --history take no arguments")
			}
			if !bulk && len(args) == 0 {
				return errors.New("NAME is required")
			}
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			switch {
			case clearAll:
				if err := app.Store.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "all adjustments cleared")
				return nil
			case list:
				all, err := app.Store.Snapshot(ctx)
				if err != nil {
					return err
				}
				names := make([]string, 0, len(all))
				for name := range all {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(out, "%s\t%s\n", name, all[name])
				}
				return nil
			case history:
				events, err := app.Audit.List(ctx, audit.Filter{}, 50, 0)
				if err != nil {
					return err
				}
				for _, evt := range events {
					fmt.Fprintf(out, "%s\t%s\t%s\t%q -> %q\n",
						evt.CreatedAt.Format(time.RFC3339), evt.Action, evt.Subject, evt.Before, evt.After)
				}
				return nil
			case len(args) == 1:
				text, err := app.Store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			default:
				return app.Store.Set(ctx, args[0], args[1])
			}
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every stored adjustment")
	cmd.Flags().BoolVar(&list, "list", false, "list stored adjustments")
	cmd.Flags().BoolVar(&history, "history", false, "print recent adjustment changes")
	cmd.MarkFlagsMutuallyExclusive("clear", "list", "history")
	return cmd
}
