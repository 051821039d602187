package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"shiftpay/internal/domain/payroll"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputCSV  = "csv"
	outputPDF  = "pdf"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		period periodFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compute the payroll summary for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case outputText, outputJSON, outputCSV, outputPDF:
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			p, err := period.resolve(time.Now())
			if err != nil {
				return err
			}
			app, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(app)

			summary, err := app.Payroll.Summary(cmd.Context(), p)
			if err != nil {
				return err
			}
			lang := opts.language(app)

			write := func(w io.Writer) error {
				switch format {
				case outputJSON:
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(summary)
				case outputCSV:
					return payroll.WriteRegister(w, payroll.RegisterRows(summary, app.Roster, lang, app.Translator.Default()))
				case outputPDF:
					return app.Formatter.WritePDF(w, p.Start, p.End, summary, lang)
				default:
					_, err := io.WriteString(w, app.Formatter.Format(p.Start, p.End, summary, lang))
					return err
				}
			}
			if out == "" {
				return write(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			return writeAndClose(f, write)
		},
	}
	period.register(cmd)
	cmd.Flags().StringVar(&format, "format", outputText, "text, json, csv or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

// writeAndClose returns the close error as well; a failed close can leave
// the file truncated.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
