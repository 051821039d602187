package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"shiftpay/internal/domain/payroll"
)

// Sender delivers a finished report to its destination.
type Sender interface {
	SendText(ctx context.Context, text string) error
	SendImage(ctx context.Context, filename string, png []byte) error
}

// Dispatcher computes a period's report and hands it to a Sender: the
// text first, then optionally the schedule image.
type Dispatcher struct {
	payroll   *payroll.Service
	formatter *Formatter
	sender    Sender
}

func NewDispatcher(payrollSvc *payroll.Service, formatter *Formatter, sender Sender) *Dispatcher {
	return &Dispatcher{payroll: payrollSvc, formatter: formatter, sender: sender}
}

// SendReport returns the text that was sent. A failed send leaves stored
// adjustments untouched.
func (d *Dispatcher) SendReport(ctx context.Context, period payroll.Period, lang string, withImage bool) (string, error) {
	summary, err := d.payroll.Summary(ctx, period)
	if err != nil {
		return "", err
	}
	text := d.formatter.Format(period.Start, period.End, summary, lang)
	if err := d.sender.SendText(ctx, text); err != nil {
		return text, fmt.Errorf("send report text: %w", err)
	}
	if !withImage {
		return text, nil
	}

	table, err := d.payroll.Schedule(ctx)
	if err != nil {
		return text, err
	}
	var buf bytes.Buffer
	if err := RenderSchedulePNG(&buf, table, period.Start, period.End, d.formatter.ImageOptions(lang)); err != nil {
		return text, fmt.Errorf("render schedule image: %w", err)
	}
	if err := d.sender.SendImage(ctx, "schedule.png", buf.Bytes()); err != nil {
		return text, fmt.Errorf("send schedule image: %w", err)
	}
	slog.InfoContext(ctx, "report sent", "start", period.Start.Format("2006-01-02"), "end", period.End.Format("2006-01-02"), "lang", lang, "entries", len(summary.Entries))
	return text, nil
}
