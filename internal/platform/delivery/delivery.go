package delivery

import (
	"context"
	"errors"
	"log/slog"

	"shiftpay/internal/platform/config"
)

// ErrRejected means the destination answered but refused the message.
var ErrRejected = errors.New("delivery rejected")

type Sender interface {
	SendText(ctx context.Context, text string) error
	SendImage(ctx context.Context, filename string, png []byte) error
}

// New builds the sender selected by DELIVERY_DRIVER.
func New(cfg config.Config) Sender {
	switch cfg.DeliveryDriver {
	case "relay":
		return NewRelay(cfg.DeliveryURL, cfg.DeliveryChatID, cfg.DeliveryTimeout)
	case "smtp":
		return NewMail(cfg)
	default:
		return Noop{}
	}
}

// Noop discards everything. Used when delivery is disabled.
type Noop struct{}

func (Noop) SendText(ctx context.Context, text string) error {
	slog.DebugContext(ctx, "delivery disabled, text dropped", "bytes", len(text))
	return nil
}

func (Noop) SendImage(ctx context.Context, filename string, png []byte) error {
	slog.DebugContext(ctx, "delivery disabled, image dropped", "filename", filename, "bytes", len(png))
	return nil
}
