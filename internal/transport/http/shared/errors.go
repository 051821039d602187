package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/domain/schedule"
	"shiftpay/internal/platform/delivery"
	"shiftpay/internal/transport/http/api"
)

// FailFromError maps domain errors to envelope responses. Unknown errors
// are logged and answered with fallbackCode as a 500.
func FailFromError(w http.ResponseWriter, r *http.Request, err error, fallbackCode, fallbackMessage, requestID string) {
	switch {
	case errors.Is(err, schedule.ErrSourceUnavailable):
		api.Fail(w, http.StatusBadGateway, "schedule_unavailable", "schedule source unavailable", requestID)
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, payroll.ErrInvalidHalf), errors.Is(err, payroll.ErrInvalidMonth):
		api.Fail(w, http.StatusBadRequest, "invalid_period", err.Error(), requestID)
	case errors.Is(err, delivery.ErrRejected):
		api.Fail(w, http.StatusBadGateway, "delivery_failed", err.Error(), requestID)
	default:
		slog.ErrorContext(r.Context(), fallbackMessage, "err", err, "path", r.URL.Path)
		api.Fail(w, http.StatusInternalServerError, fallbackCode, fallbackMessage, requestID)
	}
}
