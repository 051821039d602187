package reportshandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/domain/report"
	"shiftpay/internal/domain/schedule"
	"shiftpay/internal/platform/i18n"
	"shiftpay/internal/platform/jobs"
	"shiftpay/internal/platform/metrics"
	"shiftpay/internal/requestctx"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Dispatcher *report.Dispatcher
	Jobs       *jobs.Service
	Translator *i18n.Translator
	Metrics    *metrics.Collector
	Now        func() time.Time
}

func NewHandler(dispatcher *report.Dispatcher, jobsSvc *jobs.Service, tr *i18n.Translator, collector *metrics.Collector) *Handler {
	return &Handler{Dispatcher: dispatcher, Jobs: jobsSvc, Translator: tr, Metrics: collector, Now: time.Now}
}

type sendPayload struct {
	shared.PeriodRequest
	Lang  string `json:"lang"`
	Image *bool  `json:"image"`
}

type sendResult struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Lang  string    `json:"lang"`
	Image bool      `json:"image"`
	Text  string    `json:"text"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reports/send", h.handleSend)
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload sendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid json payload", requestID)
		return
	}
	v := shared.NewValidator()
	period := payload.PeriodRequest.Resolve(v, h.Now())
	if v.Reject(w, requestID) {
		return
	}
	lang := requestctx.GetLang(r.Context())
	if strings.TrimSpace(payload.Lang) != "" {
		lang = h.Translator.Resolve(payload.Lang)
	}
	withImage := payload.Image == nil || *payload.Image

	details, err := h.Jobs.RunNow(r.Context(), jobs.JobReportSend, func(ctx context.Context) (any, error) {
		text, err := h.Dispatcher.SendReport(ctx, period, lang, withImage)
		return sendResult{Start: period.Start, End: period.End, Lang: lang, Image: withImage, Text: text}, err
	})
	h.Metrics.RecordReport(err)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSourceUnavailable),
			errors.Is(err, payroll.ErrInvalidPeriod):
			shared.FailFromError(w, r, err, "report_failed", "failed to send report", requestID)
		default:
			api.Fail(w, http.StatusBadGateway, "delivery_failed", err.Error(), requestID)
		}
		return
	}
	api.Success(w, details, requestID)
}
