package schedulehandler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/domain/report"
	"shiftpay/internal/domain/schedule"
	"shiftpay/internal/platform/metrics"
	"shiftpay/internal/requestctx"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Holder    *schedule.Holder
	Formatter *report.Formatter
	Metrics   *metrics.Collector
	Now       func() time.Time
}

func NewHandler(holder *schedule.Holder, formatter *report.Formatter, collector *metrics.Collector) *Handler {
	return &Handler{Holder: holder, Formatter: formatter, Metrics: collector, Now: time.Now}
}

type scheduleResponse struct {
	Rows     [][]string        `json:"rows"`
	Columns  []schedule.Column `json:"columns"`
	LoadedAt time.Time         `json:"loadedAt"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Post("/reload", h.handleReload)
		r.Get("/image.png", h.handleImage)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, err := h.Holder.Ensure(r.Context()); err != nil {
		shared.FailFromError(w, r, err, "schedule_failed", "failed to load schedule", requestID)
		return
	}
	table, loadedAt, err := h.Holder.Current()
	if err != nil {
		shared.FailFromError(w, r, err, "schedule_failed", "failed to load schedule", requestID)
		return
	}
	api.Success(w, scheduleResponse{
		Rows:     table.Rows,
		Columns:  table.Columns(h.Now().Year()),
		LoadedAt: loadedAt,
	}, requestID)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	table, err := h.Holder.Reload(r.Context())
	h.Metrics.RecordScheduleReload(err)
	if err != nil {
		shared.FailFromError(w, r, err, "schedule_failed", "failed to reload schedule", requestID)
		return
	}
	api.Success(w, map[string]any{
		"rows":       len(table.Employees()),
		"columns":    len(table.Header()),
		"reloadedAt": time.Now().UTC(),
	}, requestID)
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	period := shared.PeriodFromQuery(v, r.URL.Query()).Resolve(v, h.Now())
	if v.Reject(w, requestID) {
		return
	}
	table, err := h.Holder.Ensure(r.Context())
	if err != nil {
		shared.FailFromError(w, r, err, "schedule_failed", "failed to load schedule", requestID)
		return
	}

	var buf bytes.Buffer
	opts := h.Formatter.ImageOptions(requestctx.GetLang(r.Context()))
	if err := report.RenderSchedulePNG(&buf, table, period.Start, period.End, opts); err != nil {
		shared.FailFromError(w, r, err, "image_failed", "failed to render schedule image", requestID)
		return
	}
	api.Write(w, "image/png", "", buf.Bytes())
}
