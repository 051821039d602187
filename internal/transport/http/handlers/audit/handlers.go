package audithandler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"

	"shiftpay/internal/domain/audit"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Log *audit.Log
}

func NewHandler(log *audit.Log) *Handler {
	return &Handler{Log: log}
}

type listResponse struct {
	Items  []audit.Event `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/events", h.handleListEvents)
		r.Get("/events/export", h.handleExportEvents)
	})
}

func filterFromQuery(r *http.Request) audit.Filter {
	return audit.Filter{
		Action:  strings.TrimSpace(r.URL.Query().Get("action")),
		Subject: strings.TrimSpace(r.URL.Query().Get("subject")),
	}
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 100, 500)
	filter := filterFromQuery(r)

	total, err := h.Log.Count(r.Context(), filter)
	if err != nil {
		slog.WarnContext(r.Context(), "audit count failed", "err", err)
	}
	events, err := h.Log.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		shared.FailFromError(w, r, err, "audit_list_failed", "failed to list audit events", requestID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, listResponse{
		Items:  events,
		Total:  total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, requestID)
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	events, err := h.Log.List(r.Context(), filterFromQuery(r), 0, 0)
	if err != nil {
		shared.FailFromError(w, r, err, "audit_export_failed", "failed to export audit events", requestID)
		return
	}
	var buf bytes.Buffer
	if err := gocsv.Marshal(events, &buf); err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_export_failed", "failed to export audit events", requestID)
		return
	}
	api.Write(w, "text/csv; charset=utf-8", "audit-events.csv", buf.Bytes())
}
