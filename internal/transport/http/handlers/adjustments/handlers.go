package adjustmentshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/domain/adjustment"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Store *adjustment.Store
}

func NewHandler(store *adjustment.Store) *Handler {
	return &Handler{Store: store}
}

type Adjustment struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Amount int64  `json:"amount"`
}

type adjustmentPayload struct {
	Text *string `json:"text"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/adjustments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Delete("/", h.handleClear)
		r.Get("/{name}", h.handleGet)
		r.Put("/{name}", h.handlePut)
		r.Delete("/{name}", h.handleDelete)
	})
}

func newAdjustment(name, text string) Adjustment {
	return Adjustment{Name: name, Text: text, Amount: adjustment.ParseAmount(text)}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	all, err := h.Store.Snapshot(r.Context())
	if err != nil {
		shared.FailFromError(w, r, err, "adjustments_unavailable", "failed to read adjustments", requestID)
		return
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]Adjustment, 0, len(names))
	for _, name := range names {
		items = append(items, newAdjustment(name, all[name]))
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Store.Clear(r.Context()); err != nil {
		shared.FailFromError(w, r, err, "adjustments_unavailable", "failed to clear adjustments", requestID)
		return
	}
	api.Success(w, map[string]bool{"cleared": true}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	text, err := h.Store.Get(r.Context(), name)
	if err != nil {
		shared.FailFromError(w, r, err, "adjustments_unavailable", "failed to read adjustment", requestID)
		return
	}
	api.Success(w, newAdjustment(name, text), requestID)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := strings.TrimSpace(chi.URLParam(r, "name"))

	var payload adjustmentPayload
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid json payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("name", name, "is required")
	if payload.Text == nil {
		v.Add("text", "is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Store.Set(r.Context(), name, *payload.Text); err != nil {
		if errors.Is(err, adjustment.ErrEmptyName) {
			api.Fail(w, http.StatusBadRequest, "invalid_name", err.Error(), requestID)
			return
		}
		shared.FailFromError(w, r, err, "adjustments_unavailable", "failed to store adjustment", requestID)
		return
	}
	text := *payload.Text
	if strings.TrimSpace(text) == "" {
		text = ""
	}
	api.Success(w, newAdjustment(name, text), requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if err := h.Store.Set(r.Context(), name, ""); err != nil {
		if errors.Is(err, adjustment.ErrEmptyName) {
			api.Fail(w, http.StatusBadRequest, "invalid_name", err.Error(), requestID)
			return
		}
		shared.FailFromError(w, r, err, "adjustments_unavailable", "failed to delete adjustment", requestID)
		return
	}
	api.Success(w, newAdjustment(name, ""), requestID)
}
