package jobshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/platform/jobs"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Jobs *jobs.Service
}

func NewHandler(svc *jobs.Service) *Handler {
	return &Handler{Jobs: svc}
}

type listResponse struct {
	Items  []jobs.Run `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/jobs", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	runs := h.Jobs.Runs()
	api.Success(w, listResponse{
		Items:  shared.Page(runs, page),
		Total:  len(runs),
		Limit:  page.Limit,
		Offset: page.Offset,
	}, middleware.GetRequestID(r.Context()))
}
