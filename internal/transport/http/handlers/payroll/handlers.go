package payrollhandler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftpay/internal/domain/payroll"
	"shiftpay/internal/domain/report"
	"shiftpay/internal/requestctx"
	"shiftpay/internal/transport/http/api"
	"shiftpay/internal/transport/http/middleware"
	"shiftpay/internal/transport/http/shared"
)

type Handler struct {
	Service   *payroll.Service
	Formatter *report.Formatter
	Now       func() time.Time
}

func NewHandler(svc *payroll.Service, formatter *report.Formatter) *Handler {
	return &Handler{Service: svc, Formatter: formatter, Now: time.Now}
}

type summaryResponse struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Lang       string          `json:"lang"`
	Entries    []payroll.Entry `json:"entries"`
	GrandTotal int64           `json:"grandTotal"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/report", h.handleReport)
		r.Get("/report.pdf", h.handleReportPDF)
		r.Get("/register.csv", h.handleRegister)
	})
}

// compute resolves the period from the query and runs the engine. It
// writes the failure response itself and reports whether to continue.
func (h *Handler) compute(w http.ResponseWriter, r *http.Request) (payroll.Period, payroll.Summary, bool) {
	requestID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	period := shared.PeriodFromQuery(v, r.URL.Query()).Resolve(v, h.Now())
	if v.Reject(w, requestID) {
		return payroll.Period{}, payroll.Summary{}, false
	}
	summary, err := h.Service.Summary(r.Context(), period)
	if err != nil {
		shared.FailFromError(w, r, err, "payroll_failed", "failed to compute payroll", requestID)
		return payroll.Period{}, payroll.Summary{}, false
	}
	return period, summary, true
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	lang := requestctx.GetLang(r.Context())
	lines := h.Formatter.Lines(summary, lang)
	entries := make([]payroll.Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, summary.Entries[line.Name])
	}
	api.Success(w, summaryResponse{
		Start:      summary.Start,
		End:        summary.End,
		Lang:       lang,
		Entries:    entries,
		GrandTotal: summary.GrandTotal,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	period, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	text := h.Formatter.Format(period.Start, period.End, summary, requestctx.GetLang(r.Context()))
	api.Write(w, "text/plain; charset=utf-8", "", []byte(text))
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	period, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Formatter.WritePDF(&buf, period.Start, period.End, summary, requestctx.GetLang(r.Context())); err != nil {
		shared.FailFromError(w, r, err, "report_failed", "failed to render report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Write(w, "application/pdf", "payroll-"+period.Start.Format("2006-01-02")+".pdf", buf.Bytes())
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	period, summary, ok := h.compute(w, r)
	if !ok {
		return
	}
	lang := requestctx.GetLang(r.Context())
	var buf bytes.Buffer
	rows := payroll.RegisterRows(summary, h.Service.Roster(), lang, h.Formatter.DefaultLang())
	if err := payroll.WriteRegister(&buf, rows); err != nil {
		shared.FailFromError(w, r, err, "register_failed", "failed to export register", middleware.GetRequestID(r.Context()))
		return
	}
	api.Write(w, "text/csv; charset=utf-8", "register-"+period.Start.Format("2006-01-02")+".csv", buf.Bytes())
}
