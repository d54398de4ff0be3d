package router

import (
	"net/http"
	"time"

	"expensetrack/internal/export"
	"expensetrack/internal/report"
	"expensetrack/internal/util"
)

type exportHandler struct {
	router *router
}

func (h *exportHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /export_csv", h.router.requireAuth(h.exportCSV))
	mux.HandleFunc("GET /export_pdf", h.router.requireAuth(h.exportPDF))
	// /export keeps the original download link working.
	mux.HandleFunc("GET /export", h.router.requireAuth(h.exportPDF))
}

func (h *exportHandler) exportCSV(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.currentWeekSummary(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(summary, "csv"))

	if err := export.CSV(w, summary); err != nil {
		h.router.logger.Error("Failed to write CSV export", "error", err)
	}
}

func (h *exportHandler) exportPDF(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.currentWeekSummary(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename(summary, "pdf"))

	if err := export.PDF(w, summary); err != nil {
		h.router.logger.Error("Failed to write PDF export", "error", err)
	}
}

func (h *exportHandler) currentWeekSummary(w http.ResponseWriter, r *http.Request) (report.Summary, bool) {
	userID := userIDFromContext(r.Context())

	start, end := util.WeekRange(time.Now())
	summary, err := report.Aggregate(r.Context(), h.router.storage, userID, start, end)
	if err != nil {
		h.router.logger.Error("Failed to aggregate expenses", "error", err, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return report.Summary{}, false
	}

	return summary, true
}
