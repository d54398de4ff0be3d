package router

import (
	"net/http"
	"time"

	"expensetrack/internal/report"
	"expensetrack/internal/util"
)

type historyHandler struct {
	router *router
}

func (h *historyHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /history", h.router.requireAuth(h.history))
	mux.HandleFunc("POST /history", h.router.requireAuth(h.history))
}

// history shows the aggregate for an explicitly chosen week. Without a
// start date it defaults to the current week, same as the dashboard.
func (h *historyHandler) history(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	errorMsg := ""
	start, end := util.WeekRange(time.Now())

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		startDate := r.FormValue("start_date")
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			errorMsg = "Start date must be in YYYY-MM-DD format"
		} else {
			start = util.Date(parsed)
			end = start.AddDate(0, 0, 6)
		}
	}

	summary, err := report.Aggregate(r.Context(), h.router.storage, userID, start, end)
	if err != nil {
		h.router.logger.Error("Failed to aggregate expenses", "error", err, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := h.router.newSummaryView(r.Context(), summary)
	data.Error = errorMsg

	if err := h.router.templates.Render(w, "history.html", data); err != nil {
		h.router.logger.Error("Failed to render template", "error", err, "page", "history.html")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
