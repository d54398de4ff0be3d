package router

import (
	"net/http"
	"time"

	"expensetrack/internal/report"
	"expensetrack/internal/util"
)

type homeHandler struct {
	router *router
}

func (h *homeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.router.requireAuth(h.index))
}

func (h *homeHandler) index(w http.ResponseWriter, r *http.Request) {
	h.router.renderDashboard(w, r, "")
}

// renderDashboard shows the current-week aggregate. It is shared with
// the add handler so validation failures re-render the same page.
func (router *router) renderDashboard(w http.ResponseWriter, r *http.Request, errorMsg string) {
	userID := userIDFromContext(r.Context())

	start, end := util.WeekRange(time.Now())
	summary, err := report.Aggregate(r.Context(), router.storage, userID, start, end)
	if err != nil {
		router.logger.Error("Failed to aggregate expenses", "error", err, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := router.newSummaryView(r.Context(), summary)
	data.Error = errorMsg
	if errorMsg == "" {
		data.Flash = popFlash(w, r)
	}

	if err := router.templates.Render(w, "index.html", data); err != nil {
		router.logger.Error("Failed to render template", "error", err, "page", "index.html")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
