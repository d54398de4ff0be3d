package router

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"expensetrack/internal/report"
)

const flashCookieName = "flash"

type viewBase struct {
	Error    string
	Flash    string
	LoggedIn bool
	Username string
}

// newViewBase resolves the logged-in user from the request context.
func newViewBase(ctx context.Context, router *router) viewBase {
	userID := userIDFromContext(ctx)
	if userID == 0 {
		return viewBase{}
	}

	username := ""
	user, err := router.storage.GetUserByID(ctx, userID)
	if err != nil {
		router.logger.Error("Failed to get user for view data", "error", err, "user_id", userID)
	} else {
		username = user.Username()
	}

	return viewBase{
		LoggedIn: true,
		Username: username,
	}
}

// setFlash stores a one-shot notice that survives the next redirect.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})
}

// popFlash reads the pending notice, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

type expenseRow struct {
	ID            int64
	Date          time.Time
	Description   string
	PaymentMethod string
	Amount        int64
	AmendURL      string
	DeleteURL     string
}

type summaryView struct {
	viewBase
	Summary report.Summary
	Entries []expenseRow
}

// newSummaryView attaches signed amend/delete links to every entry.
func (router *router) newSummaryView(ctx context.Context, summary report.Summary) summaryView {
	rows := make([]expenseRow, 0, len(summary.Entries))
	for _, expense := range summary.Entries {
		token := router.tokens.Issue(expense.ID())
		rows = append(rows, expenseRow{
			ID:            expense.ID(),
			Date:          expense.Date(),
			Description:   expense.Description(),
			PaymentMethod: expense.PaymentMethod(),
			Amount:        expense.Amount(),
			AmendURL:      "/amend/" + token,
			DeleteURL:     "/delete/" + token,
		})
	}

	return summaryView{
		viewBase: newViewBase(ctx, router),
		Summary:  summary,
		Entries:  rows,
	}
}
