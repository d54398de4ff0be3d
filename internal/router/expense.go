package router

import (
	"errors"
	"net/http"
	"time"

	"expensetrack/internal/storage"
	"expensetrack/internal/token"
	"expensetrack/internal/util"
)

type expenseHandler struct {
	router *router
}

func (h *expenseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /add", h.router.requireAuth(h.add))
	mux.HandleFunc("POST /delete/{token}", h.router.requireAuth(h.delete))
	mux.HandleFunc("GET /amend/{token}", h.router.requireAuth(h.amendPage))
	mux.HandleFunc("POST /amend/{token}", h.router.requireAuth(h.amend))
}

func (h *expenseHandler) add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	userID := userIDFromContext(r.Context())
	description := r.FormValue("description")
	paymentMethod := r.FormValue("payment_method")

	amount, err := util.ParseMoney(r.FormValue("amount"))
	if err != nil {
		h.router.renderDashboard(w, r, "Amount must be a non-negative number with at most two decimals")
		return
	}

	// The expense date is always the day it is recorded.
	_, err = h.router.storage.InsertExpense(r.Context(), userID, time.Now(), description, paymentMethod, amount)
	if err != nil {
		var validationErr *storage.ValidationError
		if errors.As(err, &validationErr) {
			h.router.renderDashboard(w, r, validationErr.Reason)
			return
		}
		h.router.logger.Error("Failed to insert expense", "error", err, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "Expense added successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *expenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveToken(w, r)
	if !ok {
		return
	}

	userID := userIDFromContext(r.Context())

	// Soft delete is idempotent: a replayed link reports success.
	if err := h.router.storage.SoftDeleteExpense(r.Context(), id, userID); err != nil {
		h.router.logger.Error("Failed to delete expense", "error", err, "expense_id", id, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "Expense deleted successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *expenseHandler) amendPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveToken(w, r)
	if !ok {
		return
	}

	userID := userIDFromContext(r.Context())

	expense, err := h.router.storage.GetExpenseByID(r.Context(), id, userID)
	if err != nil {
		var notFoundErr *storage.NotFoundError
		if errors.As(err, &notFoundErr) {
			setFlash(w, "Expense not found")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		h.router.logger.Error("Failed to get expense", "error", err, "expense_id", id, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.renderAmend(w, r, expense, "")
}

func (h *expenseHandler) amend(w http.ResponseWriter, r *http.Request) {
	id, ok := h.resolveToken(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	userID := userIDFromContext(r.Context())
	description := r.FormValue("description")
	paymentMethod := r.FormValue("payment_method")

	amount, parseErr := util.ParseMoney(r.FormValue("amount"))
	if parseErr != nil {
		h.rerenderAmend(w, r, id, userID, "Amount must be a non-negative number with at most two decimals")
		return
	}

	if err := h.router.storage.UpdateExpense(r.Context(), id, userID, description, paymentMethod, amount); err != nil {
		var notFoundErr *storage.NotFoundError
		if errors.As(err, &notFoundErr) {
			setFlash(w, "Expense not found")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		var validationErr *storage.ValidationError
		if errors.As(err, &validationErr) {
			h.rerenderAmend(w, r, id, userID, validationErr.Reason)
			return
		}

		h.router.logger.Error("Failed to amend expense", "error", err, "expense_id", id, "user_id", userID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "Expense amended successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// resolveToken turns the path token into an expense id. Forged,
// malformed or expired tokens send the user back to the dashboard.
func (h *expenseHandler) resolveToken(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := h.router.tokens.Resolve(r.PathValue("token"))
	if err != nil {
		if !errors.Is(err, token.ErrInvalidToken) {
			h.router.logger.Error("Failed to resolve action token", "error", err)
		}
		setFlash(w, "Invalid link")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return 0, false
	}
	return id, true
}

// rerenderAmend reloads the stored record so the form shows current
// values next to the validation message.
func (h *expenseHandler) rerenderAmend(w http.ResponseWriter, r *http.Request, id, userID int64, errorMsg string) {
	expense, err := h.router.storage.GetExpenseByID(r.Context(), id, userID)
	if err != nil {
		setFlash(w, "Expense not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderAmend(w, r, expense, errorMsg)
}

type amendView struct {
	viewBase
	Expense  expenseRow
	AmendURL string
}

func (h *expenseHandler) renderAmend(w http.ResponseWriter, r *http.Request, expense storage.Expense, errorMsg string) {
	amendToken := h.router.tokens.Issue(expense.ID())

	data := amendView{
		viewBase: newViewBase(r.Context(), h.router),
		Expense: expenseRow{
			ID:            expense.ID(),
			Date:          expense.Date(),
			Description:   expense.Description(),
			PaymentMethod: expense.PaymentMethod(),
			Amount:        expense.Amount(),
		},
		AmendURL: "/amend/" + amendToken,
	}
	data.Error = errorMsg

	if err := h.router.templates.Render(w, "amend.html", data); err != nil {
		h.router.logger.Error("Failed to render template", "error", err, "page", "amend.html")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
