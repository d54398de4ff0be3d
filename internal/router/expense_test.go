package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"expensetrack/internal/storage"
	"expensetrack/internal/testutil"
)

func authedRequest(
	t *testing.T,
	s storage.Storage,
	user storage.User,
	method, path string,
	form url.Values,
) *http.Request {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	testutil.SetupAuthCookie(t, s, req, user, sessionCookieName)
	return req
}

func TestAddExpense(t *testing.T) {
	handler, _, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	formData := url.Values{}
	formData.Set("description", "Lunch")
	formData.Set("payment_method", "cash")
	formData.Set("amount", "12.50")

	req := authedRequest(t, s, user, http.MethodPost, "/add", formData)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("Expected status SeeOther; got %v", resp.Status)
	}
	if location := resp.Header.Get("Location"); location != "/" {
		t.Errorf("Expected redirect to '/'; got '%s'", location)
	}

	today := time.Now()
	expenses, err := s.ListExpensesInRange(context.Background(), user.ID(), today, today, false)
	if err != nil {
		t.Fatalf("Failed to list expenses: %v", err)
	}

	if len(expenses) != 1 {
		t.Fatalf("Expected 1 expense dated today; got %d", len(expenses))
	}
	if expenses[0].Description() != "Lunch" {
		t.Errorf("Expected description 'Lunch'; got '%s'", expenses[0].Description())
	}
	if expenses[0].PaymentMethod() != "cash" {
		t.Errorf("Expected payment method 'cash'; got '%s'", expenses[0].PaymentMethod())
	}
	if expenses[0].Amount() != 1250 {
		t.Errorf("Expected amount 1250 cents; got %d", expenses[0].Amount())
	}
}

func TestAddExpenseValidation(t *testing.T) {
	handler, _, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	tests := []struct {
		name     string
		form     url.Values
		expected string
	}{
		{
			name:     "bad amount",
			form:     url.Values{"description": {"Lunch"}, "amount": {"abc"}},
			expected: "Amount must be a non-negative number",
		},
		{
			name:     "negative amount",
			form:     url.Values{"description": {"Lunch"}, "amount": {"-5.00"}},
			expected: "Amount must be a non-negative number",
		},
		{
			name:     "empty description",
			form:     url.Values{"description": {""}, "amount": {"5.00"}},
			expected: "must not be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := authedRequest(t, s, user, http.MethodPost, "/add", tc.form)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			resp := w.Result()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("Expected status OK; got %v", resp.Status)
			}
			if !strings.Contains(bodyString(t, resp), tc.expected) {
				t.Errorf("Expected response to contain %q", tc.expected)
			}

			expenses, err := s.ListExpensesInRange(
				context.Background(), user.ID(), time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1), true)
			if err != nil {
				t.Fatalf("Failed to list expenses: %v", err)
			}
			if len(expenses) != 0 {
				t.Errorf("Expected no expense to be recorded; got %d", len(expenses))
			}
		})
	}
}

func TestDeleteExpenseIsIdempotent(t *testing.T) {
	handler, r, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	expense, err := s.InsertExpense(context.Background(), user.ID(), time.Now(), "Lunch", "", 500)
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}

	path := "/delete/" + r.tokens.Issue(expense.ID())

	// The signed link can be replayed; both calls report success.
	for i := 0; i < 2; i++ {
		req := authedRequest(t, s, user, http.MethodPost, path, url.Values{})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("Delete attempt %d: expected status SeeOther; got %v", i+1, resp.Status)
		}
		if location := resp.Header.Get("Location"); location != "/" {
			t.Errorf("Delete attempt %d: expected redirect to '/'; got '%s'", i+1, location)
		}
	}

	_, err = s.GetExpenseByID(context.Background(), expense.ID(), user.ID())
	var notFoundErr *storage.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("Expected deleted expense lookup to return NotFoundError; got %v", err)
	}
}

func TestDeleteExpenseInvalidToken(t *testing.T) {
	handler, _, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	req := authedRequest(t, s, user, http.MethodPost, "/delete/not-a-real-token", url.Values{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("Expected status SeeOther; got %v", resp.Status)
	}
	if location := resp.Header.Get("Location"); location != "/" {
		t.Errorf("Expected redirect to '/'; got '%s'", location)
	}

	flash := ""
	for _, cookie := range resp.Cookies() {
		if cookie.Name == flashCookieName {
			flash = cookie.Value
		}
	}
	if !strings.Contains(flash, "Invalid") {
		t.Errorf("Expected 'Invalid link' flash; got %q", flash)
	}
}

func TestAmendExpensePage(t *testing.T) {
	handler, r, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	expense, err := s.InsertExpense(context.Background(), user.ID(), time.Now(), "Groceries", "card", 2599)
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}

	req := authedRequest(t, s, user, http.MethodGet, "/amend/"+r.tokens.Issue(expense.ID()), nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK; got %v", resp.Status)
	}

	body := bodyString(t, resp)
	if !strings.Contains(body, "Groceries") {
		t.Error("Expected form to contain the current description")
	}
	if !strings.Contains(body, "25.99") {
		t.Error("Expected form to contain the current amount")
	}
}

func TestAmendExpense(t *testing.T) {
	handler, r, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	expense, err := s.InsertExpense(context.Background(), user.ID(), date, "Groceries", "card", 2599)
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}

	formData := url.Values{}
	formData.Set("description", "TB")
	formData.Set("payment_method", "cash")
	formData.Set("amount", "30.00")

	req := authedRequest(t, s, user, http.MethodPost, "/amend/"+r.tokens.Issue(expense.ID()), formData)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("Expected status SeeOther; got %v", resp.Status)
	}

	amended, err := s.GetExpenseByID(context.Background(), expense.ID(), user.ID())
	if err != nil {
		t.Fatalf("Failed to get amended expense: %v", err)
	}

	if amended.Description() != "TB" {
		t.Errorf("Expected description 'TB'; got '%s'", amended.Description())
	}
	if amended.PaymentMethod() != "cash" {
		t.Errorf("Expected payment method 'cash'; got '%s'", amended.PaymentMethod())
	}
	if amended.Amount() != 3000 {
		t.Errorf("Expected amount 3000 cents; got %d", amended.Amount())
	}
	if !amended.Date().Equal(date) {
		t.Error("Amend must not change the expense date")
	}
}

func TestAmendDeletedExpense(t *testing.T) {
	handler, r, s := newTestRouter(t)
	user := testutil.CreateTestUser(t, s, "user", "hash")

	expense, err := s.InsertExpense(context.Background(), user.ID(), time.Now(), "Groceries", "", 2599)
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}
	if err = s.SoftDeleteExpense(context.Background(), expense.ID(), user.ID()); err != nil {
		t.Fatalf("Failed to delete expense: %v", err)
	}

	formData := url.Values{}
	formData.Set("description", "TB")
	formData.Set("amount", "30.00")

	req := authedRequest(t, s, user, http.MethodPost, "/amend/"+r.tokens.Issue(expense.ID()), formData)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("Expected status SeeOther; got %v", resp.Status)
	}
	if location := resp.Header.Get("Location"); location != "/" {
		t.Errorf("Expected redirect to '/'; got '%s'", location)
	}
}

func TestAmendOtherUsersExpense(t *testing.T) {
	handler, r, s := newTestRouter(t)
	owner := testutil.CreateTestUser(t, s, "owner", "hash")
	intruder := testutil.CreateTestUser(t, s, "intruder", "hash")

	expense, err := s.InsertExpense(context.Background(), owner.ID(), time.Now(), "Groceries", "", 2599)
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}

	formData := url.Values{}
	formData.Set("description", "hijacked")
	formData.Set("amount", "1.00")

	req := authedRequest(t, s, intruder, http.MethodPost, "/amend/"+r.tokens.Issue(expense.ID()), formData)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("Expected status SeeOther; got %v", resp.Status)
	}

	untouched, err := s.GetExpenseByID(context.Background(), expense.ID(), owner.ID())
	if err != nil {
		t.Fatalf("Failed to get expense: %v", err)
	}
	if untouched.Description() != "Groceries" {
		t.Error("Expected another user's amend attempt to leave the record untouched")
	}
}
