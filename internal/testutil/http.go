package testutil

import (
	"context"
	"net/http"
	"testing"

	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

// SetupAuthCookie creates a session for the user and attaches the
// matching cookie to the request.
func SetupAuthCookie(
	t *testing.T,
	s storage.Storage,
	req *http.Request,
	user storage.User,
	cookieKey string,
) {
	t.Helper()

	const idLength = 16
	sessionID := util.GenerateRandomID(idLength)
	_, err := s.CreateSession(context.Background(), user.ID(), sessionID)
	if err != nil {
		t.Fatal("failed to create session")
	}
	cookie := &http.Cookie{
		Name:     cookieKey,
		Value:    sessionID,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
	}
	req.Header.Set("Cookie", cookie.String())
}

// CreateTestUser registers a user directly against the store.
func CreateTestUser(t *testing.T, s storage.Storage, username, passwordHash string) storage.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), username, passwordHash)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
