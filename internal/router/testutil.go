package router

import (
	"net/http"
	"testing"
	"time"

	"expensetrack/internal/storage"
	"expensetrack/internal/testutil"
	"expensetrack/internal/token"
)

const testIdleTimeout = 15 * time.Minute

func testTokenIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", time.Hour)
}

// newTestRouter builds a handler backed by an in-memory store. The
// private router is returned so tests can issue action tokens.
func newTestRouter(t *testing.T) (http.Handler, *router, storage.Storage) {
	t.Helper()

	log := testutil.TestLogger(t)
	s := testutil.SetupTestStorage(t)

	handler, r := New(s, testTokenIssuer(), testIdleTimeout, log)
	return handler, r, s
}
