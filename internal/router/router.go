package router

import (
	"net/http"
	"time"

	"expensetrack/internal/logger"
	"expensetrack/internal/storage"
	"expensetrack/internal/token"
)

const (
	sessionCookieName = "session_id"
	minPasswordLength = 8
	sessionIDLength   = 32
)

type router struct {
	storage     storage.Storage
	logger      *logger.Logger
	templates   templates
	tokens      *token.Issuer
	idleTimeout time.Duration
}

type routeRegisterer interface {
	RegisterRoutes(mux *http.ServeMux)
}

//nolint:revive // We return the private router struct to allow testing some internal functions
func New(
	stor storage.Storage,
	tokens *token.Issuer,
	idleTimeout time.Duration,
	log *logger.Logger,
) (http.Handler, *router) {
	r := &router{
		storage:     stor,
		logger:      log,
		tokens:      tokens,
		idleTimeout: idleTimeout,
	}

	if err := r.parseTemplates(); err != nil {
		log.Fatal("error parsing templates", "error", err.Error())
	}

	mux := &http.ServeMux{}

	handlers := []routeRegisterer{
		&authHandler{router: r},
		&expenseHandler{router: r},
		&homeHandler{router: r},
		&historyHandler{router: r},
		&exportHandler{router: r},
	}

	for _, h := range handlers {
		h.RegisterRoutes(mux)
	}

	handler := loggingMiddleware(log, mux)
	handler = xFrameDenyHeaderMiddleware(handler)

	return handler, r
}
