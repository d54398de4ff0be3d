package router

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"expensetrack/internal/storage"
	"expensetrack/internal/util"
)

type authHandler struct {
	router *router
}

func (a *authHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /register", a.registerPage)
	mux.HandleFunc("POST /register", a.register)
	mux.HandleFunc("GET /login", a.loginPage)
	mux.HandleFunc("POST /login", a.login)
	mux.HandleFunc("POST /logout", a.logout)
}

func (a *authHandler) registerPage(w http.ResponseWriter, r *http.Request) {
	data := viewBase{
		Flash: popFlash(w, r),
	}

	a.render(w, "register.html", data)
}

func (a *authHandler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	confirmPassword := r.FormValue("confirm_password")

	if username == "" || password == "" {
		a.renderRegisterError(w, "Username and password are required")
		return
	}

	if password != confirmPassword {
		a.renderRegisterError(w, "Passwords do not match")
		return
	}

	if len(password) < minPasswordLength {
		a.renderRegisterError(w, "Password must be at least 8 characters long")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		a.router.logger.Error("Failed to hash password", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	_, err = a.router.storage.CreateUser(r.Context(), username, string(hashedPassword))
	if err != nil {
		a.router.logger.Error("Failed to create user", "error", err, "username", username)
		a.renderRegisterError(w, "Username already exists or database error occurred")
		return
	}

	setFlash(w, "Registration successful! Please log in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *authHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	data := viewBase{
		Flash: popFlash(w, r),
	}

	a.render(w, "login.html", data)
}

func (a *authHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		a.renderLoginError(w, "Username and password are required")
		return
	}

	user, err := a.router.storage.GetUserByUsername(r.Context(), username)
	if err != nil {
		var notFoundErr *storage.NotFoundError
		if errors.As(err, &notFoundErr) {
			a.renderLoginError(w, "Invalid username or password")
			return
		}
		a.router.logger.Error("Failed to get user", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(password)); err != nil {
		a.renderLoginError(w, "Invalid username or password")
		return
	}

	sessionID := util.GenerateRandomID(sessionIDLength)

	if _, err = a.router.storage.CreateSession(r.Context(), user.ID(), sessionID); err != nil {
		a.router.logger.Error("Failed to create session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, sessionID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil {
		if err = a.router.storage.DeleteSession(r.Context(), cookie.Value); err != nil {
			a.router.logger.Error("Failed to delete session", "error", err)
		}
	}

	clearSessionCookie(w)
	setFlash(w, "Logged out successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *authHandler) renderRegisterError(w http.ResponseWriter, errorMsg string) {
	a.render(w, "register.html", viewBase{Error: errorMsg})
}

func (a *authHandler) renderLoginError(w http.ResponseWriter, errorMsg string) {
	a.render(w, "login.html", viewBase{Error: errorMsg})
}

func (a *authHandler) render(w http.ResponseWriter, page string, data any) {
	if err := a.router.templates.Render(w, page, data); err != nil {
		a.router.logger.Error("Failed to render template", "error", err, "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
