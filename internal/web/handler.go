package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medsynq/medsynq/internal/domain/patient"
	"github.com/medsynq/medsynq/internal/domain/tenant"
	"github.com/medsynq/medsynq/internal/platform/session"
)

// Form error messages shown on re-rendered views.
const (
	msgAllFieldsRequired = "All fields are required."
	msgDuplicateName     = "Organisation name already exists."
	msgTenantNotFound    = "Organisation not found."
	msgInvalidLogin      = "Invalid credentials."
	msgNameRequired      = "Name is required."
)

// Handler serves the HTML surface: registration, login, the per-tenant
// patient dashboard and logout. It owns no state of its own; sessions and
// persistence are injected services.
type Handler struct {
	sessions session.Registry
	accounts *tenant.Service
	patients *patient.Service
	renderer Renderer
}

func NewHandler(sessions session.Registry, accounts *tenant.Service, patients *patient.Service, renderer Renderer) *Handler {
	return &Handler{
		sessions: sessions,
		accounts: accounts,
		patients: patients,
		renderer: renderer,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// An unmatched (method, path) pair is a not-found error, not a 405.
	e.HTTPErrorHandler = notFoundNormalizer(e)

	e.GET("/", h.Index)
	e.GET("/register-tenant", h.RegisterTenantForm)
	e.POST("/register-tenant", h.RegisterTenant)
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.GET("/dashboard", h.Dashboard)
	e.GET("/patients/new", h.NewPatientForm)
	e.POST("/patients/new", h.CreatePatient)
	e.GET("/logout", h.Logout)
}

// currentSession resolves the session_id cookie to a live session. Missing,
// malformed and unknown tokens all resolve to "not logged in".
func (h *Handler) currentSession(c echo.Context) (session.Session, bool) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}, false
	}
	return h.sessions.Lookup(cookie.Value)
}

func (h *Handler) render(c echo.Context, view string, data map[string]interface{}) error {
	html, err := h.renderer.Render(view, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render view")
	}
	return c.HTML(http.StatusOK, html)
}

// viewData builds the context map every view receives: the current session
// (or nil) under "user" and an optional error message under "error".
func viewData(sess *session.Session, errMsg string) map[string]interface{} {
	data := map[string]interface{}{
		"user":  nil,
		"error": nil,
	}
	if sess != nil {
		data["user"] = sess
	}
	if errMsg != "" {
		data["error"] = errMsg
	}
	return data
}

func notFoundNormalizer(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusMethodNotAllowed {
			err = echo.ErrNotFound
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func (h *Handler) sessionOrNil(c echo.Context) *session.Session {
	if sess, ok := h.currentSession(c); ok {
		return &sess
	}
	return nil
}

func (h *Handler) Index(c echo.Context) error {
	return h.render(c, "index.html", viewData(h.sessionOrNil(c), ""))
}

func (h *Handler) RegisterTenantForm(c echo.Context) error {
	return h.render(c, "register_tenant.html", viewData(h.sessionOrNil(c), ""))
}

func (h *Handler) RegisterTenant(c echo.Context) error {
	tenantName := strings.TrimSpace(c.FormValue("tenantName"))
	adminName := strings.TrimSpace(c.FormValue("adminName"))
	adminEmail := strings.TrimSpace(c.FormValue("adminEmail"))
	adminPassword := c.FormValue("adminPassword")

	if tenantName == "" || adminName == "" || adminEmail == "" || adminPassword == "" {
		return h.render(c, "register_tenant.html", viewData(nil, msgAllFieldsRequired))
	}

	t, u, err := h.accounts.Register(c.Request().Context(), tenantName, adminName, adminEmail, adminPassword)
	if errors.Is(err, tenant.ErrDuplicateName) {
		return h.render(c, "register_tenant.html", viewData(nil, msgDuplicateName))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}

	token := h.sessions.Create(session.Session{
		UserID:     u.ID,
		UserName:   u.Name,
		TenantID:   t.ID,
		TenantName: t.Name,
	})
	setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) LoginForm(c echo.Context) error {
	return h.render(c, "login.html", viewData(h.sessionOrNil(c), ""))
}

func (h *Handler) Login(c echo.Context) error {
	tenantName := strings.TrimSpace(c.FormValue("tenantName"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if tenantName == "" || email == "" || password == "" {
		return h.render(c, "login.html", viewData(nil, msgAllFieldsRequired))
	}

	t, u, err := h.accounts.Authenticate(c.Request().Context(), tenantName, email, password)
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		return h.render(c, "login.html", viewData(nil, msgTenantNotFound))
	case errors.Is(err, tenant.ErrInvalidCredentials):
		return h.render(c, "login.html", viewData(nil, msgInvalidLogin))
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	token := h.sessions.Create(session.Session{
		UserID:     u.ID,
		UserName:   u.Name,
		TenantID:   t.ID,
		TenantName: t.Name,
	})
	setSessionCookie(c, token)
	return c.Redirect(http.StatusFound, "/dashboard")
}

// patientRow is the flattened view of a patient handed to the dashboard
// template, with NULL dob/notes already surfaced as empty strings.
type patientRow struct {
	Name        string
	DateOfBirth string
	Notes       string
}

func (h *Handler) Dashboard(c echo.Context) error {
	sess, ok := h.currentSession(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	items, err := h.patients.List(c.Request().Context(), sess.TenantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patients")
	}

	rows := make([]patientRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, patientRow{
			Name:        p.Name,
			DateOfBirth: p.DOB(),
			Notes:       p.NoteText(),
		})
	}

	data := viewData(&sess, "")
	data["patients"] = rows
	return h.render(c, "dashboard.html", data)
}

func (h *Handler) NewPatientForm(c echo.Context) error {
	sess, ok := h.currentSession(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return h.render(c, "new_patient.html", viewData(&sess, ""))
}

func (h *Handler) CreatePatient(c echo.Context) error {
	sess, ok := h.currentSession(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	dob := c.FormValue("date_of_birth")
	notes := c.FormValue("notes")

	if name == "" {
		return h.render(c, "new_patient.html", viewData(&sess, msgNameRequired))
	}

	// The tenant always comes from the session, never from the request.
	if _, err := h.patients.Create(c.Request().Context(), sess.TenantID, name, dob, notes); err != nil {
		if errors.Is(err, patient.ErrNameRequired) {
			return h.render(c, "new_patient.html", viewData(&sess, msgNameRequired))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create patient")
	}

	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) Logout(c echo.Context) error {
	if sess, ok := h.currentSession(c); ok {
		h.sessions.DestroyByUser(sess.UserID)
	}
	clearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}
