package handler

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/user/cookie-table/internal/delivery/http/request"
	"github.com/user/cookie-table/internal/entity"
	"github.com/user/cookie-table/internal/repository"
	"github.com/user/cookie-table/internal/usecase"
	"github.com/user/cookie-table/pkg/metrics"
	"github.com/user/cookie-table/pkg/token"
)

// SessionCookieName identifies the admin session on the browser side. The
// session itself (anti-forgery token, flash notices) lives server side.
const SessionCookieName = "cookie_table_session"

//go:embed templates/*.html
var templateFS embed.FS

// Pinger is the slice of the database pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	catalog   usecase.Catalog
	sessions  repository.SessionRepository
	db        Pinger
	templates *template.Template
}

// NewHandler creates a new Handler and parses the embedded page templates.
func NewHandler(catalog usecase.Catalog, sessions repository.SessionRepository, db Pinger) (*Handler, error) {
	funcs := template.FuncMap{
		"str": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"id": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
	}
	templates, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{
		catalog:   catalog,
		sessions:  sessions,
		db:        db,
		templates: templates,
	}, nil
}

type adminPageData struct {
	Flashes            []entity.FlashNotice
	Token              string
	Cookies            []entity.CookieListing
	Categories         []entity.CookieCategory
	Edit               *entity.CookieListing
	SelectedCategoryID int64
}

// HandleAdminPage renders the cookie listing plus the add/edit form.
func (h *Handler) HandleAdminPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, csrfToken, err := h.ensureSession(w, r)
	if err != nil {
		slog.Error("Failed to establish admin session", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	flashes, err := h.sessions.PopFlashes(ctx, sessionID)
	if err != nil {
		// Losing a notice is not worth failing the page render.
		slog.Warn("Failed to read flash notices", "error", err)
	}

	view, err := h.catalog.Listing(ctx)
	if err != nil {
		slog.Error("Failed to load cookie listing", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	metrics.CatalogCookies.Set(float64(len(view.Cookies)))

	data := adminPageData{
		Flashes:    flashes,
		Token:      csrfToken,
		Cookies:    view.Cookies,
		Categories: view.Categories,
	}

	editID, err := request.ParseEditID(r)
	if err != nil {
		data.Flashes = append(data.Flashes, entity.NewFlashError("Invalid cookie ID"))
	} else if editID != nil {
		cookie, err := h.catalog.EditCookie(ctx, *editID)
		if err != nil {
			slog.Error("Failed to load cookie for editing", "id", *editID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if cookie == nil {
			// Non-fatal: surface the notice and render the empty add form.
			data.Flashes = append(data.Flashes, entity.NewFlashError("Invalid cookie ID"))
		} else {
			data.Edit = cookie
		}
	}

	if data.Edit != nil && data.Edit.CategoryID != nil {
		data.SelectedCategoryID = *data.Edit.CategoryID
	} else if len(view.Categories) > 0 {
		data.SelectedCategoryID = view.Categories[0].ID
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "admin.html", data); err != nil {
		slog.Error("Failed to render admin page", "error", err)
	}
}

// HandleSaveCookie processes the single POST endpoint the admin form
// submits to. The three mutation verbs share one request shape and are
// distinguished by field presence; every branch ends in a redirect back to
// the listing so a refresh never resubmits.
func (h *Handler) HandleSaveCookie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		http.Error(w, "CSRF check failed, please try again", http.StatusForbidden)
		return
	}
	sessionID := sessionCookie.Value

	form, err := request.ParseSaveCookieForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	stored, err := h.sessions.Token(ctx, sessionID)
	if err != nil {
		slog.Error("Failed to load anti-forgery token", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(form.Token)) != 1 {
		http.Error(w, "CSRF check failed, please try again", http.StatusForbidden)
		return
	}

	if form.IsDelete() {
		h.deleteCookie(ctx, w, r, sessionID, *form.ID)
		return
	}
	h.saveCookie(ctx, w, r, sessionID, form)
}

func (h *Handler) deleteCookie(ctx context.Context, w http.ResponseWriter, r *http.Request, sessionID string, id int64) {
	deleted, err := h.catalog.DeleteCookie(ctx, id)
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashError("Invalid cookie ID provided"))
	case err != nil:
		slog.Error("Failed to delete cookie", "id", id, "error", err)
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashError("Unable to process your request, please try again"))
	default:
		metrics.CatalogWritesTotal.WithLabelValues("cookie", "delete").Inc()
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashSuccess(fmt.Sprintf("Cookie deleted: %s", deleted.Name)))
	}
}

func (h *Handler) saveCookie(ctx context.Context, w http.ResponseWriter, r *http.Request, sessionID string, form *request.SaveCookieForm) {
	input := usecase.SaveCookieInput{
		ID:          form.ID,
		Name:        form.Name,
		Provider:    form.Provider,
		Duration:    form.Duration,
		CategoryID:  form.CategoryID,
		Description: form.Description,
	}

	saved, err := h.catalog.SaveCookie(ctx, input)
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashError("Missing required parameters"))
	case errors.Is(err, repository.ErrInvalidID):
		// A zero or negative id is a malformed request, not a user slip;
		// abort hard instead of redirecting.
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		slog.Error("Failed to save cookie", "name", form.Name, "error", err)
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashError("Unable to process your request, please try again"))
	default:
		operation := "update"
		if form.ID == nil {
			operation = "create"
		}
		metrics.CatalogWritesTotal.WithLabelValues("cookie", operation).Inc()
		h.redirectWithFlash(w, r, sessionID, entity.NewFlashSuccess(fmt.Sprintf("Cookie saved: %s", saved.Name)))
	}
}

// HandleConsentTable renders the public, read-only consent table.
func (h *Handler) HandleConsentTable(w http.ResponseWriter, r *http.Request) {
	view, err := h.catalog.Listing(r.Context())
	if err != nil {
		slog.Error("Failed to load cookie listing", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "consent.html", view); err != nil {
		slog.Error("Failed to render consent table", "error", err)
	}
}

// HandleHealthCheck reports service health, including database reachability.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ensureSession resolves the browser session, creating the session cookie
// and a fresh anti-forgery token on first visit or after expiry.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) (sessionID, csrfToken string, err error) {
	if cookie, cookieErr := r.Cookie(SessionCookieName); cookieErr == nil && cookie.Value != "" {
		sessionID = cookie.Value
		csrfToken, err = h.sessions.Token(r.Context(), sessionID)
		if err != nil {
			return "", "", err
		}
		if csrfToken != "" {
			return sessionID, csrfToken, nil
		}
		// Session expired server side; mint a new token under the same id.
	} else {
		if sessionID, err = token.New(); err != nil {
			return "", "", err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if csrfToken, err = token.New(); err != nil {
		return "", "", err
	}
	if err = h.sessions.SaveToken(r.Context(), sessionID, csrfToken); err != nil {
		return "", "", err
	}
	return sessionID, csrfToken, nil
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, sessionID string, notice entity.FlashNotice) {
	if err := h.sessions.PushFlash(r.Context(), sessionID, notice); err != nil {
		slog.Warn("Failed to store flash notice", "error", err)
	}
	http.Redirect(w, r, "/cookies/", http.StatusSeeOther)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
