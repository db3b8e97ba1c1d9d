// Package web serves the server-rendered frontend. It talks to the REST API
// through the typed client and keeps per-browser state (selection, staged
// confirmations, one-shot toasts) in volatile sessions.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"fintrack/internal/client"
	"fintrack/internal/i18n"
	"fintrack/internal/log"
	appweb "fintrack/web"
)

type Server struct {
	http.Server
	api      *client.Client
	sessions *sessionManager
	tmpl     *template.Template
	logger   *log.Logger
}

func NewServer(addr string, api *client.Client, logger *log.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		api:      api,
		sessions: newSessionManager(),
		tmpl:     tmpl,
		logger:   logger.WithComponent(log.ComponentWeb),
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /users", s.handleUsers)
	mux.HandleFunc("GET /users/new", s.handleUserForm)
	mux.HandleFunc("GET /users/{id}/edit", s.handleUserForm)
	mux.HandleFunc("POST /users/save", s.handleUserSave)
	mux.HandleFunc("POST /users/{id}/delete", s.handleUserDelete)
	mux.HandleFunc("POST /users/{id}/select", s.handleUserSelect)
	mux.HandleFunc("POST /users/deselect", s.handleUserDeselect)

	mux.HandleFunc("GET /transactions", s.handleTransactions)
	mux.HandleFunc("GET /transactions/new", s.handleTransactionForm)
	mux.HandleFunc("GET /transactions/{id}/edit", s.handleTransactionForm)
	mux.HandleFunc("POST /transactions/save", s.handleTransactionSave)
	mux.HandleFunc("POST /transactions/{id}/delete", s.handleTransactionDelete)

	mux.HandleFunc("GET /goals", s.handleGoals)
	mux.HandleFunc("GET /goals/new", s.handleGoalForm)
	mux.HandleFunc("GET /goals/{id}/edit", s.handleGoalForm)
	mux.HandleFunc("POST /goals/save", s.handleGoalSave)
	mux.HandleFunc("POST /goals/{id}/delete", s.handleGoalDelete)

	mux.HandleFunc("POST /confirm/accept", s.handleConfirmAccept)
	mux.HandleFunc("POST /confirm/cancel", s.handleConfirmCancel)

	mux.HandleFunc("POST /lang/{code}", s.handleSetLang)

	return s, nil
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.Server.Handler
}

// lang reads the persistent language cookie, falling back to the default.
func (s *Server) lang(r *http.Request) i18n.Lang {
	if c, err := r.Cookie(langCookie); err == nil {
		return i18n.Match(c.Value)
	}
	return i18n.Default
}

func (s *Server) handleSetLang(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Match(r.PathValue("code"))
	http.SetCookie(w, &http.Cookie{
		Name:     langCookie,
		Value:    string(lang),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// returnTo picks the redirect target after a non-rendering POST.
func returnTo(r *http.Request) string {
	if v := r.FormValue("return_to"); v != "" && v[0] == '/' {
		return v
	}
	return "/users"
}

// localizer gives templates access to the active language's messages and
// formatting without per-request template funcs.
type localizer struct {
	lang i18n.Lang
}

func (l localizer) T(key string) string { return i18n.T(l.lang, key) }

func (l localizer) Lang() string { return string(l.lang) }

// page is the data common to every rendered view.
type page struct {
	L        localizer
	Active   string // current tab
	Selected *SelectedUser
	Flash    *Toast
	Confirm  *PendingDelete
	Path     string
}

func (s *Server) newPage(r *http.Request, sess *Session, active string) page {
	return page{
		L:        localizer{lang: s.lang(r)},
		Active:   active,
		Selected: sess.Selected(),
		Flash:    sess.TakeFlash(),
		Confirm:  sess.Pending(),
		Path:     r.URL.Path,
	}
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("Template execution failed", "template", name, "error", err)
	}
}

// notifier turns client-call failures into localized error toasts on the
// session, in the language active when the request started.
type notifier struct {
	sess *Session
	lang i18n.Lang
}

func (n notifier) NotifyError(err error) {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		n.sess.SetFlash("error", apiErr.Message)
	case errors.As(err, &apiErr):
		n.sess.SetFlash("error", i18n.Tf(n.lang, "toast_request_failed", map[string]string{
			"status": fmt.Sprintf("%d", apiErr.Status),
		}))
	default:
		n.sess.SetFlash("error", i18n.T(n.lang, "toast_network_error"))
	}
}

// apiCtx wires the session's notifier into the request context used for
// client calls.
func (s *Server) apiCtx(r *http.Request, sess *Session) (context.Context, i18n.Lang) {
	l := s.lang(r)
	return client.WithNotifier(r.Context(), notifier{sess: sess, lang: l}), l
}
