package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
)

const (
	sessionCookie = "fintrack_session"
	langCookie    = "fintrack_lang"
)

// Toast is a one-shot notification. The slot holds at most one toast; a new
// one replaces whatever was pending.
type Toast struct {
	Kind    string // "success" or "error"
	Message string
}

// SelectedUser is the user whose transactions and goals the session views.
type SelectedUser struct {
	ID   int64
	Name string
}

// PendingDelete is a staged deletion awaiting confirmation. A session holds
// at most one; staging another replaces it.
type PendingDelete struct {
	Entity   string // "user", "transaction" or "goal"
	ID       int64
	Prompt   string // localized at staging time
	ReturnTo string
}

// Session is per-browser state. It is volatile: a server restart clears
// selection and any staged confirmation, only the language cookie persists.
type Session struct {
	mu       sync.Mutex
	flash    *Toast
	selected *SelectedUser
	pending  *PendingDelete
}

func (s *Session) SetFlash(kind, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Toast{Kind: kind, Message: message}
}

// TakeFlash returns and clears the pending toast.
func (s *Session) TakeFlash() *Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = nil
	return f
}

func (s *Session) Select(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &SelectedUser{ID: id, Name: name}
}

// RenameSelected updates the cached name if the given user is selected.
func (s *Session) RenameSelected(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == id {
		s.selected.Name = name
	}
}

// DeselectIf clears the selection if it points at the given user.
func (s *Session) DeselectIf(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
}

func (s *Session) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *Session) Selected() *SelectedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	sel := *s.selected
	return &sel
}

func (s *Session) StageDelete(p PendingDelete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &p
}

// TakePending returns and clears the staged deletion.
func (s *Session) TakePending() *PendingDelete {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p
}

func (s *Session) Pending() *PendingDelete {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil
	}
	p := *s.pending
	return &p
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*Session)}
}

// session returns the browser's session, creating one and setting the cookie
// when none exists.
func (m *sessionManager) session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		m.mu.Lock()
		if s, ok := m.sessions[c.Value]; ok {
			m.mu.Unlock()
			return s
		}
		m.mu.Unlock()
	}

	id := uuid.NewString()
	s := &Session{}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}
