package web

import (
	"net/http"

	"fintrack/internal/i18n"
)

// handleConfirmAccept performs the staged deletion, if any.
func (s *Server) handleConfirmAccept(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	p := sess.TakePending()
	if p == nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	ctx, lang := s.apiCtx(r, sess)
	var err error
	switch p.Entity {
	case "user":
		err = s.api.DeleteUser(ctx, p.ID)
	case "transaction":
		err = s.api.DeleteTransaction(ctx, p.ID)
	case "goal":
		err = s.api.DeleteGoal(ctx, p.ID)
	}

	if err == nil {
		switch p.Entity {
		case "user":
			// A deleted user can no longer be the selection.
			sess.DeselectIf(p.ID)
			sess.SetFlash("success", i18n.T(lang, "toast_user_deleted"))
		case "transaction":
			sess.SetFlash("success", i18n.T(lang, "toast_transaction_deleted"))
		case "goal":
			sess.SetFlash("success", i18n.T(lang, "toast_goal_deleted"))
		}
	}

	http.Redirect(w, r, p.ReturnTo, http.StatusSeeOther)
}

func (s *Server) handleConfirmCancel(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	target := "/users"
	if p := sess.TakePending(); p != nil {
		target = p.ReturnTo
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
