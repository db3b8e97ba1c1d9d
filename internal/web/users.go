package web

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/i18n"
)

type userRow struct {
	ID       int64
	Name     string
	Current  string
	Inputs   string
	Outputs  string
	Selected bool
}

type userForm struct {
	Edit    bool
	ID      int64
	Name    string
	Current string
	Inputs  string
	Outputs string
}

type usersPage struct {
	page
	Rows       []userRow
	LoadFailed bool
	Form       *userForm
}

func (s *Server) usersPageData(r *http.Request, sess *Session) usersPage {
	data := usersPage{page: s.newPage(r, sess, "users")}
	ctx, lang := s.apiCtx(r, sess)

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		data.LoadFailed = true
		// TakeFlash already ran; surface the load failure directly.
		data.Flash = sess.TakeFlash()
		return data
	}

	sel := sess.Selected()
	for _, u := range users {
		data.Rows = append(data.Rows, userRow{
			ID:       u.ID,
			Name:     u.UserName,
			Current:  i18n.FormatCents(lang, u.CurrentAmount),
			Inputs:   i18n.FormatCents(lang, u.MonthlyInputs),
			Outputs:  i18n.FormatCents(lang, u.MonthlyOutputs),
			Selected: sel != nil && sel.ID == u.ID,
		})
	}
	return data
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	s.render(w, "users.html", s.usersPageData(r, sess))
}

func (s *Server) handleUserForm(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	data := s.usersPageData(r, sess)

	if idStr := r.PathValue("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Redirect(w, r, "/users", http.StatusSeeOther)
			return
		}
		ctx, _ := s.apiCtx(r, sess)
		u, err := s.api.GetUser(ctx, id)
		if err != nil {
			http.Redirect(w, r, "/users", http.StatusSeeOther)
			return
		}
		data.Form = &userForm{
			Edit:    true,
			ID:      u.ID,
			Name:    u.UserName,
			Current: u.CurrentAmount.Plain(),
			Inputs:  u.MonthlyInputs.Plain(),
			Outputs: u.MonthlyOutputs.Plain(),
		}
	} else {
		data.Form = &userForm{Current: "0", Inputs: "0", Outputs: "0"}
	}

	s.render(w, "users.html", data)
}

// parseMoneyField parses one amount form field, flashing a localized error
// and reporting failure when the input is malformed.
func (s *Server) parseMoneyField(sess *Session, lang i18n.Lang, value string) (core.Money, bool) {
	if strings.TrimSpace(value) == "" {
		return 0, true
	}
	m, err := i18n.ParseAmount(lang, value)
	if err != nil {
		sess.SetFlash("error", i18n.T(lang, "toast_invalid_amount"))
		return 0, false
	}
	return m, true
}

func (s *Server) handleUserSave(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	ctx, lang := s.apiCtx(r, sess)

	idStr := r.FormValue("id")
	formURL := "/users/new"
	if idStr != "" {
		formURL = "/users/" + idStr + "/edit"
	}

	name := strings.TrimSpace(r.FormValue("user_name"))
	current, ok := s.parseMoneyField(sess, lang, r.FormValue("current_amount"))
	if !ok {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}
	inputs, ok := s.parseMoneyField(sess, lang, r.FormValue("monthly_inputs"))
	if !ok {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}
	outputs, ok := s.parseMoneyField(sess, lang, r.FormValue("monthly_outputs"))
	if !ok {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	if idStr == "" {
		_, err := s.api.CreateUser(ctx, core.NewUser{
			UserName:       name,
			CurrentAmount:  current,
			MonthlyInputs:  inputs,
			MonthlyOutputs: outputs,
		})
		if err != nil {
			http.Redirect(w, r, formURL, http.StatusSeeOther)
			return
		}
		sess.SetFlash("success", i18n.T(lang, "toast_user_created"))
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	u, err := s.api.UpdateUser(ctx, id, core.UserPatch{
		UserName:       &name,
		CurrentAmount:  &current,
		MonthlyInputs:  &inputs,
		MonthlyOutputs: &outputs,
	})
	if err != nil {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	// Keep a selection pointing at this user consistent with the new name.
	sess.RenameSelected(u.ID, u.UserName)
	sess.SetFlash("success", i18n.T(lang, "toast_user_updated"))
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	sess.StageDelete(PendingDelete{
		Entity: "user",
		ID:     id,
		Prompt: i18n.Tf(lang, "confirm_delete_user", map[string]string{
			"name": r.FormValue("name"),
			"id":   strconv.FormatInt(id, 10),
		}),
		ReturnTo: "/users",
	})
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (s *Server) handleUserSelect(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	sess.Select(id, name)
	sess.SetFlash("success", i18n.Tf(lang, "toast_user_selected", map[string]string{"name": name}))
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

func (s *Server) handleUserDeselect(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	sess.Deselect()
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}
