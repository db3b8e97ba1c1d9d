package web

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/i18n"
)

type goalRow struct {
	ID       int64
	Name     string
	Price    string
	Pros     string
	Cons     string
	Deadline string
}

type goalForm struct {
	Edit        bool
	ID          int64
	Name        string
	Description string
	Price       string
	Pros        string
	Cons        string
	Deadline    string // raw YYYY-MM-DD for the date input
}

type goalsPage struct {
	page
	NoSelection bool
	Rows        []goalRow
	LoadFailed  bool
	Form        *goalForm
}

func (s *Server) goalsPageData(r *http.Request, sess *Session) goalsPage {
	data := goalsPage{page: s.newPage(r, sess, "goals")}

	sel := sess.Selected()
	if sel == nil {
		data.NoSelection = true
		return data
	}

	ctx, lang := s.apiCtx(r, sess)
	goals, err := s.api.ListGoals(ctx, sel.ID)
	if err != nil {
		data.LoadFailed = true
		data.Flash = sess.TakeFlash()
		return data
	}

	for _, g := range goals {
		data.Rows = append(data.Rows, goalRow{
			ID:       g.ID,
			Name:     g.Name,
			Price:    i18n.FormatCents(lang, g.Price),
			Pros:     g.Pros,
			Cons:     g.Cons,
			Deadline: i18n.FormatDate(lang, g.Deadline),
		})
	}
	return data
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	s.render(w, "goals.html", s.goalsPageData(r, sess))
}

func (s *Server) handleGoalForm(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	idStr := r.PathValue("id")
	if idStr == "" && sess.Selected() == nil {
		sess.SetFlash("error", i18n.T(lang, "toast_select_user"))
		http.Redirect(w, r, "/goals", http.StatusSeeOther)
		return
	}

	data := s.goalsPageData(r, sess)
	if idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Redirect(w, r, "/goals", http.StatusSeeOther)
			return
		}
		ctx, _ := s.apiCtx(r, sess)
		g, err := s.api.GetGoal(ctx, id)
		if err != nil {
			http.Redirect(w, r, "/goals", http.StatusSeeOther)
			return
		}
		data.Form = &goalForm{
			Edit:        true,
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Price:       g.Price.Plain(),
			Pros:        g.Pros,
			Cons:        g.Cons,
			Deadline:    g.Deadline,
		}
	} else {
		data.Form = &goalForm{}
	}

	s.render(w, "goals.html", data)
}

func (s *Server) handleGoalSave(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	ctx, lang := s.apiCtx(r, sess)

	idStr := r.FormValue("id")
	formURL := "/goals/new"
	if idStr != "" {
		formURL = "/goals/" + idStr + "/edit"
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	pros := strings.TrimSpace(r.FormValue("pros"))
	cons := strings.TrimSpace(r.FormValue("cons"))
	deadline := r.FormValue("deadline")
	price, ok := s.parseMoneyField(sess, lang, r.FormValue("price"))
	if !ok {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	if idStr == "" {
		sel := sess.Selected()
		if sel == nil {
			sess.SetFlash("error", i18n.T(lang, "toast_select_user"))
			http.Redirect(w, r, "/goals", http.StatusSeeOther)
			return
		}
		_, err := s.api.CreateGoal(ctx, core.NewGoal{
			Name:        name,
			Description: description,
			Price:       price,
			Pros:        pros,
			Cons:        cons,
			UserID:      sel.ID,
			Deadline:    deadline,
		})
		if err != nil {
			http.Redirect(w, r, formURL, http.StatusSeeOther)
			return
		}
		sess.SetFlash("success", i18n.T(lang, "toast_goal_created"))
		http.Redirect(w, r, "/goals", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Redirect(w, r, "/goals", http.StatusSeeOther)
		return
	}
	_, err = s.api.UpdateGoal(ctx, id, core.GoalPatch{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Pros:        &pros,
		Cons:        &cons,
		Deadline:    &deadline,
	})
	if err != nil {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}
	sess.SetFlash("success", i18n.T(lang, "toast_goal_updated"))
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

func (s *Server) handleGoalDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/goals", http.StatusSeeOther)
		return
	}

	sess.StageDelete(PendingDelete{
		Entity: "goal",
		ID:     id,
		Prompt: i18n.Tf(lang, "confirm_delete_goal", map[string]string{
			"name": r.FormValue("name"),
			"id":   strconv.FormatInt(id, 10),
		}),
		ReturnTo: "/goals",
	})
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}
