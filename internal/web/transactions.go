package web

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/i18n"
)

type transactionRow struct {
	ID          int64
	Description string
	Amount      string
	Negative    bool
	IsDebt      bool
	Created     string
}

type transactionForm struct {
	Edit        bool
	ID          int64
	Description string
	Amount      string
	IsDebt      bool
}

type transactionsPage struct {
	page
	NoSelection bool
	Rows        []transactionRow
	LoadFailed  bool
	Form        *transactionForm
}

func (s *Server) transactionsPageData(r *http.Request, sess *Session) transactionsPage {
	data := transactionsPage{page: s.newPage(r, sess, "transactions")}

	sel := sess.Selected()
	if sel == nil {
		// Placeholder render, no API call happens.
		data.NoSelection = true
		return data
	}

	ctx, lang := s.apiCtx(r, sess)
	txns, err := s.api.ListTransactions(ctx, sel.ID)
	if err != nil {
		data.LoadFailed = true
		data.Flash = sess.TakeFlash()
		return data
	}

	for _, t := range txns {
		data.Rows = append(data.Rows, transactionRow{
			ID:          t.ID,
			Description: t.Description,
			Amount:      i18n.FormatCents(lang, t.Amount),
			Negative:    t.Amount < 0,
			IsDebt:      t.IsDebt,
			Created:     i18n.FormatTime(lang, t.CreatedAt),
		})
	}
	return data
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	s.render(w, "transactions.html", s.transactionsPageData(r, sess))
}

func (s *Server) handleTransactionForm(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	idStr := r.PathValue("id")
	if idStr == "" && sess.Selected() == nil {
		// Creation requires a selection; rejected before any API call.
		sess.SetFlash("error", i18n.T(lang, "toast_select_user"))
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	data := s.transactionsPageData(r, sess)
	if idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		ctx, _ := s.apiCtx(r, sess)
		t, err := s.api.GetTransaction(ctx, id)
		if err != nil {
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		data.Form = &transactionForm{
			Edit:        true,
			ID:          t.ID,
			Description: t.Description,
			Amount:      t.Amount.Plain(),
			IsDebt:      t.IsDebt,
		}
	} else {
		data.Form = &transactionForm{}
	}

	s.render(w, "transactions.html", data)
}

func (s *Server) handleTransactionSave(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	ctx, lang := s.apiCtx(r, sess)

	idStr := r.FormValue("id")
	formURL := "/transactions/new"
	if idStr != "" {
		formURL = "/transactions/" + idStr + "/edit"
	}

	description := strings.TrimSpace(r.FormValue("description"))
	isDebt := r.FormValue("is_debt") != ""
	amount, ok := s.parseMoneyField(sess, lang, r.FormValue("amount"))
	if !ok {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}

	if idStr == "" {
		sel := sess.Selected()
		if sel == nil {
			sess.SetFlash("error", i18n.T(lang, "toast_select_user"))
			http.Redirect(w, r, "/transactions", http.StatusSeeOther)
			return
		}
		_, err := s.api.CreateTransaction(ctx, core.NewTransaction{
			Description: description,
			Amount:      amount,
			IsDebt:      isDebt,
			UserID:      sel.ID,
		})
		if err != nil {
			http.Redirect(w, r, formURL, http.StatusSeeOther)
			return
		}
		sess.SetFlash("success", i18n.T(lang, "toast_transaction_created"))
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}
	// Ownership never travels in the patch.
	_, err = s.api.UpdateTransaction(ctx, id, core.TransactionPatch{
		Description: &description,
		Amount:      &amount,
		IsDebt:      &isDebt,
	})
	if err != nil {
		http.Redirect(w, r, formURL, http.StatusSeeOther)
		return
	}
	sess.SetFlash("success", i18n.T(lang, "toast_transaction_updated"))
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}

func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.session(w, r)
	lang := s.lang(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/transactions", http.StatusSeeOther)
		return
	}

	sess.StageDelete(PendingDelete{
		Entity: "transaction",
		ID:     id,
		Prompt: i18n.Tf(lang, "confirm_delete_transaction", map[string]string{
			"id": strconv.FormatInt(id, 10),
		}),
		ReturnTo: "/transactions",
	})
	http.Redirect(w, r, "/transactions", http.StatusSeeOther)
}
