package api

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	txn, err := s.store.GetTransaction(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.NewTransaction
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if in.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	txn, err := s.store.CreateTransaction(r.Context(), in)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.txnsCache.Delete(strconv.FormatInt(txn.UserID, 10))
	s.publish(r.Context(), amqp.EntityTransaction, amqp.OpCreate, txn.ID)
	writeJSON(w, http.StatusCreated, txn)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch core.TransactionPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	txn, err := s.store.UpdateTransaction(r.Context(), id, patch)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.txnsCache.Delete(strconv.FormatInt(txn.UserID, 10))
	s.publish(r.Context(), amqp.EntityTransaction, amqp.OpUpdate, txn.ID)
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	// The owner isn't known after the delete; drop all cached listings.
	s.txnsCache.Purge()
	s.publish(r.Context(), amqp.EntityTransaction, amqp.OpDelete, id)
	w.WriteHeader(http.StatusNoContent)
}
