package api

import (
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

const usersCacheKey = "all"

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	if users, ok := s.usersCache.Get(usersCacheKey); ok {
		writeJSON(w, http.StatusOK, users)
		return
	}

	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.usersCache.Set(usersCacheKey, users)
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in core.NewUser
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.UserName) == "" {
		writeError(w, http.StatusBadRequest, "user_name is required")
		return
	}

	user, err := s.store.CreateUser(r.Context(), in)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.usersCache.Delete(usersCacheKey)
	s.publish(r.Context(), amqp.EntityUser, amqp.OpCreate, user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch core.UserPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	user, err := s.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.usersCache.Delete(usersCacheKey)
	s.publish(r.Context(), amqp.EntityUser, amqp.OpUpdate, user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	// Deleting a user cascades to their transactions and goals.
	s.usersCache.Delete(usersCacheKey)
	s.txnsCache.Delete(strconv.FormatInt(id, 10))
	s.goalsCache.Delete(strconv.FormatInt(id, 10))
	s.publish(r.Context(), amqp.EntityUser, amqp.OpDelete, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	key := strconv.FormatInt(userID, 10)
	if txns, ok := s.txnsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, txns)
		return
	}

	txns, err := s.store.ListTransactionsByUser(r.Context(), userID)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.txnsCache.Set(key, txns)
	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleListUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}
	key := strconv.FormatInt(userID, 10)
	if goals, ok := s.goalsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, goals)
		return
	}

	goals, err := s.store.ListGoalsByUser(r.Context(), userID)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.goalsCache.Set(key, goals)
	writeJSON(w, http.StatusOK, goals)
}
