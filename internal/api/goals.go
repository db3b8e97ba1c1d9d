package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
)

func validDeadline(deadline string) bool {
	if deadline == "" {
		return true
	}
	_, err := time.Parse(core.DeadlineLayout, deadline)
	return err == nil
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	goal, err := s.store.GetGoal(r.Context(), id)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var in core.NewGoal
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if in.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if !validDeadline(in.Deadline) {
		writeError(w, http.StatusBadRequest, "deadline must be a YYYY-MM-DD date")
		return
	}

	goal, err := s.store.CreateGoal(r.Context(), in)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.goalsCache.Delete(strconv.FormatInt(goal.UserID, 10))
	s.publish(r.Context(), amqp.EntityGoal, amqp.OpCreate, goal.ID)
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var patch core.GoalPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if patch.Deadline != nil && !validDeadline(*patch.Deadline) {
		writeError(w, http.StatusBadRequest, "deadline must be a YYYY-MM-DD date")
		return
	}

	goal, err := s.store.UpdateGoal(r.Context(), id, patch)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.goalsCache.Delete(strconv.FormatInt(goal.UserID, 10))
	s.publish(r.Context(), amqp.EntityGoal, amqp.OpUpdate, goal.ID)
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	s.goalsCache.Purge()
	s.publish(r.Context(), amqp.EntityGoal, amqp.OpDelete, id)
	w.WriteHeader(http.StatusNoContent)
}
