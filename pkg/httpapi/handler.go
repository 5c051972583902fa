package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/groupsm/membergroup/pkg/group"
)

// Handler exposes a read-only JSON inspection surface over a running
// group.StateMachine: current term, leader, member list and property
// values. It never submits commands; join/leave/property writes only
// ever happen through a committed log entry (pkg/transport/grpc).
type Handler struct {
	sm  *group.StateMachine
	mux *http.ServeMux
}

// New builds a Handler reading from sm.
func New(sm *group.StateMachine) *Handler {
	h := &Handler{sm: sm, mux: http.NewServeMux()}
	h.mux.HandleFunc("/status", h.handleStatus)
	h.mux.HandleFunc("/members", h.handleMembers)
	h.mux.HandleFunc("/members/", h.handleProperty)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	leaderID, hasLeader := h.sm.Leader()
	status := map[string]any{
		"term":       h.sm.Term(),
		"has_leader": hasLeader,
		"leader_id":  leaderID,
		"members":    h.sm.Members(),
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"members": h.sm.Members()})
}

// handleProperty serves GET /members/{id}/properties/{name}.
func (h *Handler) handleProperty(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/members/"), "/")
	if len(parts) != 3 || parts[1] != "properties" || parts[2] == "" {
		http.Error(w, "expected /members/{id}/properties/{name}", http.StatusBadRequest)
		return
	}

	member, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "invalid member id", http.StatusBadRequest)
		return
	}

	value := h.sm.Property(member, parts[2])
	if value == nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": value})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
