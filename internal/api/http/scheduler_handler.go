package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"dues-tracker-backend/internal/scheduler"
)

// SchedulerHandler exposes the reminder job registry for inspection and
// operator control.
type SchedulerHandler struct {
	registry *scheduler.Registry
}

func NewSchedulerHandler(registry *scheduler.Registry) *SchedulerHandler {
	return &SchedulerHandler{registry: registry}
}

func (h *SchedulerHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.registry.ListJobs()
	writeJSON(w, http.StatusOK, map[string]any{
		"jobs":    jobs,
		"count":   len(jobs),
		"running": h.registry.IsRunning(),
	})
}

func (h *SchedulerHandler) PauseJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.registry.PauseJob(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "job paused", "id": id})
}

func (h *SchedulerHandler) ResumeJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.registry.ResumeJob(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "job resumed", "id": id})
}

func (h *SchedulerHandler) RemoveJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.registry.RemoveJob(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "job removed", "id": id})
}
