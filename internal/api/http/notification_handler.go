package http

import (
	"net/http"

	"dues-tracker-backend/internal/service"
)

// NotificationHandler exposes manual notification triggers. Delivery results
// come back in the response body as success flags, never as HTTP errors: a
// broken webhook is a gateway condition, not a request failure.
type NotificationHandler struct {
	members service.MemberService
	gateway service.NotificationGateway
}

func NewNotificationHandler(members service.MemberService, gateway service.NotificationGateway) *NotificationHandler {
	return &NotificationHandler{members: members, gateway: gateway}
}

// TestConnection posts a canned test message to the configured webhook.
func (h *NotificationHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	result := h.gateway.TestConnection(r.Context())
	writeJSON(w, http.StatusOK, result)
}

// RemindMember sends a one-off dues reminder naming a single member.
func (h *NotificationHandler) RemindMember(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	member, err := h.members.GetMember(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	result := h.gateway.SendIndividualReminder(r.Context(), member)
	writeJSON(w, http.StatusOK, result)
}
