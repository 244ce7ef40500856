package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/service"
)

// MemberHandler serves member CRUD endpoints
type MemberHandler struct {
	members service.MemberService
}

func NewMemberHandler(members service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

// memberIDFromRequest parses the {id} path variable.
func memberIDFromRequest(r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parseDueDate accepts a yyyy-mm-dd due date in server-local time.
func parseDueDate(s string) (*time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type createMemberRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DuesAmountCents int64  `json:"dues_amount_cents"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	DueDate         string `json:"due_date"` // yyyy-mm-dd, optional
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDueDate(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be yyyy-mm-dd")
			return
		}
		dueDate = parsed
	}

	member, err := h.members.CreateMember(r.Context(), req.Name, req.Email, req.Phone,
		req.DuesAmountCents, domain.MemberRole(req.Role), req.Password, dueDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members, "count": len(members)})
}

type updateMemberRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Role            *string `json:"role"`
	DuesAmountCents *int64  `json:"dues_amount_cents"`
	AmountPaidCents *int64  `json:"amount_paid_cents"`
	DueDate         *string `json:"due_date"` // yyyy-mm-dd; empty string clears it

	// Accepted but ignored. The status is derived from the financial facts
	// and never written from the client.
	PaymentStatus *string `json:"payment_status"`
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := service.MemberUpdate{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		DuesAmountCents: req.DuesAmountCents,
		AmountPaidCents: req.AmountPaidCents,
	}
	if req.Role != nil {
		role := domain.MemberRole(*req.Role)
		update.Role = &role
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			update.ClearDueDate = true
		} else {
			parsed, err := parseDueDate(*req.DueDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, "due_date must be yyyy-mm-dd")
				return
			}
			update.DueDate = parsed
		}
	}

	member, err := h.members.UpdateMember(r.Context(), id, update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}
	if err := h.members.DeleteMember(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "member deleted"})
}
