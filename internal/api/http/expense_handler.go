package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/service"
)

// ExpenseHandler serves chapter expense tracking endpoints
type ExpenseHandler struct {
	expenses service.ExpenseService
}

func NewExpenseHandler(expenses service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type createExpenseRequest struct {
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	EventName   string `json:"event_name"`
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense := &domain.Expense{
		Category:    req.Category,
		AmountCents: req.AmountCents,
		Description: req.Description,
		EventName:   req.EventName,
	}
	if claims := ClaimsFromContext(r.Context()); claims != nil {
		id := claims.MemberID
		expense.CreatedBy = &id
	}

	if err := h.expenses.CreateExpense(r.Context(), expense); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListExpenses(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses, "count": len(expenses)})
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	if err := h.expenses.DeleteExpense(r.Context(), int32(id)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}
