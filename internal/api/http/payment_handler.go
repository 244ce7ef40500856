package http

import (
	"net/http"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/service"
)

// PaymentHandler serves payment processing and transaction history endpoints
type PaymentHandler struct {
	payments service.PaymentService
}

func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type processPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	SourceID    string `json:"source_id"`
}

type paymentResponse struct {
	Member      *domain.Member      `json:"member"`
	Transaction *domain.Transaction `json:"transaction"`
}

// ProcessPayment charges the member's card through the payment provider and
// records the resulting transaction.
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req processPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must be positive")
		return
	}
	if req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "source_id is required")
		return
	}

	member, txn, err := h.payments.ProcessPayment(r.Context(), id, req.AmountCents, req.SourceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{Member: member, Transaction: txn})
}

type manualPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

// RecordManualPayment records a payment collected outside the provider,
// cash or check handed to the treasurer.
func (h *PaymentHandler) RecordManualPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	var req manualPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must be positive")
		return
	}

	member, txn, err := h.payments.RecordManualPayment(r.Context(), id, req.AmountCents, req.Method)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{Member: member, Transaction: txn})
}

// CreatePaymentLink returns a hosted checkout link for the member's
// outstanding balance.
func (h *PaymentHandler) CreatePaymentLink(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	link, err := h.payments.CreatePaymentLink(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// ListMemberTransactions returns the member's payment history.
func (h *PaymentHandler) ListMemberTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid member id")
		return
	}

	txns, err := h.payments.ListTransactions(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txns, "count": len(txns)})
}

// ListAllTransactions returns all transactions, newest first.
func (h *PaymentHandler) ListAllTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.payments.ListAllTransactions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txns, "count": len(txns)})
}
