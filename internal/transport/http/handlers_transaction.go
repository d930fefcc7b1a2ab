package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"moneyguard/internal/gate"
	"moneyguard/internal/transaction"
	"moneyguard/pkg/requestcontext"
)

type authorizeTransactionRequest struct {
	Reference   string `json:"reference"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type authorizeTransactionResponse struct {
	Decision string `json:"decision"`
	Rule     string `json:"rule,omitempty"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (h *Handler) handleAuthorizeTransaction(w http.ResponseWriter, r *http.Request) {
	username := requestcontext.Username(r.Context())
	if username == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req authorizeTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}

	decision, err := h.transactions.Authorize(r.Context(), transaction.Request{
		Username:    username,
		Reference:   req.Reference,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := authorizeTransactionResponse{Decision: gate.Kind(decision.Outcome), Rule: decision.Rule}
	status := http.StatusOK
	switch o := decision.Outcome.(type) {
	case gate.Block:
		resp.Title = o.Title
		resp.Message = o.Message
		status = http.StatusForbidden
	case gate.RequireStepUp:
		resp.Reason = o.Reason
	}
	writeJSON(w, status, resp)
}

func (h *Handler) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", ErrorDescription: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	events, err := h.auditLog.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
