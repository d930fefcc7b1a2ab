package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"moneyguard/internal/session"
	"moneyguard/pkg/requestcontext"
)

type beginAttemptRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name,omitempty"`
}

type blockJSON struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type attemptResponse struct {
	AttemptID    string       `json:"attempt_id"`
	Phase        string       `json:"phase"`
	Block        *blockJSON   `json:"block,omitempty"`
	SessionToken string       `json:"session_token,omitempty"`
	Effects      []effectJSON `json:"effects"`
}

func (h *Handler) handleBeginAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req beginAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", ErrorDescription: "username and password required"})
		return
	}

	attempt := h.sessions.NewAttempt()
	h.mu.Lock()
	h.attempts[attempt.ID()] = attempt
	h.mu.Unlock()

	meta := session.ClientMeta{
		UserAgent:         requestcontext.UserAgent(ctx),
		DeviceName:        req.DeviceName,
		DeviceFingerprint: requestcontext.DeviceFingerprint(ctx),
		RemoteIP:          requestcontext.ClientIP(ctx),
	}
	if err := attempt.Begin(ctx, session.Credentials{Username: req.Username, Password: req.Password}, meta); err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.writeAttempt(w, http.StatusCreated, attempt)
}

func (h *Handler) lookupAttempt(w http.ResponseWriter, r *http.Request) *session.Attempt {
	id := chi.URLParam(r, "attemptID")
	h.mu.Lock()
	attempt := h.attempts[id]
	h.mu.Unlock()
	if attempt == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
		return nil
	}
	return attempt
}

func (h *Handler) handleGetAttempt(w http.ResponseWriter, r *http.Request) {
	if attempt := h.lookupAttempt(w, r); attempt != nil {
		h.writeAttempt(w, http.StatusOK, attempt)
	}
}

func (h *Handler) handleAbortAttempt(w http.ResponseWriter, r *http.Request) {
	attempt := h.lookupAttempt(w, r)
	if attempt == nil {
		return
	}
	attempt.Abort()
	h.mu.Lock()
	delete(h.attempts, attempt.ID())
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAcknowledgeDialog(w http.ResponseWriter, r *http.Request) {
	attempt := h.lookupAttempt(w, r)
	if attempt == nil {
		return
	}
	if err := attempt.AcknowledgeRiskDialog(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writeAttempt(w, http.StatusOK, attempt)
}

type resolveLocationRequest struct {
	Choice string `json:"choice"`
}

func (h *Handler) handleResolveLocation(w http.ResponseWriter, r *http.Request) {
	attempt := h.lookupAttempt(w, r)
	if attempt == nil {
		return
	}

	var req resolveLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request"})
		return
	}
	var choice session.LocationChoice
	switch req.Choice {
	case "verify":
		choice = session.LocationChoiceVerify
	case "proceed":
		choice = session.LocationChoiceProceed
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", ErrorDescription: `choice must be "verify" or "proceed"`})
		return
	}

	if err := attempt.ResolveLocationPrompt(r.Context(), choice); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writeAttempt(w, http.StatusOK, attempt)
}

func (h *Handler) handleCompleteStepUp(w http.ResponseWriter, r *http.Request) {
	attempt := h.lookupAttempt(w, r)
	if attempt == nil {
		return
	}
	if err := attempt.CompleteStepUp(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writeAttempt(w, http.StatusOK, attempt)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// The token, not the body, names the user being logged out.
	username := requestcontext.Username(r.Context())
	if username == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	if err := h.sessions.Logout(r.Context(), username); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeAttempt snapshots the attempt: phase, pending effects, and, once the
// orchestration lands on Authorized, a signed session token.
func (h *Handler) writeAttempt(w http.ResponseWriter, status int, attempt *session.Attempt) {
	resp := attemptResponse{
		AttemptID: attempt.ID(),
		Phase:     attempt.Phase().String(),
		Effects:   encodeEffects(attempt.DrainEffects()),
	}
	if b := attempt.BlockReason(); b != nil {
		resp.Block = &blockJSON{Title: b.Title, Message: b.Message}
	}
	if attempt.Phase() == session.PhaseAuthorized {
		token, err := h.tokens.Issue(attempt.Username(), attempt.FullName(), attempt.ID())
		if err != nil {
			h.logger.Error("session token issuance failed", "attempt_id", attempt.ID(), "error", err)
		} else {
			resp.SessionToken = token
		}
	}
	writeJSON(w, status, resp)
}
