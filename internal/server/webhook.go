package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ziadkadry99/triagebot/internal/triage"
)

// TriageRunner runs the triage pipeline for one ticket.
type TriageRunner interface {
	Process(ctx context.Context, ticketID int64) (*triage.Outcome, error)
}

// WebhookHandler accepts helpdesk webhook deliveries and drives the
// triage pipeline.
type WebhookHandler struct {
	runner TriageRunner
	secret string
}

// NewWebhookHandler creates the handler. With an empty secret,
// authentication is skipped.
func NewWebhookHandler(runner TriageRunner, secret string) *WebhookHandler {
	return &WebhookHandler{runner: runner, secret: secret}
}

// webhookPayload matches the two accepted body shapes:
// {"ticket_id": N} and {"ticket": {"id": N}}.
type webhookPayload struct {
	TicketID int64 `json:"ticket_id"`
	Ticket   struct {
		ID int64 `json:"id"`
	} `json:"ticket"`
}

// Handle processes one webhook POST. Downstream failures deliberately
// map to HTTP 200 with an error body: the ticket may already carry a
// posted note, and a non-2xx status would make the sender retry the
// whole pipeline.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		auth := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || strings.TrimSpace(token) != h.secret {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"ok":    false,
				"error": "unauthorized",
			})
			return
		}
	}

	var payload webhookPayload
	// A malformed body is treated like an empty one; the ticket id
	// check below produces the 400.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	ticketID := payload.TicketID
	if ticketID == 0 {
		ticketID = payload.Ticket.ID
	}
	if ticketID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":    false,
			"error": "missing ticket_id",
		})
		return
	}

	outcome, err := h.runner.Process(r.Context(), ticketID)
	if err != nil {
		log.Printf("ticket %d triage failed: %v", ticketID, err)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}

	if outcome.Skipped {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"skipped": true,
			"reason":  outcome.SkipReason,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"ticket_id":      outcome.TicketID,
		"classification": outcome.Classification,
		"answer_posted":  outcome.AnswerPosted,
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
