package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/triagebot/internal/triage"
)

// mockRunner implements TriageRunner.
type mockRunner struct {
	outcome *triage.Outcome
	err     error
	calls   int
}

func (m *mockRunner) Process(_ context.Context, ticketID int64) (*triage.Outcome, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome != nil {
		return m.outcome, nil
	}
	return &triage.Outcome{TicketID: ticketID, Classification: "refund", AnswerPosted: true}, nil
}

func postWebhook(t *testing.T, h *WebhookHandler, body, bearer string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	h.Handle(w, req)

	var decoded map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
	return w, decoded
}

func TestWebhookUnauthorized(t *testing.T) {
	h := NewWebhookHandler(&mockRunner{}, "top-secret")

	cases := []struct {
		name   string
		bearer string
	}{
		{"missing header", ""},
		{"wrong token", "Bearer wrong"},
		{"no bearer prefix", "top-secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := postWebhook(t, h, `{"ticket_id": 1}`, tc.bearer)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if body["ok"] != false || body["error"] != "unauthorized" {
				t.Errorf("unexpected body: %v", body)
			}
		})
	}
}

func TestWebhookAuthSkippedWithoutSecret(t *testing.T) {
	h := NewWebhookHandler(&mockRunner{}, "")

	w, _ := postWebhook(t, h, `{"ticket_id": 1}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without configured secret, got %d", w.Code)
	}
}

func TestWebhookMissingTicketID(t *testing.T) {
	runner := &mockRunner{}
	h := NewWebhookHandler(runner, "")

	for _, body := range []string{`{}`, `not json`, `{"ticket": {}}`} {
		w, decoded := postWebhook(t, h, body, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
		if decoded["error"] != "missing ticket_id" {
			t.Errorf("body %q: unexpected error %v", body, decoded["error"])
		}
	}
	if runner.calls != 0 {
		t.Errorf("expected no pipeline runs, got %d", runner.calls)
	}
}

func TestWebhookNestedTicketID(t *testing.T) {
	runner := &mockRunner{}
	h := NewWebhookHandler(runner, "")

	w, body := postWebhook(t, h, `{"ticket": {"id": 77}}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["ticket_id"] != float64(77) {
		t.Errorf("unexpected ticket_id: %v", body["ticket_id"])
	}
}

func TestWebhookSuccess(t *testing.T) {
	h := NewWebhookHandler(&mockRunner{}, "top-secret")

	w, body := postWebhook(t, h, `{"ticket_id": 42}`, "Bearer top-secret")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["ok"] != true || body["classification"] != "refund" || body["answer_posted"] != true {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWebhookSkipped(t *testing.T) {
	runner := &mockRunner{outcome: &triage.Outcome{
		TicketID: 42, Skipped: true, SkipReason: "recent classification exists",
	}}
	h := NewWebhookHandler(runner, "")

	w, body := postWebhook(t, h, `{"ticket_id": 42}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["skipped"] != true || body["reason"] != "recent classification exists" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWebhookPipelineErrorIs200(t *testing.T) {
	runner := &mockRunner{err: errors.New("zendesk timeout")}
	h := NewWebhookHandler(runner, "")

	w, body := postWebhook(t, h, `{"ticket_id": 42}`, "")
	// Deliberate: downstream failures must not trigger sender retries.
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for pipeline error, got %d", w.Code)
	}
	if body["ok"] != false || body["error"] != "zendesk timeout" {
		t.Errorf("unexpected body: %v", body)
	}
}
