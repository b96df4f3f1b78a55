package zendesk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		Subdomain: "example",
		Email:     "agent@example.com",
		APIToken:  "secret-token",
		BaseURL:   srv.URL,
	})
}

func TestGetTicket(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tickets/42.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "agent@example.com/token" || pass != "secret-token" {
			t.Errorf("unexpected basic auth %q/%q", user, pass)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ticket": map[string]any{"id": 42, "subject": "hi", "description": "desc"},
		})
	}))

	ticket, err := client.GetTicket(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if ticket.ID != 42 || ticket.Subject != "hi" {
		t.Errorf("unexpected ticket: %+v", ticket)
	}
}

func TestGetTicketCommentsPublicFilter(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"comments": []map[string]any{
				{"id": 1, "plain_body": "public one", "public": true},
				{"id": 2, "plain_body": "internal note", "public": false},
				{"id": 3, "plain_body": "public two", "public": true},
			},
		})
	}))

	public, err := client.GetTicketComments(context.Background(), 7, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(public) != 2 {
		t.Fatalf("expected 2 public comments, got %d", len(public))
	}

	all, err := client.GetTicketComments(context.Background(), 7, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(all))
	}
}

func TestAddPrivateCommentPayload(t *testing.T) {
	var body map[string]map[string]map[string]any
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/tickets/9.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(`{}`))
	}))

	if err := client.AddPrivateComment(context.Background(), 9, "note text"); err != nil {
		t.Fatal(err)
	}

	comment := body["ticket"]["comment"]
	if comment["body"] != "note text" {
		t.Errorf("unexpected body %v", comment["body"])
	}
	if public, ok := comment["public"].(bool); !ok || public {
		t.Errorf("expected public=false, got %v", comment["public"])
	}
}

func TestClientSurfacesHTTPErrors(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"RecordNotFound"}`))
	}))

	if _, err := client.GetTicket(context.Background(), 1); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestBuildConversationEndToEnd(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tickets/5.json":
			json.NewEncoder(w).Encode(map[string]any{
				"ticket": map[string]any{"id": 5, "subject": "order", "description": "opening message"},
			})
		case "/tickets/5/comments.json":
			json.NewEncoder(w).Encode(map[string]any{
				"comments": []map[string]any{
					{"author_id": 1, "plain_body": "opening message", "public": true},
					{"author_id": 99, "plain_body": "we are on it", "public": true},
					{"author_id": 1, "plain_body": "internal", "public": false},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	conv, err := client.BuildConversation(context.Background(), 5, []int64{99})
	if err != nil {
		t.Fatal(err)
	}
	if conv.Subject != "order" {
		t.Errorf("unexpected subject %q", conv.Subject)
	}
	// Duplicate opener dropped, internal comment filtered out.
	if len(conv.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d: %+v", len(conv.Turns), conv.Turns)
	}
	if conv.Turns[0].Role != RoleSupportStaff {
		t.Errorf("expected staff role, got %s", conv.Turns[0].Role)
	}
}
