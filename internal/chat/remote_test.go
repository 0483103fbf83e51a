package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteAssistantSendsQuestionAndHistory(t *testing.T) {
	var got remoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(remoteResponse{Answer: "You have 2 tours this week."})
	}))
	defer srv.Close()

	history := []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}
	answer, err := NewRemoteAssistant(srv.URL, srv.Client()).Ask(context.Background(), "How many tours?", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "You have 2 tours this week." {
		t.Fatalf("unexpected answer %q", answer)
	}
	if got.Question != "How many tours?" || len(got.ConversationHistory) != 2 {
		t.Fatalf("unexpected upstream payload: %+v", got)
	}
}

func TestRemoteAssistantErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"upstream failure", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "worker crashed", http.StatusBadGateway)
		}},
		{"empty answer", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"answer":"  "}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			if _, err := NewRemoteAssistant(srv.URL, srv.Client()).Ask(context.Background(), "q", nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
