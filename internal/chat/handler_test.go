package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leasing_crm_backend/platform/logger"
	"leasing_crm_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAssistant struct {
	answer   string
	err      error
	question string
	history  []Message
}

func (s *stubAssistant) Ask(_ context.Context, question string, history []Message) (string, error) {
	s.question, s.history = question, history
	return s.answer, s.err
}

func newChatRouter(assistant Assistant) *gin.Engine {
	r := gin.New()
	NewHandler(assistant, validator.New(), logger.Discard()).RegisterRoutes(r.Group("/chat"))
	return r
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAskReturnsAnswer(t *testing.T) {
	stub := &stubAssistant{answer: "Lisa Park has a tour on Friday."}
	rec := postChat(newChatRouter(stub), `{"question":"  Who has a tour?  ","conversationHistory":[{"role":"user","content":"hi"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp AskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Answer != stub.answer {
		t.Fatalf("unexpected answer %q", resp.Answer)
	}
	if stub.question != "Who has a tour?" || len(stub.history) != 1 {
		t.Fatalf("unexpected assistant input %q %v", stub.question, stub.history)
	}
}

func TestAskFallsBackOnAssistantFailure(t *testing.T) {
	for _, assistant := range []Assistant{&stubAssistant{err: errors.New("timeout")}, unavailable{}} {
		rec := postChat(newChatRouter(assistant), `{"question":"How many leads?"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp AskResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Answer != FallbackAnswer {
			t.Fatalf("expected fallback answer, got %q", resp.Answer)
		}
	}
}

func TestAskRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty question", `{"question":""}`},
		{"blank question", `{"question":"   "}`},
		{"malformed json", `{"question":`},
		{"unknown role", `{"question":"q","conversationHistory":[{"role":"system","content":"x"}]}`},
	}
	for _, tt := range tests {
		stub := &stubAssistant{answer: "unused"}
		rec := postChat(newChatRouter(stub), tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
		if stub.question != "" {
			t.Errorf("%s: assistant must not be called", tt.name)
		}
	}
}
