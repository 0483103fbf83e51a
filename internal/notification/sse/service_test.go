package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leasing_crm_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func waitForClients(t *testing.T, s *Service, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, s.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandlerStreamsBroadcastEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := New(logger.Discard())

	router := gin.New()
	router.GET("/stream", svc.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		router.ServeHTTP(rec, req)
		close(done)
	}()

	waitForClients(t, svc, 1)
	leadID := uuid.New()
	svc.Broadcast(Event{Type: EventLeadScored, LeadID: leadID, Data: map[string]any{"score": 70}})

	// Give the handler a moment to drain the buffered event before disconnecting.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event:connected") {
		t.Fatalf("expected connected event, got %q", body)
	}
	if !strings.Contains(body, "event:lead_scored") || !strings.Contains(body, leadID.String()) {
		t.Fatalf("expected lead_scored event, got %q", body)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/event-stream") {
		t.Fatalf("unexpected content type %q", got)
	}
	if svc.ClientCount() != 0 {
		t.Fatal("expected client removed after disconnect")
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	svc := New(logger.Discard())
	cl := &client{events: make(chan Event, 1)}
	svc.addClient(cl)

	svc.Broadcast(Event{Type: EventLeadCreated})
	svc.Broadcast(Event{Type: EventLeadUpdated})

	if len(cl.events) != 1 || (<-cl.events).Type != EventLeadCreated {
		t.Fatal("expected only the first event to be buffered")
	}
}

func TestCloseThenRemoveDoesNotPanic(t *testing.T) {
	svc := New(logger.Discard())
	cl := &client{events: make(chan Event, 1)}
	svc.addClient(cl)

	svc.Close()
	svc.removeClient(cl)

	if _, ok := <-cl.events; ok {
		t.Fatal("expected closed channel")
	}
	if svc.ClientCount() != 0 {
		t.Fatal("expected no clients")
	}
}
