package scheduler

import (
	"context"
	"errors"
	"testing"

	"leasing_crm_backend/internal/leads/scoring"
	"leasing_crm_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeScorer struct {
	scored     []uuid.UUID
	err        error
	rescoreAll int
}

func (f *fakeScorer) Recalculate(_ context.Context, leadID uuid.UUID) (scoring.Result, error) {
	if f.err != nil {
		return scoring.Result{}, f.err
	}
	f.scored = append(f.scored, leadID)
	return scoring.Result{LeadID: leadID, Score: 70, Priority: scoring.PriorityMedium}, nil
}

func (f *fakeScorer) RecalculateAll(context.Context) (int, error) {
	f.rescoreAll++
	return 3, f.err
}

func TestLeadScoreTaskRecalculates(t *testing.T) {
	scorer := &fakeScorer{}
	w := newWorker(nil, scorer, logger.Discard())

	leadID := uuid.New()
	task, err := NewLeadScoreTask(LeadScorePayload{LeadID: leadID.String(), Reason: "created"})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := w.mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(scorer.scored) != 1 || scorer.scored[0] != leadID {
		t.Fatalf("expected lead %s to be scored, got %v", leadID, scorer.scored)
	}
}

func TestLeadScoreTaskSkipsDeletedLead(t *testing.T) {
	w := newWorker(nil, &fakeScorer{err: scoring.ErrLeadNotFound}, logger.Discard())

	task, _ := NewLeadScoreTask(LeadScorePayload{LeadID: uuid.NewString()})
	if err := w.mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("expected deleted lead to be skipped, got %v", err)
	}
}

func TestLeadScoreTaskRetriesOnStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	w := newWorker(nil, &fakeScorer{err: boom}, logger.Discard())

	task, _ := NewLeadScoreTask(LeadScorePayload{LeadID: uuid.NewString()})
	err := w.mux.ProcessTask(context.Background(), task)
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate for retry, got %v", err)
	}
	if errors.Is(err, asynq.SkipRetry) {
		t.Fatal("store errors must be retried")
	}
}

func TestLeadScoreTaskRejectsBadPayload(t *testing.T) {
	w := newWorker(nil, &fakeScorer{}, logger.Discard())

	tests := []*asynq.Task{
		asynq.NewTask(TaskLeadScore, []byte("{not json")),
		asynq.NewTask(TaskLeadScore, []byte(`{"leadId":"nope"}`)),
	}
	for _, task := range tests {
		if err := w.mux.ProcessTask(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("payload %s: expected SkipRetry, got %v", task.Payload(), err)
		}
	}
}

func TestRescoreAllTask(t *testing.T) {
	scorer := &fakeScorer{}
	w := newWorker(nil, scorer, logger.Discard())

	if err := w.mux.ProcessTask(context.Background(), NewRescoreAllTask()); err != nil {
		t.Fatalf("process: %v", err)
	}
	if scorer.rescoreAll != 1 {
		t.Fatalf("expected one rescoring run, got %d", scorer.rescoreAll)
	}
}

func TestNilWorkerRunReturns(t *testing.T) {
	var w *Worker
	w.Run(context.Background())
}
