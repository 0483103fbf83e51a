package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leasing_crm_backend/platform/config"
	"leasing_crm_backend/platform/db"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// scoreDedupWindow collapses bursts of edits on one lead into a single scoring task.
const scoreDedupWindow = 30 * time.Second

type Client struct {
	client *asynq.Client
	queue  string
}

// ScoreEnqueuer schedules background scoring.
type ScoreEnqueuer interface {
	EnqueueLeadScore(ctx context.Context, leadID uuid.UUID, reason string) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) EnqueueLeadScore(ctx context.Context, leadID uuid.UUID, reason string) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewLeadScoreTask(LeadScorePayload{LeadID: leadID.String(), Reason: reason})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.Unique(scoreDedupWindow),
		asynq.MaxRetry(5),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// EnqueueRescoreAll queues a full rescoring run right away.
func (c *Client) EnqueueRescoreAll(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.EnqueueContext(ctx, NewRescoreAllTask(), asynq.Queue(c.queue), asynq.MaxRetry(1))
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueue(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := db.RedisOptions(redisURL, tlsInsecure)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:        opt.Addr,
		Username:    opt.Username,
		Password:    opt.Password,
		DB:          opt.DB,
		DialTimeout: opt.DialTimeout,
		TLSConfig:   opt.TLSConfig,
	}, nil
}
