package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/zpam/nbspam/pkg/config"
	"github.com/zpam/nbspam/pkg/learning"
)

// Redis publishes outcomes of one evaluation run. Each run gets its own ID;
// outcomes are appended to the list <prefix>:run:<id>:results and tallied in
// the hash <prefix>:run:<id>:summary (fields total, right, wrong, skipped).
type Redis struct {
	client    *redis.Client
	ctx       context.Context
	keyPrefix string
	ttl       time.Duration
	runID     string
}

// record is the JSON stored per outcome.
type record struct {
	learning.Outcome
	Error string `json:"error,omitempty"`
	At    int64  `json:"at"`
}

// NewRedis connects to the server described by cfg and starts a new run.
func NewRedis(ctx context.Context, cfg config.RedisReportConfig) (*Redis, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Redis URL")
	}
	opt.DB = cfg.DatabaseNum

	ttl, err := cfg.ParseTTL()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "Redis connection failed")
	}

	return &Redis{
		client:    client,
		ctx:       ctx,
		keyPrefix: cfg.KeyPrefix,
		ttl:       ttl,
		runID:     uuid.NewString(),
	}, nil
}

// RunID identifies the run this reporter writes to.
func (r *Redis) RunID() string { return r.runID }

// ResultsKey is the list holding the JSON outcomes of the run.
func (r *Redis) ResultsKey() string {
	return fmt.Sprintf("%s:run:%s:results", r.keyPrefix, r.runID)
}

// SummaryKey is the hash holding the run counters.
func (r *Redis) SummaryKey() string {
	return fmt.Sprintf("%s:run:%s:summary", r.keyPrefix, r.runID)
}

// Report implements learning.Reporter.
func (r *Redis) Report(o learning.Outcome) error {
	rec := record{Outcome: o, At: time.Now().Unix()}
	field := "wrong"
	switch {
	case o.Err != nil:
		rec.Error = o.Err.Error()
		field = "skipped"
	case o.Correct:
		field = "right"
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding outcome")
	}

	pipe := r.client.Pipeline()
	pipe.RPush(r.ctx, r.ResultsKey(), data)
	pipe.HIncrBy(r.ctx, r.SummaryKey(), "total", 1)
	pipe.HIncrBy(r.ctx, r.SummaryKey(), field, 1)
	if r.ttl > 0 {
		pipe.Expire(r.ctx, r.ResultsKey(), r.ttl)
		pipe.Expire(r.ctx, r.SummaryKey(), r.ttl)
	}

	if _, err := pipe.Exec(r.ctx); err != nil {
		return errors.Wrap(err, "publishing outcome")
	}
	return nil
}

// Clear deletes everything the run has written.
func (r *Redis) Clear() error {
	return r.client.Del(r.ctx, r.ResultsKey(), r.SummaryKey()).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
