// Package notify feeds order lifecycle events to the admin dashboard:
// a Kafka consumer pushes each event onto a capped Redis list the
// dashboard polls.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
	"github.com/Deoshabh/weBazaar-sub000/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Service struct {
	Redis *redis.Client
	Max   int64
}

// HandleOrderEvent is wired as the consumer handler. Malformed messages
// are logged and dropped so they never wedge the partition.
func (s *Service) HandleOrderEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		log.Printf("notify: dropping malformed event: %v", err)
		return nil
	}

	pipe := s.Redis.TxPipeline()
	pipe.LPush(ctx, redisx.KeyAdminFeed, m.Value)
	pipe.LTrim(ctx, redisx.KeyAdminFeed, 0, s.max()-1)
	_, err := pipe.Exec(ctx)
	return err
}

// Recent returns the newest-first event feed for the dashboard.
func (s *Service) Recent(ctx context.Context, n int64) ([]json.RawMessage, error) {
	if n <= 0 || n > s.max() {
		n = s.max()
	}
	vals, err := s.Redis.LRange(ctx, redisx.KeyAdminFeed, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		out = append(out, json.RawMessage(v))
	}
	return out, nil
}

func (s *Service) max() int64 {
	if s.Max > 0 {
		return s.Max
	}
	return redisx.AdminFeedMax
}
