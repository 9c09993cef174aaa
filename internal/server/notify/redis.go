package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/idregistry/internal/logging"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "idregistry:events"

type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes each event as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  publisher
	channel string
	logger  logging.Logger
}

func NewRedisPublisher(client publisher, channel string, l logging.Logger) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel, logger: l.With("module", "redis_publisher")}
}

func (p *RedisPublisher) Notify(ctx context.Context, events []models.Event) {
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			p.logger.Error(ctx, "marshal event", "seq", e.Seq, "error", err)
			continue
		}
		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.logger.Warn(ctx, "publish event", "seq", e.Seq, "channel", p.channel, "error", err)
		}
	}
}

// ConnectRedis opens a client for url and pings it.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
