package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/providers"
	redisclient "github.com/slotwise/booking/internal/infrastructure/clients/redis"
)

// RedisEventBus implements the EventBus interface using Redis Pub/Sub.
// It carries the real-time notice push channel.
type RedisEventBus struct {
	client        *redisclient.Client
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan *entities.Notice]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		client:        client,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entities.Notice]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Publish delivers a notice to all subscribers of a channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, notice *entities.Notice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish notice: %w", err)
	}

	return nil
}

// Subscribe subscribes to notices on a channel
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.Notice, error) {
	b.mu.Lock()

	if _, exists := b.subscriptions[channel]; !exists {
		pubsub := b.client.Client().Subscribe(b.ctx, channel)
		b.subscriptions[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}

	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.Notice]struct{})
	}

	noticeChan := make(chan *entities.Notice, 100)
	b.subscribers[channel][noticeChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, noticeChan)
	}()

	return noticeChan, nil
}

// Close shuts down the bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	for channel, pubsub := range b.subscriptions {
		if err := pubsub.Close(); err != nil {
			log.Warn().Str("channel", channel).Err(err).Msg("failed to close subscription")
		}
		delete(b.subscriptions, channel)
	}
	for channel, subs := range b.subscribers {
		for sub := range subs {
			close(sub)
		}
		delete(b.subscribers, channel)
	}

	return nil
}

// receiveMessages fans Redis messages out to local subscribers
func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	ch := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var notice entities.Notice
			if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
				log.Warn().Str("channel", channel).Err(err).Msg("failed to unmarshal notice")
				continue
			}

			b.mu.RLock()
			for subscriber := range b.subscribers[channel] {
				select {
				case subscriber <- &notice:
				default:
					// Subscriber channel full, skip
					log.Warn().Str("channel", channel).Str("notice_id", notice.ID).Msg("subscriber backlog full, dropping notice")
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, noticeChan chan *entities.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.subscribers[channel]; ok {
		if _, ok := subs[noticeChan]; ok {
			delete(subs, noticeChan)
			close(noticeChan)
		}
		if len(subs) == 0 {
			delete(b.subscribers, channel)
			if pubsub, ok := b.subscriptions[channel]; ok {
				if err := pubsub.Close(); err != nil {
					log.Warn().Str("channel", channel).Err(err).Msg("failed to close subscription")
				}
				delete(b.subscriptions, channel)
			}
		}
	}
}
