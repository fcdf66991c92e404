// Package relay fans change notifications out to other viewers of a wedding.
// Delivery is fire-and-forget: a relay failure never gates the mutation that
// produced the event.
package relay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/weddingelite/backend/pkg/config"
	"github.com/weddingelite/backend/pkg/logger"
	"github.com/weddingelite/backend/pkg/redis"
)

// Event is the opaque change notification scoped to one wedding.
type Event struct {
	WeddingID  uuid.UUID `json:"wedding_id"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   uuid.UUID `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EntityWedding      = "wedding"
	EntityCategory     = "budget_category"
	EntityBooking      = "vendor_booking"
	EntityTask         = "task"
	EntityGuest        = "guest"
	EntityNotification = "notification"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Publisher receives events after a successful mutation commits.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// RedisPublisher fans events out on a per-wedding pub/sub channel.
type RedisPublisher struct {
	client        publisher
	logg          *logger.Logger
	channelPrefix string
}

func NewRedisPublisher(client *redis.Client, logg *logger.Logger, cfg config.RelayConfig) *RedisPublisher {
	return &RedisPublisher{
		client:        client,
		logg:          logg,
		channelPrefix: cfg.ChannelPrefix,
	}
}

// Publish serializes the event onto the wedding's channel. Failures are
// logged and swallowed.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	if p == nil || p.client == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		if p.logg != nil {
			p.logg.Error(ctx, "relay.marshal_failed", err)
		}
		return
	}

	channel := redis.BuildChannel(p.channelPrefix, "wedding", event.WeddingID.String(), "events")
	if err := p.client.Publish(ctx, channel, payload); err != nil {
		if p.logg != nil {
			fields := map[string]any{"channel": channel, "entity": event.Entity, "action": event.Action}
			p.logg.Error(p.logg.WithFields(ctx, fields), "relay.publish_failed", err)
		}
	}
}

// Nop drops every event. Used when the relay is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
