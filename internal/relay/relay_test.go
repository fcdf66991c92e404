package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload.([]byte))
	return nil
}

func TestRedisPublisherBuildsWeddingChannel(t *testing.T) {
	fake := &fakePublisher{}
	pub := &RedisPublisher{client: fake, channelPrefix: "wedelite"}
	weddingID := uuid.New()

	pub.Publish(context.Background(), Event{
		WeddingID: weddingID,
		Entity:    EntityBooking,
		Action:    ActionCreated,
	})

	require.Len(t, fake.channels, 1)
	assert.Equal(t, "wedelite:wedding:"+weddingID.String()+":events", fake.channels[0])

	var event Event
	require.NoError(t, json.Unmarshal(fake.payloads[0], &event))
	assert.Equal(t, EntityBooking, event.Entity)
	assert.Equal(t, ActionCreated, event.Action)
	assert.False(t, event.OccurredAt.IsZero(), "publish should stamp occurred_at")
}

func TestRedisPublisherKeepsProvidedTimestamp(t *testing.T) {
	fake := &fakePublisher{}
	pub := &RedisPublisher{client: fake, channelPrefix: "wedelite"}
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	pub.Publish(context.Background(), Event{WeddingID: uuid.New(), Entity: EntityTask, Action: ActionUpdated, OccurredAt: at})

	var event Event
	require.NoError(t, json.Unmarshal(fake.payloads[0], &event))
	assert.True(t, event.OccurredAt.Equal(at))
}

func TestRedisPublisherSwallowsDeliveryErrors(t *testing.T) {
	fake := &fakePublisher{err: errors.New("connection reset")}
	pub := &RedisPublisher{client: fake, channelPrefix: "wedelite"}

	// Must not panic or surface the error.
	pub.Publish(context.Background(), Event{WeddingID: uuid.New(), Entity: EntityTask, Action: ActionDeleted})
}

func TestNopPublisher(t *testing.T) {
	var pub Publisher = Nop{}
	pub.Publish(context.Background(), Event{WeddingID: uuid.New()})
}
