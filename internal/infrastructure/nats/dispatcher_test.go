package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infra-status-service/internal/domain"
)

type recordingPublisher struct {
	failFor map[string]bool
	sent    []*nats.Msg
}

func (p *recordingPublisher) PublishMsg(msg *nats.Msg) error {
	if p.failFor[msg.Subject] {
		return errors.New("connection reset")
	}
	p.sent = append(p.sent, msg)
	return nil
}

func TestHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{}
	carrier := (*headerCarrier)(msg)

	assert.Equal(t, "", carrier.Get("missing"))
	assert.Nil(t, carrier.Keys())

	carrier.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "00-abc-def-01", carrier.Get("traceparent"))
	assert.Len(t, carrier.Keys(), 1)
}

func TestDispatcher_DeliversToEachRecipient(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, "notifications.user", 1000, 10, zap.NewNop())

	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	payload := domain.NotificationPayload{
		Kind:         domain.NotificationKindServiceAvailable,
		ServiceType:  domain.ServiceWater,
		Neighborhood: "Al-Midan",
	}

	failures, err := d.Dispatch(context.Background(), users, payload)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, pub.sent, 3)

	for i, msg := range pub.sent {
		assert.Equal(t, "notifications.user."+users[i].String(), msg.Subject)

		var got domain.NotificationPayload
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, payload, got)
	}
}

func TestDispatcher_IsolatesFailures(t *testing.T) {
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	pub := &recordingPublisher{failFor: map[string]bool{
		"n." + users[1].String(): true,
	}}
	d := NewDispatcher(pub, "n", 1000, 10, zap.NewNop())

	failures, err := d.Dispatch(context.Background(), users, domain.NotificationPayload{})
	require.NoError(t, err)

	require.Len(t, failures, 1)
	assert.Equal(t, users[1], failures[0].UserID)
	assert.Len(t, pub.sent, 2)
}

func TestDispatcher_CancelledContext(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, "n", 1000, 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, []uuid.UUID{uuid.New()}, domain.NotificationPayload{})
	assert.Error(t, err)
	assert.Empty(t, pub.sent)
}
