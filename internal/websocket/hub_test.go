package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestClient(h *Hub, userID uuid.UUID, buf int) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, buf), hub: h}
}

func TestHub_SendReachesEveryDevice(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	user := uuid.New()
	phone := newTestClient(h, user, 4)
	laptop := newTestClient(h, user, 4)
	other := newTestClient(h, uuid.New(), 4)
	h.Register(phone)
	h.Register(laptop)
	h.Register(other)

	h.Send(user, dto.ActivityMessage{Type: "CONTACTS_MERGED", WorkspaceId: "ws-1"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var msg struct {
				Type string              `json:"type"`
				Data dto.ActivityMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, "activity", msg.Type)
			assert.Equal(t, "CONTACTS_MERGED", msg.Data.Type)
		default:
			t.Fatal("expected a message")
		}
	}
	assert.Len(t, other.Send, 0)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	user := uuid.New()
	c := newTestClient(h, user, 1)
	h.Register(c)

	h.Send(user, dto.ActivityMessage{Type: "a"})
	h.Send(user, dto.ActivityMessage{Type: "b"})

	assert.Equal(t, 0, h.ConnectedUsers())
	<-c.Send
	_, open := <-c.Send
	assert.False(t, open)

	// a second unregister must not close twice
	assert.NotPanics(t, func() { h.Unregister(c) })
}

func TestHub_RunClosesClientsOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.Run(ctx)
	}()

	c := newTestClient(h, uuid.New(), 1)
	h.Register(c)

	cancel()
	wg.Wait()

	select {
	case _, open := <-c.Send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}
	assert.Equal(t, 0, h.ConnectedUsers())
}

func TestHub_EncodeForCluster(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	user := uuid.New()

	payload, err := h.encodeForCluster(user, []byte(`{"type":"activity"}`))
	require.NoError(t, err)

	var env clusterEnvelope
	require.NoError(t, json.Unmarshal(payload, &env))
	assert.Equal(t, h.origin, env.Origin)
	assert.Equal(t, user.String(), env.TargetUserID)
	assert.JSONEq(t, `{"type":"activity"}`, string(env.Message))

	_, err = h.encodeForCluster(user, []byte("{not json"))
	assert.Error(t, err)
}
