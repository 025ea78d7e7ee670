package service

import (
	"context"
	"testing"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerService_ScanPublishesDetected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newTestEnv(t)
	wsId := env.newWorkspace(t, uuid.New())
	env.newContact(t, wsId, dto.ContactFields{Email: str("dup@x.co")})
	env.newContact(t, wsId, dto.ContactFields{Email: str("dup@x.co")})

	clean := env.newWorkspace(t, uuid.New())
	env.newContact(t, clean, dto.ContactFields{Email: str("solo@x.co")})

	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 10}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "scan", env.duplicates, env.events, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("scan", pubSub)
	require.NoError(t, publisher.EnqueueScan(ctx, clean, "test"))
	require.NoError(t, publisher.EnqueueScan(ctx, wsId, "test"))

	require.Eventually(t, func() bool {
		_, ok := env.cache.Get(wsId)
		return ok && env.events.detectedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	env.events.mu.Lock()
	defer env.events.mu.Unlock()
	assert.Equal(t, detectedEvent{WorkspaceId: wsId, GroupCount: 1, ContactCount: 2}, env.events.detected[0])
	_, cleanCached := env.cache.Get(clean)
	assert.True(t, cleanCached)
}

func TestConsumerService_RetryBudget(t *testing.T) {
	cs := &consumerService{attempts: make(map[string]int)}

	assert.True(t, cs.retry("m1"))
	assert.True(t, cs.retry("m1"))
	assert.False(t, cs.retry("m1"))
	// budget resets once exhausted
	assert.True(t, cs.retry("m1"))
}
