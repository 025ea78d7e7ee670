package service

import (
	"context"
	"encoding/json"
	"sync"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/pkg/contactevents"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const maxScanAttempts = 3

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	duplicateService IDuplicateService
	events           contactevents.Publisher
	logger           logger.ILogger

	mu       sync.Mutex
	attempts map[string]int
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	duplicateService IDuplicateService,
	events contactevents.Publisher,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		duplicateService: duplicateService,
		events:           events,
		logger:           logger,
		attempts:         make(map[string]int),
	}
}

// Consume subscribes and processes scan jobs in the background until ctx ends.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	cs.logger.Info("SCAN_WORKER", "Scan worker started", map[string]interface{}{"topic": cs.topicName})
	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DedupeScanMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("SCAN_WORKER", "Failed to unmarshal scan message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if payload.WorkspaceId == uuid.Nil {
		cs.logger.Warn("SCAN_WORKER", "Scan message without workspace", nil)
		msg.Ack()
		return
	}

	res, err := cs.duplicateService.ScanWorkspace(ctx, payload.WorkspaceId)
	if err != nil {
		if cs.retry(msg.UUID) {
			cs.logger.Warn("SCAN_WORKER", "Scan failed, retrying", map[string]interface{}{"workspace_id": payload.WorkspaceId.String(), "error": err.Error()})
			msg.Nack()
			return
		}
		cs.logger.Error("SCAN_WORKER", "Scan failed, giving up until the next periodic scan", map[string]interface{}{"workspace_id": payload.WorkspaceId.String(), "error": err.Error()})
		msg.Ack()
		return
	}
	cs.forget(msg.UUID)

	if res.GroupCount > 0 {
		cs.events.PublishDuplicatesDetected(ctx, payload.WorkspaceId, res.GroupCount, res.ContactCount)
	}
	msg.Ack()
}

// retry records one failed attempt and reports whether another is allowed.
func (cs *consumerService) retry(id string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.attempts[id]++
	if cs.attempts[id] >= maxScanAttempts {
		delete(cs.attempts, id)
		return false
	}
	return true
}

func (cs *consumerService) forget(id string) {
	cs.mu.Lock()
	delete(cs.attempts, id)
	cs.mu.Unlock()
}
