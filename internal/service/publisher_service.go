package service

import (
	"context"
	"encoding/json"

	"brandlink-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	EnqueueScan(ctx context.Context, workspaceId uuid.UUID, reason string) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topicName, msg)
}

func (p *publisherService) EnqueueScan(ctx context.Context, workspaceId uuid.UUID, reason string) error {
	payload, err := json.Marshal(dto.DedupeScanMessage{WorkspaceId: workspaceId, Reason: reason})
	if err != nil {
		return err
	}
	return p.Publish(ctx, payload)
}
