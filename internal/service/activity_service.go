package service

import (
	"context"
	"fmt"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/pkg/events"
	pktNats "brandlink-be/pkg/nats"

	"github.com/google/uuid"
)

const activityDurable = "activity-push-worker"

// ActivityDelivery defines how to push real-time updates.
// Implemented by the WebSocket Hub.
type ActivityDelivery interface {
	Send(userID uuid.UUID, activity dto.ActivityMessage)
}

type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

type ActivityService struct {
	subscriber       EventSubscriber
	workspaceService IWorkspaceService
	delivery         ActivityDelivery
	logger           logger.ILogger
}

func NewActivityService(sub EventSubscriber, workspaceService IWorkspaceService, delivery ActivityDelivery, log logger.ILogger) *ActivityService {
	return &ActivityService{
		subscriber:       sub,
		workspaceService: workspaceService,
		delivery:         delivery,
		logger:           log,
	}
}

// Start begins listening to the event bus.
func (s *ActivityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", activityDurable, s.HandleEvent); err != nil {
		return fmt.Errorf("failed to start activity subscriber: %w", err)
	}
	s.logger.Info("ACTIVITY", "Activity service started, listening to events.>", nil)
	return nil
}

// HandleEvent fans one workspace event out to every member of that workspace.
func (s *ActivityService) HandleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	wsStr, _ := payload["workspace_id"].(string)
	workspaceId, err := uuid.Parse(wsStr)
	if err != nil {
		s.logger.Debug("ACTIVITY", "Event without workspace, skipping", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	recipients, err := s.workspaceService.MemberIds(ctx, workspaceId)
	if err != nil {
		// NATS will redeliver
		return err
	}

	activity := dto.ActivityMessage{
		Type:        event.EventType(),
		WorkspaceId: workspaceId.String(),
		Data:        payload,
		OccurredAt:  event.Timestamp().UTC().Format(time.RFC3339),
	}
	for _, userID := range recipients {
		s.delivery.Send(userID, activity)
	}

	s.logger.Info("ACTIVITY", "Activity pushed", map[string]interface{}{
		"type":       event.EventType(),
		"workspace":  workspaceId.String(),
		"recipients": len(recipients),
	})
	return nil
}
