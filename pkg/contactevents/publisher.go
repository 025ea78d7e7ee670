package contactevents

import (
	"context"
	"time"

	"brandlink-be/internal/pkg/logger"
	pkgEvents "brandlink-be/pkg/events"

	"github.com/google/uuid"
)

// EventSink is satisfied by the NATS publisher.
type EventSink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// Publisher abstracts domain event publishing for contact operations
type Publisher interface {
	PublishContactsMerged(ctx context.Context, workspaceId, actorId, keptId uuid.UUID, removedIds []uuid.UUID)
	PublishDuplicatesDetected(ctx context.Context, workspaceId uuid.UUID, groupCount, contactCount int)
}

type NatsPublisher struct {
	sink   EventSink
	logger logger.ILogger
}

// NewNatsPublisher accepts a nil sink; events are then dropped, which is how
// the service runs when NATS is unavailable.
func NewNatsPublisher(sink EventSink, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		sink:   sink,
		logger: logger,
	}
}

func (p *NatsPublisher) PublishContactsMerged(ctx context.Context, workspaceId, actorId, keptId uuid.UUID, removedIds []uuid.UUID) {
	removed := make([]string, 0, len(removedIds))
	for _, id := range removedIds {
		removed = append(removed, id.String())
	}

	now := time.Now()
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.ContactsMerged,
		Data: map[string]interface{}{
			"workspace_id": workspaceId.String(),
			"actor_id":     actorId.String(),
			"kept_id":      keptId.String(),
			"removed_ids":  removed,
			"merged_count": len(removedIds),
			"entity_type":  "contact",
			"entity_id":    keptId.String(),
			"occurred_at":  now,
		},
		OccurredAt: now,
	})
}

func (p *NatsPublisher) PublishDuplicatesDetected(ctx context.Context, workspaceId uuid.UUID, groupCount, contactCount int) {
	now := time.Now()
	p.publish(ctx, pkgEvents.BaseEvent{
		Type: pkgEvents.DuplicatesDetected,
		Data: map[string]interface{}{
			"workspace_id":  workspaceId.String(),
			"group_count":   groupCount,
			"contact_count": contactCount,
			"occurred_at":   now,
		},
		OccurredAt: now,
	})
}

func (p *NatsPublisher) publish(ctx context.Context, evt pkgEvents.BaseEvent) {
	if p.sink == nil {
		return
	}
	if err := p.sink.Publish(ctx, evt); err != nil {
		p.logger.Error("DEDUPE", "Failed to publish "+evt.Type+" event", map[string]interface{}{"error": err.Error()})
	}
}
