package service

import (
	"context"
	"fmt"

	"brandlink-be/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

type ISchedulerService interface {
	// Run blocks until ctx is cancelled and running jobs have finished.
	Run(ctx context.Context) error
	RescanAll(ctx context.Context) (int, error)
}

type schedulerService struct {
	spec             string
	workspaceService IWorkspaceService
	publisherService IPublisherService
	limiter          *rate.Limiter
	logger           logger.ILogger
}

func NewSchedulerService(
	spec string,
	perSecond float64,
	burst int,
	workspaceService IWorkspaceService,
	publisherService IPublisherService,
	logger logger.ILogger,
) ISchedulerService {
	if burst < 1 {
		burst = 1
	}
	return &schedulerService{
		spec:             spec,
		workspaceService: workspaceService,
		publisherService: publisherService,
		limiter:          rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:           logger,
	}
}

func (s *schedulerService) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{s.logger}),
		cron.SkipIfStillRunning(cronLogger{s.logger}),
	))

	if _, err := c.AddFunc(s.spec, func() {
		if _, err := s.RescanAll(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("SCHEDULER", "Periodic rescan failed", map[string]interface{}{"error": err.Error()})
		}
	}); err != nil {
		return fmt.Errorf("invalid rescan schedule %q: %w", s.spec, err)
	}

	c.Start()
	s.logger.Info("SCHEDULER", "Rescan scheduler started", map[string]interface{}{"spec": s.spec})

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("SCHEDULER", "Rescan scheduler stopped", nil)
	return nil
}

// RescanAll queues one scan per workspace, paced by the limiter.
func (s *schedulerService) RescanAll(ctx context.Context) (int, error) {
	ids, err := s.workspaceService.ListIds(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			return queued, err
		}
		if err := s.publisherService.EnqueueScan(ctx, id, "scheduled"); err != nil {
			s.logger.Warn("SCHEDULER", "Failed to enqueue scan", map[string]interface{}{"workspace_id": id.String(), "error": err.Error()})
			continue
		}
		queued++
	}

	s.logger.Info("SCHEDULER", "Rescan queued", map[string]interface{}{"workspaces": len(ids), "queued": queued})
	return queued, nil
}

// cronLogger adapts ILogger to cron's logger interface.
type cronLogger struct {
	logger logger.ILogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("SCHEDULER", msg, kvToMap(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	details := kvToMap(keysAndValues)
	details["error"] = err.Error()
	l.logger.Error("SCHEDULER", msg, details)
}

func kvToMap(kv []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return m
}
