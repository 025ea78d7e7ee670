package bootstrap

import (
	"context"
	"time"

	"brandlink-be/internal/config"
	"brandlink-be/internal/controller"
	"brandlink-be/internal/handler"
	"brandlink-be/internal/pkg/lock"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/repository/memory"
	"brandlink-be/internal/repository/unitofwork"
	"brandlink-be/internal/service"
	"brandlink-be/internal/websocket"
	"brandlink-be/pkg/contactevents"
	pktNats "brandlink-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	WorkspaceController controller.IWorkspaceController
	ContactController   controller.IContactController
	DuplicateController controller.IDuplicateController

	// Services shared with the CLI
	WorkspaceService service.IWorkspaceService
	ContactService   service.IContactService
	DuplicateService service.IDuplicateService

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	SchedulerService service.ISchedulerService
	ActivityService  *service.ActivityService

	// WebSockets & Activity
	ActivityHandler *handler.ActivityHandler
	WebSocketHub    *websocket.Hub

	closers []func()
}

// Options lets the CLI build a container without the network-facing pieces.
type Options struct {
	// Offline skips NATS and Redis entirely.
	Offline bool
	Logger  logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	return NewContainerWithOptions(db, cfg, Options{})
}

func NewContainerWithOptions(db *gorm.DB, cfg *config.Config, opts Options) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c := &Container{Logger: sysLogger}

	// 2. Job queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: int64(cfg.Dedupe.ScanQueueSize)},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure. Each piece degrades to an in-process fallback.
	var bus *pktNats.Bus
	var rdb *redis.Client
	if !opts.Offline {
		var err error
		bus, err = pktNats.Connect(cfg.App.NatsURL, cfg.App.NatsStream, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, domain events disabled", map[string]interface{}{"error": err.Error()})
			bus = nil
		} else {
			c.closers = append(c.closers, bus.Close)
		}

		rdb = connectRedis(cfg.App.RedisURL, sysLogger)
		if rdb != nil {
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	var eventSink contactevents.EventSink
	if bus != nil {
		eventSink = pktNats.NewPublisher(bus)
	}
	eventPublisher := contactevents.NewNatsPublisher(eventSink, sysLogger)

	var locker lock.WorkspaceLocker = lock.NewLocalLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb)
	}

	// 4. Services
	duplicateCache := memory.NewDuplicateCache(cfg.Dedupe.CacheTTL)
	publisherService := service.NewPublisherService(cfg.Dedupe.ScanTopic, pubSub)

	c.WorkspaceService = service.NewWorkspaceService(uowFactory, sysLogger)
	c.ContactService = service.NewContactService(uowFactory, publisherService, duplicateCache, sysLogger)
	c.DuplicateService = service.NewDuplicateService(
		uowFactory,
		locker,
		cfg.Dedupe.MergeLockTTL,
		duplicateCache,
		eventPublisher,
		sysLogger,
	)

	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Dedupe.ScanTopic, c.DuplicateService, eventPublisher, sysLogger)
	c.SchedulerService = service.NewSchedulerService(
		cfg.Dedupe.ScanCron,
		cfg.Dedupe.RescanPerSec,
		cfg.Dedupe.RescanBurst,
		c.WorkspaceService,
		publisherService,
		sysLogger,
	)

	// 5. Activity push
	// websocket chatter goes to its own file unless the caller supplied a logger
	var hubLogger logger.ILogger = sysLogger
	if opts.Logger == nil {
		hubLogger = logger.NewIsolatedLogger(cfg.App.ActivityLogPath)
	}
	c.WebSocketHub = websocket.NewHub(rdb, hubLogger)
	if bus != nil {
		c.ActivityService = service.NewActivityService(pktNats.NewSubscriber(bus), c.WorkspaceService, c.WebSocketHub, hubLogger)
	}
	c.ActivityHandler = handler.NewActivityHandler(c.WebSocketHub, cfg.App.JwtSecret, hubLogger)

	// 6. Controllers
	guards := controller.NewGuards(cfg.App.JwtSecret, c.WorkspaceService)
	c.WorkspaceController = controller.NewWorkspaceController(c.WorkspaceService, guards)
	c.ContactController = controller.NewContactController(c.ContactService, guards)
	c.DuplicateController = controller.NewDuplicateController(c.DuplicateService, guards)

	return c
}

func connectRedis(url string, log logger.ILogger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Failed to connect to Redis, using in-process lock and local-only push", map[string]interface{}{"error": err.Error()})
		rdb.Close()
		return nil
	}
	return rdb
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
