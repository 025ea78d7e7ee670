package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/lock"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/repository/memory"
	"brandlink-be/internal/repository/unitofwork"
	"brandlink-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type scanCall struct {
	WorkspaceId uuid.UUID
	Reason      string
}

type stubPublisher struct {
	mu    sync.Mutex
	scans []scanCall
	err   error
}

func (p *stubPublisher) Publish(context.Context, []byte) error { return p.err }

func (p *stubPublisher) EnqueueScan(_ context.Context, workspaceId uuid.UUID, reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scans = append(p.scans, scanCall{workspaceId, reason})
	return p.err
}

func (p *stubPublisher) calls() []scanCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]scanCall(nil), p.scans...)
}

type mergedEvent struct {
	WorkspaceId, ActorId, KeptId uuid.UUID
	RemovedIds                   []uuid.UUID
}

type detectedEvent struct {
	WorkspaceId  uuid.UUID
	GroupCount   int
	ContactCount int
}

type stubEvents struct {
	mu       sync.Mutex
	merged   []mergedEvent
	detected []detectedEvent
}

func (e *stubEvents) PublishContactsMerged(_ context.Context, workspaceId, actorId, keptId uuid.UUID, removedIds []uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.merged = append(e.merged, mergedEvent{workspaceId, actorId, keptId, removedIds})
}

func (e *stubEvents) PublishDuplicatesDetected(_ context.Context, workspaceId uuid.UUID, groupCount, contactCount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detected = append(e.detected, detectedEvent{workspaceId, groupCount, contactCount})
}

func (e *stubEvents) detectedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.detected)
}

type testEnv struct {
	db         *gorm.DB
	factory    unitofwork.RepositoryFactory
	publisher  *stubPublisher
	events     *stubEvents
	cache      *memory.DuplicateCache
	locker     *lock.LocalLocker
	workspaces IWorkspaceService
	contacts   IContactService
	duplicates IDuplicateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		db:        db,
		factory:   unitofwork.NewRepositoryFactory(db),
		publisher: &stubPublisher{},
		events:    &stubEvents{},
		cache:     memory.NewDuplicateCache(time.Minute),
		locker:    lock.NewLocalLocker(),
	}
	log := logger.NewNopLogger()
	env.workspaces = NewWorkspaceService(env.factory, log)
	env.contacts = NewContactService(env.factory, env.publisher, env.cache, log)
	env.duplicates = NewDuplicateService(env.factory, env.locker, time.Minute, env.cache, env.events, log)
	return env
}

func (env *testEnv) newWorkspace(t *testing.T, owner uuid.UUID) uuid.UUID {
	t.Helper()
	res, err := env.workspaces.Create(context.Background(), owner, &dto.CreateWorkspaceRequest{Name: "Studio"})
	require.NoError(t, err)
	return res.Id
}

func (env *testEnv) newContact(t *testing.T, workspaceId uuid.UUID, f dto.ContactFields) uuid.UUID {
	t.Helper()
	res, err := env.contacts.Create(context.Background(), workspaceId, &dto.CreateContactRequest{ContactFields: f})
	require.NoError(t, err)
	return res.Id
}

func str(s string) *string {
	return &s
}
