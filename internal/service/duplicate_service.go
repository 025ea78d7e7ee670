package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/entity"
	"brandlink-be/internal/pkg/apperror"
	"brandlink-be/internal/pkg/lock"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/repository/memory"
	"brandlink-be/internal/repository/specification"
	"brandlink-be/internal/repository/unitofwork"
	"brandlink-be/pkg/contactevents"
	"brandlink-be/pkg/dedupe"

	"github.com/google/uuid"
)

type IDuplicateService interface {
	FindDuplicates(ctx context.Context, workspaceId uuid.UUID) ([]dto.DuplicateGroupResponse, error)
	ScanWorkspace(ctx context.Context, workspaceId uuid.UUID) (*dto.ScanWorkspaceResponse, error)
	PreviewMerge(ctx context.Context, workspaceId uuid.UUID, req *dto.MergeContactsRequest) (*dto.MergeContactsResponse, error)
	Merge(ctx context.Context, workspaceId, actorId uuid.UUID, req *dto.MergeContactsRequest) (*dto.MergeContactsResponse, error)
}

type duplicateService struct {
	uowFactory unitofwork.RepositoryFactory
	locker     lock.WorkspaceLocker
	lockTTL    time.Duration
	cache      *memory.DuplicateCache
	events     contactevents.Publisher
	logger     logger.ILogger
}

func NewDuplicateService(
	uowFactory unitofwork.RepositoryFactory,
	locker lock.WorkspaceLocker,
	lockTTL time.Duration,
	cache *memory.DuplicateCache,
	events contactevents.Publisher,
	logger logger.ILogger,
) IDuplicateService {
	return &duplicateService{
		uowFactory: uowFactory,
		locker:     locker,
		lockTTL:    lockTTL,
		cache:      cache,
		events:     events,
		logger:     logger,
	}
}

func (s *duplicateService) FindDuplicates(ctx context.Context, workspaceId uuid.UUID) ([]dto.DuplicateGroupResponse, error) {
	if groups, ok := s.cache.Get(workspaceId); ok {
		return groups, nil
	}

	groups, err := s.computeGroups(ctx, workspaceId)
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *duplicateService) ScanWorkspace(ctx context.Context, workspaceId uuid.UUID) (*dto.ScanWorkspaceResponse, error) {
	groups, err := s.computeGroups(ctx, workspaceId)
	if err != nil {
		return nil, err
	}

	res := &dto.ScanWorkspaceResponse{GroupCount: len(groups)}
	for _, g := range groups {
		res.ContactCount += g.Count
	}
	s.logger.Info("DEDUPE", "Workspace scanned", map[string]interface{}{
		"workspace_id":  workspaceId.String(),
		"group_count":   res.GroupCount,
		"contact_count": res.ContactCount,
	})
	return res, nil
}

// computeGroups runs the duplicate finder over the workspace and refreshes the
// cache, unless a write invalidated the workspace while the scan was reading.
func (s *duplicateService) computeGroups(ctx context.Context, workspaceId uuid.UUID) ([]dto.DuplicateGroupResponse, error) {
	generation := s.cache.Generation(workspaceId)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: workspaceId})
	if err != nil {
		return nil, err
	}

	groups := toDuplicateGroupResponses(dedupe.FindDuplicateGroups(contacts))
	if !s.cache.SaveIfCurrent(workspaceId, generation, groups) {
		s.logger.Debug("DEDUPE", "Scan overlapped a write, result not cached", map[string]interface{}{"workspace_id": workspaceId.String()})
	}
	return groups, nil
}

func (s *duplicateService) PreviewMerge(ctx context.Context, workspaceId uuid.UUID, req *dto.MergeContactsRequest) (*dto.MergeContactsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contacts, err := s.loadForMerge(ctx, uow, workspaceId, req.ContactIds, false)
	if err != nil {
		return nil, err
	}

	merged, ok := dedupe.MergeContacts(contacts, req.KeepId)
	if !ok {
		return nil, fmt.Errorf("%w: keep contact %s is not among the merged contacts", apperror.ErrNotFound, req.KeepId)
	}

	return &dto.MergeContactsResponse{
		Contact:    toContactResponse(merged),
		RemovedIds: otherIds(contacts, merged.Id),
	}, nil
}

func (s *duplicateService) Merge(ctx context.Context, workspaceId, actorId uuid.UUID, req *dto.MergeContactsRequest) (*dto.MergeContactsResponse, error) {
	unlock, err := s.locker.Acquire(ctx, lock.MergeKey(workspaceId), s.lockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			return nil, fmt.Errorf("%w: a merge is already running in this workspace", apperror.ErrConflict)
		}
		return nil, err
	}
	defer func() {
		// release on a fresh context so a cancelled request still frees the lock
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := unlock(releaseCtx); err != nil {
			s.logger.Warn("DEDUPE", "Failed to release merge lock", map[string]interface{}{"workspace_id": workspaceId.String(), "error": err.Error()})
		}
	}()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// rows stay locked until commit, so contact edits queue behind the merge
	contacts, err := s.loadForMerge(ctx, uow, workspaceId, req.ContactIds, true)
	if err != nil {
		return nil, err
	}

	merged, ok := dedupe.MergeContacts(contacts, req.KeepId)
	if !ok {
		return nil, fmt.Errorf("%w: keep contact %s is not among the merged contacts", apperror.ErrNotFound, req.KeepId)
	}
	now := time.Now()
	merged.UpdatedAt = &now
	removed := otherIds(contacts, merged.Id)

	if err := uow.ContactRepository().Update(ctx, merged); err != nil {
		return nil, err
	}
	deleted, err := uow.ContactRepository().DeleteMany(ctx, workspaceId, removed)
	if err != nil {
		return nil, err
	}
	if int(deleted) != len(removed) {
		// someone deleted a contact between our read and the tx
		return nil, fmt.Errorf("%w: expected to remove %d contacts, removed %d", apperror.ErrConflict, len(removed), deleted)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(workspaceId)
	s.events.PublishContactsMerged(ctx, workspaceId, actorId, merged.Id, removed)

	s.logger.Info("DEDUPE", "Contacts merged", map[string]interface{}{
		"workspace_id": workspaceId.String(),
		"kept_id":      merged.Id.String(),
		"removed":      len(removed),
	})

	return &dto.MergeContactsResponse{
		Contact:    toContactResponse(merged),
		RemovedIds: removed,
	}, nil
}

// loadForMerge fetches ids inside the workspace, in request order.
// Any missing id fails the whole merge.
func (s *duplicateService) loadForMerge(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID, ids []uuid.UUID, forUpdate bool) ([]*entity.Contact, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) < 2 {
		return nil, fmt.Errorf("%w: at least two distinct contacts are required", apperror.ErrInvalidInput)
	}

	specs := []specification.Specification{
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ByIDs{IDs: unique},
	}
	if forUpdate {
		specs = append(specs, specification.ForUpdate{})
	}
	found, err := uow.ContactRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Contact, len(found))
	for _, c := range found {
		byId[c.Id] = c
	}

	ordered := make([]*entity.Contact, 0, len(unique))
	for _, id := range unique {
		c, ok := byId[id]
		if !ok {
			return nil, fmt.Errorf("%w: contact %s", apperror.ErrNotFound, id)
		}
		ordered = append(ordered, c)
	}
	return ordered, nil
}

func otherIds(contacts []*entity.Contact, keep uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(contacts))
	for _, c := range contacts {
		if c.Id != keep {
			out = append(out, c.Id)
		}
	}
	return out
}
