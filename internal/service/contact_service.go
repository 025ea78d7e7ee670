package service

import (
	"context"
	"fmt"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/entity"
	"brandlink-be/internal/pkg/apperror"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/repository/memory"
	"brandlink-be/internal/repository/specification"
	"brandlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const maxContactPageSize = 500

type IContactService interface {
	GetAll(ctx context.Context, workspaceId uuid.UUID, req *dto.GetAllContactsRequest) ([]*dto.ContactResponse, error)
	Create(ctx context.Context, workspaceId uuid.UUID, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error)
	Show(ctx context.Context, workspaceId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error)
	Update(ctx context.Context, workspaceId uuid.UUID, req *dto.UpdateContactRequest) (*dto.UpdateContactResponse, error)
	Delete(ctx context.Context, workspaceId uuid.UUID, id uuid.UUID) error
}

type contactService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	cache            *memory.DuplicateCache
	logger           logger.ILogger
}

func NewContactService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	cache *memory.DuplicateCache,
	logger logger.ILogger,
) IContactService {
	return &contactService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		cache:            cache,
		logger:           logger,
	}
}

func (s *contactService) GetAll(ctx context.Context, workspaceId uuid.UUID, req *dto.GetAllContactsRequest) ([]*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	}
	if req != nil {
		if req.Query != "" {
			specs = append(specs, specification.ContactSearchQuery{Query: req.Query})
		}
		if req.Status != "" {
			specs = append(specs, specification.ByContactStatus{Status: req.Status})
		}
		if req.Limit > 0 {
			limit := req.Limit
			if limit > maxContactPageSize {
				limit = maxContactPageSize
			}
			page := req.Page
			if page < 1 {
				page = 1
			}
			specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
		}
	}

	contacts, err := uow.ContactRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		res := toContactResponse(c)
		result = append(result, &res)
	}
	return result, nil
}

func (s *contactService) Create(ctx context.Context, workspaceId uuid.UUID, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact := entity.Contact{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		CreatedAt:   time.Now(),
	}
	applyContactFields(&contact, req.ContactFields)

	if err := uow.ContactRepository().Create(ctx, &contact); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, workspaceId, "contact_created")
	return &dto.CreateContactResponse{Id: contact.Id}, nil
}

func (s *contactService) Show(ctx context.Context, workspaceId uuid.UUID, id uuid.UUID) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("%w: contact %s", apperror.ErrNotFound, id)
	}

	res := toContactResponse(contact)
	return &res, nil
}

func (s *contactService) Update(ctx context.Context, workspaceId uuid.UUID, req *dto.UpdateContactRequest) (*dto.UpdateContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, fmt.Errorf("%w: contact %s", apperror.ErrNotFound, req.Id)
	}

	applyContactFields(contact, req.ContactFields)
	now := time.Now()
	contact.UpdatedAt = &now

	if err := uow.ContactRepository().Update(ctx, contact); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, workspaceId, "contact_updated")
	return &dto.UpdateContactResponse{Id: contact.Id}, nil
}

func (s *contactService) Delete(ctx context.Context, workspaceId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.ForUpdate{},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return fmt.Errorf("%w: contact %s", apperror.ErrNotFound, id)
	}

	if err := uow.ContactRepository().Delete(ctx, workspaceId, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.afterWrite(ctx, workspaceId, "contact_deleted")
	return nil
}

// afterWrite drops the stale scan and queues a fresh one. A failed enqueue is
// logged only; the next periodic rescan will catch up.
func (s *contactService) afterWrite(ctx context.Context, workspaceId uuid.UUID, reason string) {
	s.cache.Invalidate(workspaceId)
	if err := s.publisherService.EnqueueScan(ctx, workspaceId, reason); err != nil {
		s.logger.Warn("CONTACT", "Failed to enqueue duplicate scan", map[string]interface{}{
			"workspace_id": workspaceId.String(),
			"reason":       reason,
			"error":        err.Error(),
		})
	}
}
