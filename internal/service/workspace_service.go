package service

import (
	"context"
	"fmt"
	"time"

	"brandlink-be/internal/dto"
	"brandlink-be/internal/entity"
	"brandlink-be/internal/pkg/apperror"
	"brandlink-be/internal/pkg/logger"
	"brandlink-be/internal/repository/specification"
	"brandlink-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.WorkspaceResponse, error)
	ListIds(ctx context.Context) ([]uuid.UUID, error)
	AddMember(ctx context.Context, workspaceId uuid.UUID, req *dto.AddMemberRequest) (*dto.AddMemberResponse, error)
	IsMember(ctx context.Context, workspaceId, userId uuid.UUID) (bool, error)
	MemberIds(ctx context.Context, workspaceId uuid.UUID) ([]uuid.UUID, error)
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *workspaceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.CreateWorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	workspace := entity.Workspace{
		Id:        uuid.New(),
		Name:      req.Name,
		OwnerId:   userId,
		CreatedAt: now,
	}
	if err := uow.WorkspaceRepository().Create(ctx, &workspace); err != nil {
		return nil, err
	}

	owner := entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: workspace.Id,
		UserId:      userId,
		Role:        entity.WorkspaceRoleOwner,
		CreatedAt:   now,
	}
	if err := uow.WorkspaceMemberRepository().Create(ctx, &owner); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("WORKSPACE", "Workspace created", map[string]interface{}{"workspace_id": workspace.Id.String(), "owner_id": userId.String()})
	return &dto.CreateWorkspaceResponse{Id: workspace.Id}, nil
}

func (s *workspaceService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.WorkspaceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx, specification.ByMemberUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		result = append(result, &dto.WorkspaceResponse{
			Id:        w.Id,
			Name:      w.Name,
			OwnerId:   w.OwnerId,
			CreatedAt: w.CreatedAt,
		})
	}
	return result, nil
}

// ListIds returns every workspace. Used by the periodic rescan.
func (s *workspaceService) ListIds(ctx context.Context) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspaces, err := uow.WorkspaceRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(workspaces))
	for _, w := range workspaces {
		ids = append(ids, w.Id)
	}
	return ids, nil
}

func (s *workspaceService) AddMember(ctx context.Context, workspaceId uuid.UUID, req *dto.AddMemberRequest) (*dto.AddMemberResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fmt.Errorf("%w: workspace %s", apperror.ErrNotFound, workspaceId)
	}

	existing, err := uow.WorkspaceMemberRepository().FindOne(ctx, specification.MemberOf{WorkspaceID: workspaceId, UserID: req.UserId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &dto.AddMemberResponse{Id: existing.Id, Created: false}, nil
	}

	role := entity.WorkspaceRoleMember
	if req.Role != "" {
		role = entity.WorkspaceRole(req.Role)
	}
	member := entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		UserId:      req.UserId,
		Role:        role,
		CreatedAt:   time.Now(),
	}
	if err := uow.WorkspaceMemberRepository().Create(ctx, &member); err != nil {
		return nil, err
	}

	s.logger.Info("WORKSPACE", "Member added", map[string]interface{}{"workspace_id": workspaceId.String(), "user_id": req.UserId.String(), "role": string(role)})
	return &dto.AddMemberResponse{Id: member.Id, Created: true}, nil
}

func (s *workspaceService) IsMember(ctx context.Context, workspaceId, userId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	member, err := uow.WorkspaceMemberRepository().FindOne(ctx, specification.MemberOf{WorkspaceID: workspaceId, UserID: userId})
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (s *workspaceService) MemberIds(ctx context.Context, workspaceId uuid.UUID) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	members, err := uow.WorkspaceMemberRepository().FindAll(ctx, specification.ByWorkspaceID{WorkspaceID: workspaceId})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserId)
	}
	return ids, nil
}
