package mapper

import (
	"time"

	"brandlink-be/internal/entity"
	"brandlink-be/internal/model"

	"gorm.io/gorm"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}
	var deletedAt *time.Time
	if w.DeletedAt.Valid {
		t := w.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workspace{
		Id:        w.Id,
		Name:      w.Name,
		OwnerId:   w.OwnerId,
		CreatedAt: w.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: w.DeletedAt.Valid,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if w.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *w.DeletedAt, Valid: true}
	} else if w.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workspace{
		Id:        w.Id,
		Name:      w.Name,
		OwnerId:   w.OwnerId,
		CreatedAt: w.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *WorkspaceMapper) ToEntities(workspaces []*model.Workspace) []*entity.Workspace {
	entities := make([]*entity.Workspace, len(workspaces))
	for i, w := range workspaces {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

func (m *WorkspaceMapper) MemberToEntity(wm *model.WorkspaceMember) *entity.WorkspaceMember {
	if wm == nil {
		return nil
	}
	return &entity.WorkspaceMember{
		Id:          wm.Id,
		WorkspaceId: wm.WorkspaceId,
		UserId:      wm.UserId,
		Role:        entity.WorkspaceRole(wm.Role),
		CreatedAt:   wm.CreatedAt,
	}
}

func (m *WorkspaceMapper) MemberToModel(wm *entity.WorkspaceMember) *model.WorkspaceMember {
	if wm == nil {
		return nil
	}
	return &model.WorkspaceMember{
		Id:          wm.Id,
		WorkspaceId: wm.WorkspaceId,
		UserId:      wm.UserId,
		Role:        string(wm.Role),
		CreatedAt:   wm.CreatedAt,
	}
}

func (m *WorkspaceMapper) MembersToEntities(members []*model.WorkspaceMember) []*entity.WorkspaceMember {
	entities := make([]*entity.WorkspaceMember, len(members))
	for i, wm := range members {
		entities[i] = m.MemberToEntity(wm)
	}
	return entities
}
