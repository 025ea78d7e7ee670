package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByMemberUserID selects workspaces the user belongs to.
type ByMemberUserID struct {
	UserID uuid.UUID
}

func (s ByMemberUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", s.UserID)
}

// MemberOf selects a single membership row.
type MemberOf struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
}

func (s MemberOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ? AND user_id = ?", s.WorkspaceID, s.UserID)
}
