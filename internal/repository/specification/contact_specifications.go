package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWorkspaceID scopes a query to one tenant. Every contact read goes through it.
type ByWorkspaceID struct {
	WorkspaceID uuid.UUID
}

func (s ByWorkspaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workspace_id = ?", s.WorkspaceID)
}

// ContactSearchQuery matches name, email or company, case-insensitively.
type ContactSearchQuery struct {
	Query string
}

func (s ContactSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return db
	}
	pattern := "%" + strings.ToLower(q) + "%"
	// LOWER + LIKE instead of ILIKE so the query also runs on SQLite
	return db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern, pattern)
}

type ByContactStatus struct {
	Status string
}

func (s ByContactStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
