package unitofwork

import (
	"context"

	"brandlink-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkspaceRepository() contract.WorkspaceRepository
	WorkspaceMemberRepository() contract.WorkspaceMemberRepository
	ContactRepository() contract.ContactRepository
}
