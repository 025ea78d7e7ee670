package dto

import (
	"time"

	"github.com/google/uuid"
)

type ContactFields struct {
	Name           *string    `json:"name" validate:"omitempty,max=255"`
	Email          *string    `json:"email" validate:"omitempty,max=320"`
	Company        *string    `json:"company" validate:"omitempty,max=255"`
	Title          *string    `json:"title" validate:"omitempty,max=255"`
	Phone          *string    `json:"phone" validate:"omitempty,max=64"`
	Seniority      *string    `json:"seniority"`
	Department     *string    `json:"department"`
	Tags           []string   `json:"tags" validate:"omitempty,dive,max=64"`
	Notes          *string    `json:"notes"`
	NextStep       *string    `json:"next_step"`
	RemindAt       *time.Time `json:"remind_at"`
	Status         *string    `json:"status" validate:"omitempty,oneof=new contacted replied negotiating partnered archived"`
	VerifiedStatus *string    `json:"verified_status" validate:"omitempty,oneof=unverified valid risky invalid"`
}

type CreateContactRequest struct {
	ContactFields
}

type CreateContactResponse struct {
	Id uuid.UUID `json:"id"`
}

// UpdateContactRequest replaces every field; omitted optionals are cleared.
type UpdateContactRequest struct {
	Id uuid.UUID
	ContactFields
}

type UpdateContactResponse struct {
	Id uuid.UUID `json:"id"`
}

type ContactResponse struct {
	Id             uuid.UUID  `json:"id"`
	WorkspaceId    uuid.UUID  `json:"workspace_id"`
	Name           *string    `json:"name"`
	Email          *string    `json:"email"`
	Company        *string    `json:"company"`
	Title          *string    `json:"title"`
	Phone          *string    `json:"phone"`
	Seniority      *string    `json:"seniority"`
	Department     *string    `json:"department"`
	Tags           []string   `json:"tags"`
	Notes          *string    `json:"notes"`
	NextStep       *string    `json:"next_step"`
	RemindAt       *time.Time `json:"remind_at"`
	Status         *string    `json:"status"`
	VerifiedStatus *string    `json:"verified_status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type GetAllContactsRequest struct {
	Query  string `query:"q"`
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}
