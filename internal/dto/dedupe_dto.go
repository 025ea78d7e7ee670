package dto

import (
	"github.com/google/uuid"
)

type DuplicateGroupResponse struct {
	Key      string            `json:"key"`
	Count    int               `json:"count"`
	Contacts []ContactResponse `json:"contacts"`
}

type ScanWorkspaceResponse struct {
	GroupCount   int `json:"group_count"`
	ContactCount int `json:"contact_count"`
}

type MergeContactsRequest struct {
	KeepId     uuid.UUID   `json:"keep_id" validate:"required"`
	ContactIds []uuid.UUID `json:"contact_ids" validate:"required,min=2"`
}

type MergeContactsResponse struct {
	Contact    ContactResponse `json:"contact"`
	RemovedIds []uuid.UUID     `json:"removed_ids"`
}

// DedupeScanMessage is the payload of a queued rescan job.
type DedupeScanMessage struct {
	WorkspaceId uuid.UUID `json:"workspace_id"`
	Reason      string    `json:"reason"`
}

// ActivityMessage is what the websocket pushes to workspace members.
type ActivityMessage struct {
	Type        string                 `json:"type"`
	WorkspaceId string                 `json:"workspace_id"`
	Data        map[string]interface{} `json:"data"`
	OccurredAt  string                 `json:"occurred_at"`
}
