package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContactStatus string

const (
	ContactStatusNew         ContactStatus = "new"
	ContactStatusContacted   ContactStatus = "contacted"
	ContactStatusReplied     ContactStatus = "replied"
	ContactStatusNegotiating ContactStatus = "negotiating"
	ContactStatusPartnered   ContactStatus = "partnered"
	ContactStatusArchived    ContactStatus = "archived"
)

type VerifiedStatus string

const (
	VerifiedStatusUnverified VerifiedStatus = "unverified"
	VerifiedStatusValid      VerifiedStatus = "valid"
	VerifiedStatusRisky      VerifiedStatus = "risky"
	VerifiedStatusInvalid    VerifiedStatus = "invalid"
)

// Contact is a brand-side person a creator may reach out to.
// Optional attributes are pointers: nil means "not provided".
type Contact struct {
	Id             uuid.UUID
	WorkspaceId    uuid.UUID
	Name           *string
	Email          *string
	Company        *string
	Title          *string
	Phone          *string
	Seniority      *string
	Department     *string
	NextStep       *string
	Tags           TagSet
	Notes          *string
	RemindAt       *time.Time
	Status         *ContactStatus
	VerifiedStatus *VerifiedStatus
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// TagSet is a set of tags compared by exact string equality.
// Order is kept for stable output but carries no meaning.
type TagSet []string

func (t TagSet) Contains(tag string) bool {
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Union returns a new set holding every tag of t followed by the tags of
// other that t does not already contain. Duplicates inside either input
// are collapsed.
func (t TagSet) Union(other TagSet) TagSet {
	result := make(TagSet, 0, len(t)+len(other))
	seen := make(map[string]struct{}, len(t)+len(other))
	for _, tags := range []TagSet{t, other} {
		for _, tag := range tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			result = append(result, tag)
		}
	}
	return result
}
