package dedupe

import (
	"time"

	"brandlink-be/internal/entity"

	"github.com/google/uuid"
)

const (
	NotesMergeSeparator        = "\n---\n"
	NotesMergeProvenancePrefix = "Merged from "
)

// MergeContacts folds every contact in the group into the one whose id is
// keepID. It returns false when keepID is not in the group.
//
// The target's own values always win. Empty scalar fields and RemindAt take
// the first value found among the others, tags are unioned, and notes from
// each other contact are appended with a provenance trailer. The input
// contacts are not modified.
func MergeContacts(contacts []*entity.Contact, keepID uuid.UUID) (*entity.Contact, bool) {
	var target *entity.Contact
	others := make([]*entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if target == nil && c.Id == keepID {
			target = c
			continue
		}
		others = append(others, c)
	}
	if target == nil {
		return nil, false
	}

	merged := cloneContact(target)

	for _, other := range others {
		merged.Title = firstPresent(merged.Title, other.Title)
		merged.Phone = firstPresent(merged.Phone, other.Phone)
		merged.Seniority = firstPresent(merged.Seniority, other.Seniority)
		merged.Department = firstPresent(merged.Department, other.Department)
		merged.NextStep = firstPresent(merged.NextStep, other.NextStep)

		if merged.RemindAt == nil && other.RemindAt != nil {
			t := *other.RemindAt
			merged.RemindAt = &t
		}

		merged.Tags = merged.Tags.Union(other.Tags)

		if !IsBlank(other.Notes) {
			merged.Notes = appendNotes(merged.Notes, *other.Notes, other.Id)
		}
	}

	merged.Id = target.Id
	merged.WorkspaceId = target.WorkspaceId

	return merged, true
}

func firstPresent(current, candidate *string) *string {
	if !IsBlank(current) || IsBlank(candidate) {
		return current
	}
	v := *candidate
	return &v
}

func appendNotes(existing *string, text string, from uuid.UUID) *string {
	block := text + NotesMergeSeparator + NotesMergeProvenancePrefix + from.String()

	var notes string
	if IsBlank(existing) {
		notes = block
	} else {
		notes = *existing + NotesMergeSeparator + block
	}
	return &notes
}

func cloneContact(c *entity.Contact) *entity.Contact {
	out := *c
	out.Name = cloneString(c.Name)
	out.Email = cloneString(c.Email)
	out.Company = cloneString(c.Company)
	out.Title = cloneString(c.Title)
	out.Phone = cloneString(c.Phone)
	out.Seniority = cloneString(c.Seniority)
	out.Department = cloneString(c.Department)
	out.NextStep = cloneString(c.NextStep)
	out.Notes = cloneString(c.Notes)
	out.RemindAt = cloneTime(c.RemindAt)
	out.Tags = entity.TagSet{}.Union(c.Tags)
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
