package service

import (
	"brandlink-be/internal/dto"
	"brandlink-be/internal/entity"
	"brandlink-be/pkg/dedupe"
)

func toContactResponse(c *entity.Contact) dto.ContactResponse {
	res := dto.ContactResponse{
		Id:          c.Id,
		WorkspaceId: c.WorkspaceId,
		Name:        c.Name,
		Email:       c.Email,
		Company:     c.Company,
		Title:       c.Title,
		Phone:       c.Phone,
		Seniority:   c.Seniority,
		Department:  c.Department,
		Tags:        make([]string, 0, len(c.Tags)),
		Notes:       c.Notes,
		NextStep:    c.NextStep,
		RemindAt:    c.RemindAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	res.Tags = append(res.Tags, c.Tags...)
	if c.Status != nil {
		s := string(*c.Status)
		res.Status = &s
	}
	if c.VerifiedStatus != nil {
		v := string(*c.VerifiedStatus)
		res.VerifiedStatus = &v
	}
	return res
}

func toDuplicateGroupResponses(groups []dedupe.DuplicateGroup) []dto.DuplicateGroupResponse {
	out := make([]dto.DuplicateGroupResponse, 0, len(groups))
	for _, g := range groups {
		contacts := make([]dto.ContactResponse, 0, len(g.Contacts))
		for _, c := range g.Contacts {
			contacts = append(contacts, toContactResponse(c))
		}
		out = append(out, dto.DuplicateGroupResponse{
			Key:      g.Key,
			Count:    g.Count,
			Contacts: contacts,
		})
	}
	return out
}

// applyContactFields overwrites every field of c. Fields absent in f are cleared.
func applyContactFields(c *entity.Contact, f dto.ContactFields) {
	c.Name = f.Name
	c.Email = f.Email
	c.Company = f.Company
	c.Title = f.Title
	c.Phone = f.Phone
	c.Seniority = f.Seniority
	c.Department = f.Department
	c.Notes = f.Notes
	c.NextStep = f.NextStep
	c.RemindAt = f.RemindAt
	c.Tags = entity.TagSet{}.Union(f.Tags)

	c.Status = nil
	if f.Status != nil {
		s := entity.ContactStatus(*f.Status)
		c.Status = &s
	}
	c.VerifiedStatus = nil
	if f.VerifiedStatus != nil {
		v := entity.VerifiedStatus(*f.VerifiedStatus)
		c.VerifiedStatus = &v
	}
}
