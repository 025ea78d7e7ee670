package mapper

import (
	"time"

	"brandlink-be/internal/entity"
	"brandlink-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContactMapper struct{}

func NewContactMapper() *ContactMapper {
	return &ContactMapper{}
}

func (m *ContactMapper) ToEntity(c *model.Contact) *entity.Contact {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var status *entity.ContactStatus
	if c.Status != nil {
		s := entity.ContactStatus(*c.Status)
		status = &s
	}

	var verified *entity.VerifiedStatus
	if c.VerifiedStatus != nil {
		v := entity.VerifiedStatus(*c.VerifiedStatus)
		verified = &v
	}

	tags := make(entity.TagSet, 0, len(c.Tags))
	tags = append(tags, c.Tags...)

	return &entity.Contact{
		Id:             c.Id,
		WorkspaceId:    c.WorkspaceId,
		Name:           c.Name,
		Email:          c.Email,
		Company:        c.Company,
		Title:          c.Title,
		Phone:          c.Phone,
		Seniority:      c.Seniority,
		Department:     c.Department,
		NextStep:       c.NextStep,
		Tags:           tags,
		Notes:          c.Notes,
		RemindAt:       c.RemindAt,
		Status:         status,
		VerifiedStatus: verified,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      c.DeletedAt.Valid,
	}
}

func (m *ContactMapper) ToModel(c *entity.Contact) *model.Contact {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var status *string
	if c.Status != nil {
		s := string(*c.Status)
		status = &s
	}

	var verified *string
	if c.VerifiedStatus != nil {
		v := string(*c.VerifiedStatus)
		verified = &v
	}

	tags := make([]string, 0, len(c.Tags))
	tags = append(tags, c.Tags...)

	return &model.Contact{
		Id:             c.Id,
		WorkspaceId:    c.WorkspaceId,
		Name:           c.Name,
		Email:          c.Email,
		Company:        c.Company,
		Title:          c.Title,
		Phone:          c.Phone,
		Seniority:      c.Seniority,
		Department:     c.Department,
		NextStep:       c.NextStep,
		Tags:           datatypes.NewJSONSlice(tags),
		Notes:          c.Notes,
		RemindAt:       c.RemindAt,
		Status:         status,
		VerifiedStatus: verified,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *ContactMapper) ToEntities(contacts []*model.Contact) []*entity.Contact {
	entities := make([]*entity.Contact, len(contacts))
	for i, c := range contacts {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
