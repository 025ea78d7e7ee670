package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Contact struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	WorkspaceId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name           *string                     `gorm:"type:varchar(255)"`
	Email          *string                     `gorm:"type:varchar(320);index"`
	Company        *string                     `gorm:"type:varchar(255)"`
	Title          *string                     `gorm:"type:varchar(255)"`
	Phone          *string                     `gorm:"type:varchar(64)"`
	Seniority      *string                     `gorm:"type:varchar(64)"`
	Department     *string                     `gorm:"type:varchar(128)"`
	NextStep       *string                     `gorm:"type:text"`
	Tags           datatypes.JSONSlice[string] `gorm:"not null"`
	Notes          *string                     `gorm:"type:text"`
	RemindAt       *time.Time
	Status         *string        `gorm:"type:varchar(32)"`
	VerifiedStatus *string        `gorm:"type:varchar(32)"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Contact) TableName() string {
	return "contacts"
}
