package models

import (
	"time"

	"gorm.io/gorm"
)

// Family and Business are grouping tenants. Members map 1:1 to users and are
// only used to compute the set of user ids a tenant dashboard aggregates.

type Family struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	OwnerID   uint   `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}

func (Family) TableName() string { return "families" }

type FamilyMember struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FamilyID  uint   `gorm:"not null;index;uniqueIndex:idx_family_members_family_user" json:"family_id"`
	UserID    uint   `gorm:"not null;index;uniqueIndex:idx_family_members_family_user" json:"user_id"`
	Role      string `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (FamilyMember) TableName() string { return "family_members" }

type Business struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	OwnerID   uint   `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Members []BusinessMember `gorm:"foreignKey:BusinessID" json:"members,omitempty"`
}

func (Business) TableName() string { return "businesses" }

type BusinessMember struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BusinessID uint   `gorm:"not null;index;uniqueIndex:idx_business_members_business_user" json:"business_id"`
	UserID     uint   `gorm:"not null;index;uniqueIndex:idx_business_members_business_user" json:"user_id"`
	Role       string `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (BusinessMember) TableName() string { return "business_members" }
