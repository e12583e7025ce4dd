package models

import (
	"time"

	"roundly/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"size:128" json:"name"`
	Email         string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string  `gorm:"size:255" json:"-"`
	AccountType   string  `gorm:"size:20;not null;index;default:'INDIVIDUAL'" json:"account_type"`
	AccountNumber string  `gorm:"size:16;index" json:"account_number"` // generated once: prefix + 9-digit id
	RoundUpAmount float64 `gorm:"not null;default:1" json:"round_up_amount"`
	AvatarURL     string  `gorm:"size:512" json:"avatar_url"`
	GoogleID      *string `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	IsDemo        bool    `gorm:"default:false" json:"is_demo"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool { return u.AccountType == domain.AccountTypeAdmin }
