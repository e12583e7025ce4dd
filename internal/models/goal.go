package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a savings target shown on the dashboard.
type Goal struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	UserID        uint    `gorm:"not null;index" json:"user_id"`
	Name          string  `gorm:"size:128;not null" json:"name"`
	TargetAmount  float64 `gorm:"not null" json:"target_amount"`
	CurrentAmount float64 `gorm:"not null;default:0" json:"current_amount"`
	TargetDate    *time.Time     `json:"target_date"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Goal) TableName() string { return "goals" }
