package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Type      string `gorm:"size:50;not null;index" json:"type"`
	Title     string `gorm:"size:255" json:"title"`
	Message   string `gorm:"type:text" json:"message"`
	Reference string `gorm:"size:64" json:"reference"` // sync run id the row belongs to
	Read      bool   `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
