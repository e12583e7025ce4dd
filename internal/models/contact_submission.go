package models

import (
	"time"

	"gorm.io/gorm"
)

type ContactSubmission struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:128" json:"name"`
	Email     string `gorm:"size:255;not null;index" json:"email"`
	Subject   string `gorm:"size:255" json:"subject"`
	Message   string `gorm:"type:text" json:"message"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ContactSubmission) TableName() string { return "contact_submissions" }
