package models

import (
	"time"

	"gorm.io/gorm"
)

// MerchantMapping associates a merchant name with a stock ticker.
// The table is an append-only confirmation log: the engine inserts a new
// APPROVED row for every successful match instead of updating existing ones,
// so several rows may exist per merchant. Selection always takes the approved
// row with the highest confidence.
type MerchantMapping struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	MerchantName string  `gorm:"size:128;not null;index" json:"merchant_name"`
	Ticker       string  `gorm:"size:12;not null" json:"ticker"`
	Confidence   float64 `gorm:"not null;default:0" json:"confidence"`
	Status       string  `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	CompanyName  string  `gorm:"size:128" json:"company_name"`
	Source       string  `gorm:"size:20;not null;default:'USER'" json:"source"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MerchantMapping) TableName() string {
	return "llm_mappings"
}
