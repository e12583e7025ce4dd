package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is a single bank debit plus its earmarked round-up.
// Status moves PENDING -> MAPPED|FAILED; FAILED -> PENDING again only via
// reprocessing. MAPPED rows are never reverted here.
type Transaction struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;index" json:"user_id"`
	Merchant   *string `gorm:"size:128;index" json:"merchant"`
	Amount     float64 `gorm:"not null" json:"amount"`
	RoundUp    float64 `gorm:"not null" json:"round_up"`
	TotalDebit float64 `gorm:"not null" json:"total_debit"`
	Category   string  `gorm:"size:64" json:"category"`
	Status     string  `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	Ticker     *string `gorm:"size:12" json:"ticker"` // set once mapped
	Date       time.Time      `gorm:"index" json:"date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
