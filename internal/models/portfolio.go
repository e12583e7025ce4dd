package models

import (
	"time"

	"gorm.io/gorm"
)

// Portfolio accumulates earmarked round-up value per (user, ticker).
// TotalValue only ever grows here; shares and prices stay zero until an
// external settlement process executes the purchase.
type Portfolio struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	UserID       uint    `gorm:"not null;uniqueIndex:idx_portfolios_user_ticker" json:"user_id"`
	Ticker       string  `gorm:"size:12;not null;uniqueIndex:idx_portfolios_user_ticker" json:"ticker"`
	TotalValue   float64 `gorm:"not null;default:0" json:"total_value"`
	Shares       float64 `gorm:"not null;default:0" json:"shares"`
	AveragePrice float64 `gorm:"not null;default:0" json:"average_price"`
	CurrentPrice float64 `gorm:"not null;default:0" json:"current_price"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}
