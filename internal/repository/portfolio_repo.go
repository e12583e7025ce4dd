package repository

import (
	"errors"

	"roundly/internal/models"

	"gorm.io/gorm"
)

type PortfolioRepository struct {
	db *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetByUserTicker returns the portfolio row for a (user, ticker) pair, or
// (nil, nil) when none exists yet.
func (r *PortfolioRepository) GetByUserTicker(userID uint, ticker string) (*models.Portfolio, error) {
	var p models.Portfolio
	err := r.db.Where("user_id = ? AND ticker = ?", userID, ticker).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PortfolioRepository) Create(p *models.Portfolio) error {
	return r.db.Create(p).Error
}

// AddToTotal increments a row's accumulated value. Total value only ever
// grows through this path.
func (r *PortfolioRepository) AddToTotal(id uint, delta float64) error {
	return r.db.Model(&models.Portfolio{}).Where("id = ?", id).
		Update("total_value", gorm.Expr("total_value + ?", delta)).Error
}

func (r *PortfolioRepository) ListByUserID(userID uint) ([]models.Portfolio, error) {
	var list []models.Portfolio
	err := r.db.Where("user_id = ?", userID).Order("total_value DESC").Find(&list).Error
	return list, err
}

func (r *PortfolioRepository) ListByUserIDs(userIDs []uint) ([]models.Portfolio, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var list []models.Portfolio
	err := r.db.Where("user_id IN ?", userIDs).Order("total_value DESC").Find(&list).Error
	return list, err
}

func (r *PortfolioRepository) TotalValue(userIDs []uint) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var total struct{ Total float64 }
	err := r.db.Model(&models.Portfolio{}).
		Select("COALESCE(SUM(total_value), 0) as total").
		Where("user_id IN ?", userIDs).Scan(&total).Error
	return total.Total, err
}
