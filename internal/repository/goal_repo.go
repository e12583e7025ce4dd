package repository

import (
	"roundly/internal/models"

	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(g *models.Goal) error {
	return r.db.Create(g).Error
}

func (r *GoalRepository) ListByUserID(userID uint) ([]models.Goal, error) {
	var list []models.Goal
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *GoalRepository) Delete(id, userID uint) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Goal{}).Error
}
