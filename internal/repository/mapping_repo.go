package repository

import (
	"roundly/internal/domain"
	"roundly/internal/models"

	"gorm.io/gorm"
)

type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// Append inserts a new mapping row. The mapping table is an append-only log;
// existing rows are never updated by the pipeline.
func (r *MappingRepository) Append(m *models.MerchantMapping) error {
	return r.db.Create(m).Error
}

// ApprovedByMerchants returns every APPROVED mapping for the given merchant
// names, in insertion order. Callers pick the highest-confidence row per name.
func (r *MappingRepository) ApprovedByMerchants(names []string) ([]models.MerchantMapping, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var list []models.MerchantMapping
	err := r.db.Where("merchant_name IN ? AND status = ?", names, domain.MappingStatusApproved).
		Order("id ASC").Find(&list).Error
	return list, err
}

func (r *MappingRepository) List(status string, limit, offset int) ([]models.MerchantMapping, error) {
	var list []models.MerchantMapping
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *MappingRepository) GetByID(id uint) (*models.MerchantMapping, error) {
	var m models.MerchantMapping
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Approve flips a PENDING mapping to APPROVED.
func (r *MappingRepository) Approve(id uint) error {
	return r.db.Model(&models.MerchantMapping{}).Where("id = ?", id).
		Update("status", domain.MappingStatusApproved).Error
}

func (r *MappingRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.MerchantMapping{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
