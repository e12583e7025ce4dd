package repository

import (
	"roundly/internal/domain"
	"roundly/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateBatch(txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.Create(&txs).Error
}

// GetByIDs loads the transactions that still resolve; missing ids are
// silently dropped.
func (r *TransactionRepository) GetByIDs(ids []uint) ([]models.Transaction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Transaction
	err := r.db.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// MarkMapped transitions a group of matched transactions to MAPPED with the
// allocated ticker.
func (r *TransactionRepository) MarkMapped(ids []uint, ticker string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Transaction{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{"status": domain.TxStatusMapped, "ticker": ticker}).Error
}

func (r *TransactionRepository) MarkFailed(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Transaction{}).Where("id IN ?", ids).
		Update("status", domain.TxStatusFailed).Error
}

// ListByStatus returns every transaction in the given status system-wide,
// ordered for deterministic reprocessing.
func (r *TransactionRepository) ListByStatus(status string) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("status = ?", status).Order("id ASC").Find(&list).Error
	return list, err
}

// ResetToPending bulk-resets transactions (normally FAILED ones) back to
// PENDING ahead of a reprocessing pass.
func (r *TransactionRepository) ResetToPending(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Transaction{}).Where("id IN ?", ids).
		Update("status", domain.TxStatusPending).Error
}

func (r *TransactionRepository) ListByUserID(userID uint, status string, limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	q := r.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("date DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *TransactionRepository) ListByUserIDs(userIDs []uint, limit, offset int) ([]models.Transaction, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var list []models.Transaction
	err := r.db.Where("user_id IN ?", userIDs).Order("date DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *TransactionRepository) CountByStatus(userID uint) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := r.db.Model(&models.Transaction{}).Select("status, COUNT(*) as n").
		Where("user_id = ?", userID).Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.N
	}
	return counts, nil
}

// SumRoundUps totals earmarked round-ups for a set of users.
func (r *TransactionRepository) SumRoundUps(userIDs []uint) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var total struct{ Total float64 }
	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(round_up), 0) as total").
		Where("user_id IN ? AND status = ?", userIDs, domain.TxStatusMapped).
		Scan(&total).Error
	return total.Total, err
}
