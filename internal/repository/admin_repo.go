package repository

import (
	"roundly/internal/domain"
	"roundly/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers          int64   `json:"total_users"`
	IndividualAccounts  int64   `json:"individual_accounts"`
	FamilyAccounts      int64   `json:"family_accounts"`
	BusinessAccounts    int64   `json:"business_accounts"`
	TotalTransactions   int64   `json:"total_transactions"`
	PendingTransactions int64   `json:"pending_transactions"`
	MappedTransactions  int64   `json:"mapped_transactions"`
	FailedTransactions  int64   `json:"failed_transactions"`
	PendingMappings     int64   `json:"pending_mappings"`
	ApprovedMappings    int64   `json:"approved_mappings"`
	TotalEarmarked      float64 `json:"total_earmarked"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.User{}).Count(&s.TotalUsers)
	r.db.Model(&models.User{}).Where("account_type = ?", domain.AccountTypeIndividual).Count(&s.IndividualAccounts)
	r.db.Model(&models.User{}).Where("account_type = ?", domain.AccountTypeFamily).Count(&s.FamilyAccounts)
	r.db.Model(&models.User{}).Where("account_type = ?", domain.AccountTypeBusiness).Count(&s.BusinessAccounts)

	r.db.Model(&models.Transaction{}).Count(&s.TotalTransactions)
	r.db.Model(&models.Transaction{}).Where("status = ?", domain.TxStatusPending).Count(&s.PendingTransactions)
	r.db.Model(&models.Transaction{}).Where("status = ?", domain.TxStatusMapped).Count(&s.MappedTransactions)
	r.db.Model(&models.Transaction{}).Where("status = ?", domain.TxStatusFailed).Count(&s.FailedTransactions)

	r.db.Model(&models.MerchantMapping{}).Where("status = ?", domain.MappingStatusPending).Count(&s.PendingMappings)
	r.db.Model(&models.MerchantMapping{}).Where("status = ?", domain.MappingStatusApproved).Count(&s.ApprovedMappings)

	var total struct{ Total float64 }
	r.db.Model(&models.Portfolio{}).Select("COALESCE(SUM(total_value), 0) as total").Scan(&total)
	s.TotalEarmarked = total.Total
	return &s, nil
}

// SignupsPerDay returns user signups for the last n days.
func (r *AdminRepository) SignupsPerDay(days int) ([]TimeSeriesPoint, error) {
	var points []TimeSeriesPoint
	err := r.db.Model(&models.User{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= DATE_SUB(CURDATE(), INTERVAL ? DAY)", days).
		Group("DATE(created_at)").Order("date ASC").Scan(&points).Error
	return points, err
}

// SyncsPerDay counts transactions created per day for the last n days.
func (r *AdminRepository) SyncsPerDay(days int) ([]TimeSeriesPoint, error) {
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Transaction{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= DATE_SUB(CURDATE(), INTERVAL ? DAY)", days).
		Group("DATE(created_at)").Order("date ASC").Scan(&points).Error
	return points, err
}
