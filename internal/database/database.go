package database

import (
	"fmt"
	"os"

	"roundly/config"
	"roundly/internal/domain"
	"roundly/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.MerchantMapping{},
		&models.Portfolio{},
		&models.Notification{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Business{},
		&models.BusinessMember{},
		&models.Goal{},
		&models.SystemSetting{},
		&models.ContactSubmission{},
	)
}

// SeedMappings inserts a starter set of approved merchant mappings so a fresh
// install can match the synthetic merchant catalog. Skipped when any seed row
// already exists.
func SeedMappings(db *gorm.DB) {
	var count int64
	db.Model(&models.MerchantMapping{}).Where("source = ?", domain.MappingSourceSeed).Count(&count)
	if count > 0 {
		return
	}
	seeds := []models.MerchantMapping{
		{MerchantName: "Starbucks", Ticker: "SBUX", Confidence: 0.98, CompanyName: "Starbucks Corporation"},
		{MerchantName: "Amazon", Ticker: "AMZN", Confidence: 0.99, CompanyName: "Amazon.com, Inc."},
		{MerchantName: "Apple Store", Ticker: "AAPL", Confidence: 0.97, CompanyName: "Apple Inc."},
		{MerchantName: "Netflix", Ticker: "NFLX", Confidence: 0.98, CompanyName: "Netflix, Inc."},
		{MerchantName: "Walmart", Ticker: "WMT", Confidence: 0.97, CompanyName: "Walmart Inc."},
		{MerchantName: "Target", Ticker: "TGT", Confidence: 0.96, CompanyName: "Target Corporation"},
		{MerchantName: "McDonald's", Ticker: "MCD", Confidence: 0.97, CompanyName: "McDonald's Corporation"},
		{MerchantName: "Nike", Ticker: "NKE", Confidence: 0.96, CompanyName: "Nike, Inc."},
		{MerchantName: "Chipotle", Ticker: "CMG", Confidence: 0.95, CompanyName: "Chipotle Mexican Grill"},
		{MerchantName: "Costco", Ticker: "COST", Confidence: 0.96, CompanyName: "Costco Wholesale"},
	}
	for i := range seeds {
		seeds[i].Status = domain.MappingStatusApproved
		seeds[i].Source = domain.MappingSourceSeed
		_ = db.Create(&seeds[i]).Error
	}
}

// SeedAdmin creates an ADMIN account from ADMIN_EMAIL / ADMIN_PASSWORD env
// vars. No-op when the vars are unset or the account already exists.
func SeedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &models.User{
		Name:          "Admin",
		Email:         email,
		PasswordHash:  string(hash),
		AccountType:   domain.AccountTypeAdmin,
		RoundUpAmount: 1.00,
	}
	if err := db.Create(u).Error; err != nil {
		return err
	}
	number := fmt.Sprintf("%s%09d", domain.AccountNumberPrefix(u.AccountType), u.ID)
	return db.Model(u).Update("account_number", number).Error
}
