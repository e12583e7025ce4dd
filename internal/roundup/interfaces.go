// Package roundup implements the round-up reconciliation pipeline: resolving
// the acting account, generating or ingesting bank transactions, matching
// merchants to tickers, accumulating portfolio value, and emitting summary
// notifications. Reprocessing of failed transactions runs over the same
// engine.
package roundup

import "roundly/internal/models"

// The pipeline depends on narrow store interfaces rather than concrete
// repositories so it can be exercised with in-memory fakes. The gorm
// repositories satisfy them directly.

type TransactionStore interface {
	GetByIDs(ids []uint) ([]models.Transaction, error)
	MarkMapped(ids []uint, ticker string) error
	MarkFailed(ids []uint) error
	ListByStatus(status string) ([]models.Transaction, error)
	ResetToPending(ids []uint) error
}

type MappingStore interface {
	// ApprovedByMerchants returns approved mappings in insertion order.
	ApprovedByMerchants(names []string) ([]models.MerchantMapping, error)
	Append(m *models.MerchantMapping) error
}

type PortfolioStore interface {
	// GetByUserTicker returns (nil, nil) when no row exists yet.
	GetByUserTicker(userID uint, ticker string) (*models.Portfolio, error)
	Create(p *models.Portfolio) error
	AddToTotal(id uint, delta float64) error
}

type NotificationStore interface {
	Create(n *models.Notification) error
}

type UserStore interface {
	GetByID(id uint) (*models.User, error)
	// First returns any existing user, or (nil, nil) when the table is empty.
	First() (*models.User, error)
	Create(u *models.User) error
	SetAccountNumber(id uint, number string) error
}

// TransactionSource produces bank transactions for a user. The synthetic
// generator is the demo implementation; a real bank aggregator would satisfy
// the same interface.
type TransactionSource interface {
	Generate(u *models.User) ([]*models.Transaction, error)
}
