package roundup

import (
	"math/rand"
	"time"

	"roundly/internal/domain"
	"roundly/internal/merchants"
	"roundly/internal/models"
)

// SyntheticSource generates demo bank transactions from the fixed merchant
// catalog. Pure generation; the caller persists the batch.
type SyntheticSource struct {
	settings *Settings
	rng      *rand.Rand
	now      func() time.Time
}

func NewSyntheticSource(settings *Settings) *SyntheticSource {
	return &SyntheticSource{
		settings: settings,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Generate produces N transactions for the user, N random within the
// admin-configured range. Amounts land in [1, 150) at two decimals, dates
// within the past 365 days, round-up fixed to the user's configured step.
func (s *SyntheticSource) Generate(u *models.User) ([]*models.Transaction, error) {
	min, max := s.settings.SyncBounds()
	n := min + s.rng.Intn(max-min+1)
	txs := make([]*models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		m := merchants.Catalog[s.rng.Intn(len(merchants.Catalog))]
		// whole cents in [100, 14999] keep the amount strictly below 150.00
		amount := float64(100+s.rng.Intn(14900)) / 100
		date := s.now().AddDate(0, 0, -s.rng.Intn(365))
		name := m.Name
		txs = append(txs, &models.Transaction{
			UserID:     u.ID,
			Merchant:   &name,
			Amount:     amount,
			RoundUp:    u.RoundUpAmount,
			TotalDebit: amount + u.RoundUpAmount,
			Category:   m.Category,
			Status:     domain.TxStatusPending,
			Date:       date,
		})
	}
	return txs, nil
}
