package roundup

import (
	"errors"
	"io"

	"roundly/internal/domain"
	"roundly/internal/models"

	"github.com/sirupsen/logrus"
)

var errNotFound = errors.New("record not found")

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeTxStore keeps transactions in a slice, ids assigned on insert.
type fakeTxStore struct {
	txs []models.Transaction
}

func (f *fakeTxStore) add(tx models.Transaction) uint {
	tx.ID = uint(len(f.txs) + 1)
	f.txs = append(f.txs, tx)
	return tx.ID
}

func (f *fakeTxStore) byID(id uint) *models.Transaction {
	for i := range f.txs {
		if f.txs[i].ID == id {
			return &f.txs[i]
		}
	}
	return nil
}

func (f *fakeTxStore) GetByIDs(ids []uint) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.txs {
		for _, id := range ids {
			if tx.ID == id {
				out = append(out, tx)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTxStore) MarkMapped(ids []uint, ticker string) error {
	for _, id := range ids {
		if tx := f.byID(id); tx != nil {
			tx.Status = domain.TxStatusMapped
			t := ticker
			tx.Ticker = &t
		}
	}
	return nil
}

func (f *fakeTxStore) MarkFailed(ids []uint) error {
	for _, id := range ids {
		if tx := f.byID(id); tx != nil {
			tx.Status = domain.TxStatusFailed
		}
	}
	return nil
}

func (f *fakeTxStore) ListByStatus(status string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.txs {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeTxStore) ResetToPending(ids []uint) error {
	for _, id := range ids {
		if tx := f.byID(id); tx != nil {
			tx.Status = domain.TxStatusPending
		}
	}
	return nil
}

// fakeMappingStore serves approved rows in insertion order and records
// appends.
type fakeMappingStore struct {
	rows []models.MerchantMapping
}

func (f *fakeMappingStore) add(merchant, ticker string, confidence float64, status string) {
	f.rows = append(f.rows, models.MerchantMapping{
		ID:           uint(len(f.rows) + 1),
		MerchantName: merchant,
		Ticker:       ticker,
		Confidence:   confidence,
		Status:       status,
		Source:       domain.MappingSourceSeed,
	})
}

func (f *fakeMappingStore) ApprovedByMerchants(names []string) ([]models.MerchantMapping, error) {
	var out []models.MerchantMapping
	for _, m := range f.rows {
		if m.Status != domain.MappingStatusApproved {
			continue
		}
		for _, name := range names {
			if m.MerchantName == name {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeMappingStore) Append(m *models.MerchantMapping) error {
	m.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeMappingStore) appendedBySource(source string) []models.MerchantMapping {
	var out []models.MerchantMapping
	for _, m := range f.rows {
		if m.Source == source {
			out = append(out, m)
		}
	}
	return out
}

type fakePortfolioStore struct {
	rows []models.Portfolio
}

func (f *fakePortfolioStore) GetByUserTicker(userID uint, ticker string) (*models.Portfolio, error) {
	for i := range f.rows {
		if f.rows[i].UserID == userID && f.rows[i].Ticker == ticker {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakePortfolioStore) Create(p *models.Portfolio) error {
	p.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePortfolioStore) AddToTotal(id uint, delta float64) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].TotalValue += delta
		}
	}
	return nil
}

type fakeNotificationStore struct {
	rows []models.Notification
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	n.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *n)
	return nil
}

// fakeSettingStore serves admin settings from a map, missing keys error.
type fakeSettingStore struct {
	values map[string]string
}

func (f *fakeSettingStore) Get(key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", errNotFound
	}
	return v, nil
}

type fakeUserStore struct {
	users  []models.User
	nextID uint
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUserStore) First() (*models.User, error) {
	if len(f.users) == 0 {
		return nil, nil
	}
	return &f.users[0], nil
}

func (f *fakeUserStore) Create(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserStore) SetAccountNumber(id uint, number string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].AccountNumber = number
		}
	}
	return nil
}
