package service

import (
	"errors"
	"io"
	"testing"

	"roundly/config"
	"roundly/internal/domain"
	"roundly/internal/models"
	"roundly/internal/roundup"

	"github.com/sirupsen/logrus"
)

func syncTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeSyncUsers satisfies roundup.UserStore and records lookups into the
// shared step trace.
type fakeSyncUsers struct {
	users map[uint]*models.User
	steps *[]string
}

func (f *fakeSyncUsers) GetByID(id uint) (*models.User, error) {
	*f.steps = append(*f.steps, "resolve")
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeSyncUsers) First() (*models.User, error) { return nil, nil }

func (f *fakeSyncUsers) Create(u *models.User) error { return nil }

func (f *fakeSyncUsers) SetAccountNumber(id uint, number string) error { return nil }

type fakeSyncSource struct {
	txs   []*models.Transaction
	err   error
	steps *[]string
}

func (f *fakeSyncSource) Generate(u *models.User) ([]*models.Transaction, error) {
	*f.steps = append(*f.steps, "generate")
	return f.txs, f.err
}

// fakeSyncTxStore plays both roles the pipeline needs: TransactionWriter for
// the persist step, and roundup.TransactionStore for the engine. CreateBatch
// assigns ids the way the database would, so the engine only sees a batch
// when Run collects the ids after persisting.
type fakeSyncTxStore struct {
	nextID uint
	byID   map[uint]*models.Transaction
	steps  *[]string
}

func newFakeSyncTxStore(steps *[]string) *fakeSyncTxStore {
	return &fakeSyncTxStore{nextID: 1, byID: map[uint]*models.Transaction{}, steps: steps}
}

func (f *fakeSyncTxStore) CreateBatch(txs []*models.Transaction) error {
	*f.steps = append(*f.steps, "persist")
	for _, tx := range txs {
		tx.ID = f.nextID
		f.nextID++
		c := *tx
		f.byID[tx.ID] = &c
	}
	return nil
}

func (f *fakeSyncTxStore) GetByIDs(ids []uint) ([]models.Transaction, error) {
	*f.steps = append(*f.steps, "process")
	var out []models.Transaction
	for _, id := range ids {
		if tx, ok := f.byID[id]; ok {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (f *fakeSyncTxStore) MarkMapped(ids []uint, ticker string) error {
	for _, id := range ids {
		f.byID[id].Status = domain.TxStatusMapped
		t := ticker
		f.byID[id].Ticker = &t
	}
	return nil
}

func (f *fakeSyncTxStore) MarkFailed(ids []uint) error {
	for _, id := range ids {
		f.byID[id].Status = domain.TxStatusFailed
	}
	return nil
}

func (f *fakeSyncTxStore) ListByStatus(status string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.byID {
		if tx.Status == status {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (f *fakeSyncTxStore) ResetToPending(ids []uint) error {
	for _, id := range ids {
		f.byID[id].Status = domain.TxStatusPending
	}
	return nil
}

type fakeSyncMappings struct {
	approved []models.MerchantMapping
	appended []models.MerchantMapping
}

func (f *fakeSyncMappings) ApprovedByMerchants(names []string) ([]models.MerchantMapping, error) {
	var out []models.MerchantMapping
	for _, m := range f.approved {
		for _, n := range names {
			if m.MerchantName == n {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (f *fakeSyncMappings) Append(m *models.MerchantMapping) error {
	f.appended = append(f.appended, *m)
	return nil
}

type fakeSyncPortfolios struct {
	created []models.Portfolio
}

func (f *fakeSyncPortfolios) GetByUserTicker(userID uint, ticker string) (*models.Portfolio, error) {
	return nil, nil
}

func (f *fakeSyncPortfolios) Create(p *models.Portfolio) error {
	f.created = append(f.created, *p)
	return nil
}

func (f *fakeSyncPortfolios) AddToTotal(id uint, delta float64) error { return nil }

type fakeSyncNotifications struct {
	rows []models.Notification
}

func (f *fakeSyncNotifications) Create(n *models.Notification) error {
	f.rows = append(f.rows, *n)
	return nil
}

func strPtr(s string) *string { return &s }

func newSyncFixture(t *testing.T, txs []*models.Transaction) (*SyncService, *fakeSyncTxStore, *[]string) {
	t.Helper()
	steps := &[]string{}
	users := &fakeSyncUsers{
		users: map[uint]*models.User{
			7: {ID: 7, Name: "Ada", AccountType: domain.AccountTypeIndividual, AccountNumber: "I000000007", RoundUpAmount: 1.00},
		},
		steps: steps,
	}
	source := &fakeSyncSource{txs: txs, steps: steps}
	store := newFakeSyncTxStore(steps)
	mappings := &fakeSyncMappings{approved: []models.MerchantMapping{
		{MerchantName: "Starbucks", Ticker: "SBUX", Confidence: 0.97, Status: domain.MappingStatusApproved},
	}}
	engine := roundup.NewEngine(store, mappings, &fakeSyncPortfolios{}, roundup.NewNotifier(&fakeSyncNotifications{}), syncTestLogger())
	resolver := roundup.NewResolver(users, config.DemoConfig{}, roundup.NewSettings(nil, config.SyncConfig{}), syncTestLogger())
	svc := NewSyncService(resolver, source, store, engine, nil, syncTestLogger())
	return svc, store, steps
}

func TestRunOrchestratesResolveGeneratePersistProcess(t *testing.T) {
	txs := []*models.Transaction{
		{UserID: 7, Merchant: strPtr("Starbucks"), Amount: 4.75, RoundUp: 1.00, Status: domain.TxStatusPending},
		{UserID: 7, Merchant: strPtr("Corner Deli"), Amount: 12.10, RoundUp: 1.00, Status: domain.TxStatusPending},
	}
	svc, store, steps := newSyncFixture(t, txs)

	res, err := svc.Run(7)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"resolve", "generate", "persist", "process"}
	if len(*steps) != len(want) {
		t.Fatalf("steps = %v, want %v", *steps, want)
	}
	for i, s := range want {
		if (*steps)[i] != s {
			t.Fatalf("step %d = %q, want %q (full trace %v)", i, (*steps)[i], s, *steps)
		}
	}

	if res.UserID != 7 {
		t.Errorf("user_id = %d, want 7", res.UserID)
	}
	if res.Generated != 2 {
		t.Errorf("generated = %d, want 2", res.Generated)
	}
	// Matched proves the ids fed to the engine were the ones CreateBatch
	// assigned: with pre-persist ids (all zero) the store would return an
	// empty batch and nothing would match.
	if res.Matched != 1 || res.Failed != 1 {
		t.Errorf("matched/failed = %d/%d, want 1/1", res.Matched, res.Failed)
	}
	if res.Allocated != 1.00 {
		t.Errorf("allocated = %v, want 1.00", res.Allocated)
	}
	if res.Reference == "" {
		t.Error("reference is empty")
	}

	if got := store.byID[1].Status; got != domain.TxStatusMapped {
		t.Errorf("starbucks tx status = %q, want %q", got, domain.TxStatusMapped)
	}
	if got := store.byID[2].Status; got != domain.TxStatusFailed {
		t.Errorf("deli tx status = %q, want %q", got, domain.TxStatusFailed)
	}
}

func TestRunResolveFailureStopsPipeline(t *testing.T) {
	svc, store, steps := newSyncFixture(t, nil)

	if _, err := svc.Run(99); err == nil {
		t.Fatal("Run with unknown profile id succeeded, want error")
	}
	if len(*steps) != 1 || (*steps)[0] != "resolve" {
		t.Errorf("steps = %v, want just the resolve attempt", *steps)
	}
	if len(store.byID) != 0 {
		t.Errorf("%d transactions persisted after a failed resolve", len(store.byID))
	}
}

func TestRunGenerateFailureNothingPersisted(t *testing.T) {
	svc, store, _ := newSyncFixture(t, nil)
	svc.source.(*fakeSyncSource).err = errors.New("upstream unavailable")

	if _, err := svc.Run(7); err == nil {
		t.Fatal("Run with failing source succeeded, want error")
	}
	if len(store.byID) != 0 {
		t.Errorf("%d transactions persisted after a failed generate", len(store.byID))
	}
}

func TestIngestStampsBatchForResolvedUser(t *testing.T) {
	svc, store, _ := newSyncFixture(t, nil)

	batch := []*models.Transaction{
		{Merchant: strPtr("Starbucks"), Amount: 6.20},
		{Merchant: strPtr("Corner Deli"), Amount: 9.80},
	}
	res, err := svc.Ingest(7, batch)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if res.Generated != 2 || res.Matched != 1 || res.Failed != 1 {
		t.Errorf("generated/matched/failed = %d/%d/%d, want 2/1/1", res.Generated, res.Matched, res.Failed)
	}
	for id, tx := range store.byID {
		if tx.UserID != 7 {
			t.Errorf("tx %d user_id = %d, want 7", id, tx.UserID)
		}
		if tx.RoundUp != 1.00 {
			t.Errorf("tx %d round_up = %v, want the user's 1.00", id, tx.RoundUp)
		}
		if tx.TotalDebit != tx.Amount+1.00 {
			t.Errorf("tx %d total_debit = %v, want amount plus round-up", id, tx.TotalDebit)
		}
	}
}
