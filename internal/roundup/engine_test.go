package roundup

import (
	"math"
	"testing"

	"roundly/internal/domain"
	"roundly/internal/models"
)

func strp(s string) *string { return &s }

func newTestEngine() (*Engine, *fakeTxStore, *fakeMappingStore, *fakePortfolioStore, *fakeNotificationStore) {
	txs := &fakeTxStore{}
	mappings := &fakeMappingStore{}
	portfolios := &fakePortfolioStore{}
	notifs := &fakeNotificationStore{}
	engine := NewEngine(txs, mappings, portfolios, NewNotifier(notifs), testLogger())
	return engine, txs, mappings, portfolios, notifs
}

func pendingTx(userID uint, merchant *string, amount, roundUp float64) models.Transaction {
	return models.Transaction{
		UserID:     userID,
		Merchant:   merchant,
		Amount:     amount,
		RoundUp:    roundUp,
		TotalDebit: amount + roundUp,
		Status:     domain.TxStatusPending,
	}
}

func TestProcessPartitionsEveryTransaction(t *testing.T) {
	engine, txs, mappings, portfolios, notifs := newTestEngine()
	mappings.add("Starbucks", "SBUX", 0.95, domain.MappingStatusApproved)
	mappings.add("Amazon", "AMZN", 0.90, domain.MappingStatusApproved)

	ids := []uint{
		txs.add(pendingTx(1, strp("Starbucks"), 4.75, 1.00)),
		txs.add(pendingTx(1, strp("Amazon"), 23.47, 1.00)),
		txs.add(pendingTx(1, strp("Unknown Merchant"), 10.00, 1.00)),
	}

	res, err := engine.Process(1, ids, "ref-1")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Matched != 2 || res.Failed != 1 {
		t.Fatalf("got matched=%d failed=%d, want 2 and 1", res.Matched, res.Failed)
	}

	for _, tx := range txs.txs {
		if tx.Status == domain.TxStatusPending {
			t.Errorf("transaction %d still pending after processing", tx.ID)
		}
	}
	if got := txs.byID(ids[0]); got.Status != domain.TxStatusMapped || got.Ticker == nil || *got.Ticker != "SBUX" {
		t.Errorf("Starbucks tx: status=%s ticker=%v", got.Status, got.Ticker)
	}
	if got := txs.byID(ids[2]); got.Status != domain.TxStatusFailed {
		t.Errorf("unknown merchant tx: status=%s, want FAILED", got.Status)
	}

	sbux, _ := portfolios.GetByUserTicker(1, "SBUX")
	amzn, _ := portfolios.GetByUserTicker(1, "AMZN")
	if sbux == nil || sbux.TotalValue != 1.00 {
		t.Errorf("SBUX portfolio: %+v, want total_value 1.00", sbux)
	}
	if amzn == nil || amzn.TotalValue != 1.00 {
		t.Errorf("AMZN portfolio: %+v, want total_value 1.00", amzn)
	}

	if len(notifs.rows) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifs.rows))
	}
	want := "$2.00 allocated to AMZN, SBUX, pending stock purchase."
	if notifs.rows[1].Message != want {
		t.Errorf("allocation notification = %q, want %q", notifs.rows[1].Message, want)
	}
}

func TestProcessPrefersHighestConfidence(t *testing.T) {
	engine, txs, mappings, portfolios, _ := newTestEngine()
	mappings.add("Whole Foods", "WFM", 0.60, domain.MappingStatusApproved)
	mappings.add("Whole Foods", "AMZN", 0.90, domain.MappingStatusApproved)

	id := txs.add(pendingTx(7, strp("Whole Foods"), 52.10, 2.00))
	res, err := engine.Process(7, []uint{id}, "ref-2")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Matched != 1 {
		t.Fatalf("matched = %d, want 1", res.Matched)
	}
	if got := txs.byID(id); *got.Ticker != "AMZN" {
		t.Errorf("ticker = %s, want AMZN", *got.Ticker)
	}
	if p, _ := portfolios.GetByUserTicker(7, "WFM"); p != nil {
		t.Errorf("lower-confidence ticker got an allocation: %+v", p)
	}
}

func TestProcessTieKeepsFirstEncountered(t *testing.T) {
	engine, txs, mappings, _, _ := newTestEngine()
	mappings.add("Costco", "COST", 0.80, domain.MappingStatusApproved)
	mappings.add("Costco", "WMT", 0.80, domain.MappingStatusApproved)

	id := txs.add(pendingTx(1, strp("Costco"), 88.00, 1.00))
	if _, err := engine.Process(1, []uint{id}, "ref-3"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := txs.byID(id); *got.Ticker != "COST" {
		t.Errorf("ticker = %s, want first-encountered COST", *got.Ticker)
	}
}

func TestProcessIgnoresPendingMappings(t *testing.T) {
	engine, txs, mappings, _, notifs := newTestEngine()
	mappings.add("Netflix", "NFLX", 0.99, domain.MappingStatusPending)

	id := txs.add(pendingTx(1, strp("Netflix"), 15.49, 0.50))
	res, err := engine.Process(1, []uint{id}, "ref-4")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Matched != 0 || res.Failed != 1 {
		t.Fatalf("got matched=%d failed=%d, want 0 and 1", res.Matched, res.Failed)
	}
	// No allocation happened, so only the summary row exists.
	if len(notifs.rows) != 1 {
		t.Errorf("got %d notifications, want 1", len(notifs.rows))
	}
}

func TestProcessNilMerchantFails(t *testing.T) {
	engine, txs, _, _, _ := newTestEngine()
	id := txs.add(pendingTx(1, nil, 9.99, 1.00))
	res, err := engine.Process(1, []uint{id}, "ref-5")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Failed != 1 {
		t.Fatalf("failed = %d, want 1", res.Failed)
	}
	if got := txs.byID(id); got.Status != domain.TxStatusFailed {
		t.Errorf("status = %s, want FAILED", got.Status)
	}
}

func TestProcessEmptyBatchIsNoOp(t *testing.T) {
	engine, _, mappings, _, notifs := newTestEngine()
	res, err := engine.Process(1, nil, "ref-6")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.Matched != 0 || res.Failed != 0 || res.Total != 0 {
		t.Fatalf("non-zero result for empty batch: %+v", res)
	}
	if len(notifs.rows) != 0 {
		t.Errorf("empty batch emitted %d notifications", len(notifs.rows))
	}
	if len(mappings.rows) != 0 {
		t.Errorf("empty batch appended %d mapping rows", len(mappings.rows))
	}
}

func TestProcessAppendsConfirmationRows(t *testing.T) {
	engine, txs, mappings, _, _ := newTestEngine()
	mappings.add("Starbucks", "SBUX", 0.95, domain.MappingStatusApproved)

	ids := []uint{
		txs.add(pendingTx(1, strp("Starbucks"), 4.75, 1.00)),
		txs.add(pendingTx(1, strp("Starbucks"), 6.20, 1.00)),
	}
	if _, err := engine.Process(1, ids, "ref-7"); err != nil {
		t.Fatalf("Process: %v", err)
	}

	confirmed := mappings.appendedBySource(domain.MappingSourceConfirmed)
	if len(confirmed) != 2 {
		t.Fatalf("got %d confirmation rows, want one per matched transaction", len(confirmed))
	}
	for _, m := range confirmed {
		if m.Ticker != "SBUX" || m.Status != domain.MappingStatusApproved {
			t.Errorf("confirmation row = %+v", m)
		}
	}
	// The original seed row is untouched.
	if mappings.rows[0].Source != domain.MappingSourceSeed {
		t.Errorf("seed row mutated: %+v", mappings.rows[0])
	}
}

func TestPortfolioValueGrowsMonotonically(t *testing.T) {
	engine, txs, mappings, portfolios, _ := newTestEngine()
	mappings.add("Apple Store", "AAPL", 0.97, domain.MappingStatusApproved)

	prev := 0.0
	for i := 0; i < 5; i++ {
		id := txs.add(pendingTx(3, strp("Apple Store"), 120.00, 5.00))
		if _, err := engine.Process(3, []uint{id}, "ref"); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		p, _ := portfolios.GetByUserTicker(3, "AAPL")
		if p.TotalValue <= prev {
			t.Fatalf("pass %d: total_value %v did not grow from %v", i, p.TotalValue, prev)
		}
		prev = p.TotalValue
	}
	if math.Abs(prev-25.00) > 1e-9 {
		t.Errorf("final total_value = %v, want 25.00", prev)
	}
}

func TestProcessAggregatesRoundUpsPerTicker(t *testing.T) {
	engine, txs, mappings, portfolios, _ := newTestEngine()
	mappings.add("Starbucks", "SBUX", 0.95, domain.MappingStatusApproved)

	ids := []uint{
		txs.add(pendingTx(1, strp("Starbucks"), 4.75, 0.50)),
		txs.add(pendingTx(1, strp("Starbucks"), 6.20, 0.50)),
		txs.add(pendingTx(1, strp("Starbucks"), 3.10, 0.50)),
	}
	res, err := engine.Process(1, ids, "ref-8")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if math.Abs(res.Total-1.50) > 1e-9 {
		t.Errorf("total = %v, want 1.50", res.Total)
	}
	p, _ := portfolios.GetByUserTicker(1, "SBUX")
	if len(portfolios.rows) != 1 {
		t.Fatalf("got %d portfolio rows, want a single aggregated row", len(portfolios.rows))
	}
	if math.Abs(p.TotalValue-1.50) > 1e-9 {
		t.Errorf("total_value = %v, want 1.50", p.TotalValue)
	}
}
