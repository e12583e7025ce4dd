package roundup

import (
	"fmt"
	"sort"

	"roundly/internal/domain"
	"roundly/internal/models"

	"github.com/sirupsen/logrus"
)

// Engine matches a batch of pending transactions against approved merchant
// mappings, persists the status transitions, grows the mapping log with
// confirmations, and accumulates round-up value into portfolio rows.
//
// The writes in Process are sequential and not wrapped in a transaction:
// an interruption can leave the batch partially applied. Re-running over an
// already-mapped batch would double-count; callers only feed it PENDING ids.
type Engine struct {
	transactions TransactionStore
	mappings     MappingStore
	portfolios   PortfolioStore
	notifier     *Notifier
	log          *logrus.Logger
}

func NewEngine(transactions TransactionStore, mappings MappingStore, portfolios PortfolioStore, notifier *Notifier, log *logrus.Logger) *Engine {
	return &Engine{
		transactions: transactions,
		mappings:     mappings,
		portfolios:   portfolios,
		notifier:     notifier,
		log:          log,
	}
}

// Result summarizes one engine pass. Allocated holds the un-rounded per-ticker
// round-up sums; rounding to cents happens only at the presentation boundary.
type Result struct {
	Matched   int                `json:"matched"`
	Failed    int                `json:"failed"`
	Total     float64            `json:"total_allocated"`
	Allocated map[string]float64 `json:"allocated"`
	Reference string             `json:"reference"`
}

// Process runs the mapping pass over the given transaction ids for one user.
// A transaction with no approved mapping (or no merchant at all) becomes
// FAILED; that is a business outcome, not an error. Only storage failures
// return an error.
func (e *Engine) Process(userID uint, txIDs []uint, reference string) (*Result, error) {
	res := &Result{Allocated: map[string]float64{}, Reference: reference}

	txs, err := e.transactions.GetByIDs(txIDs)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if len(txs) == 0 {
		return res, nil
	}

	names := distinctMerchants(txs)
	approved, err := e.mappings.ApprovedByMerchants(names)
	if err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}
	best := bestByMerchant(approved)

	// Partition: every transaction lands in exactly one bucket.
	matchedByTicker := map[string][]uint{}
	var matched []models.Transaction
	var unmatchedIDs []uint
	for _, tx := range txs {
		if tx.Merchant == nil {
			unmatchedIDs = append(unmatchedIDs, tx.ID)
			continue
		}
		m, ok := best[*tx.Merchant]
		if !ok {
			unmatchedIDs = append(unmatchedIDs, tx.ID)
			continue
		}
		matchedByTicker[m.Ticker] = append(matchedByTicker[m.Ticker], tx.ID)
		matched = append(matched, tx)
		res.Allocated[m.Ticker] += tx.RoundUp
		res.Total += tx.RoundUp
	}
	res.Matched = len(matched)
	res.Failed = len(unmatchedIDs)

	// Status transitions; the two updates are independent and order-insensitive.
	for _, ticker := range sortedKeys(matchedByTicker) {
		if err := e.transactions.MarkMapped(matchedByTicker[ticker], ticker); err != nil {
			return nil, fmt.Errorf("mark mapped %s: %w", ticker, err)
		}
	}
	if err := e.transactions.MarkFailed(unmatchedIDs); err != nil {
		return nil, fmt.Errorf("mark failed: %w", err)
	}

	// Every confirmed match appends to the mapping log.
	for _, tx := range matched {
		m := best[*tx.Merchant]
		if err := e.mappings.Append(&models.MerchantMapping{
			MerchantName: m.MerchantName,
			Ticker:       m.Ticker,
			Confidence:   m.Confidence,
			Status:       domain.MappingStatusApproved,
			CompanyName:  m.CompanyName,
			Source:       domain.MappingSourceConfirmed,
		}); err != nil {
			return nil, fmt.Errorf("append mapping confirmation: %w", err)
		}
	}

	for _, ticker := range sortedKeys(res.Allocated) {
		if err := e.allocate(userID, ticker, res.Allocated[ticker]); err != nil {
			return nil, err
		}
	}

	if err := e.notifier.SyncComplete(userID, res); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"matched":   res.Matched,
		"failed":    res.Failed,
		"allocated": res.Total,
		"reference": reference,
	}).Info("mapping pass complete")
	return res, nil
}

// allocate adds the aggregated round-up amount to the user's portfolio row
// for the ticker, creating the row with zeroed shares and prices when absent.
func (e *Engine) allocate(userID uint, ticker string, amount float64) error {
	p, err := e.portfolios.GetByUserTicker(userID, ticker)
	if err != nil {
		return fmt.Errorf("load portfolio %s: %w", ticker, err)
	}
	if p == nil {
		return e.portfolios.Create(&models.Portfolio{
			UserID:     userID,
			Ticker:     ticker,
			TotalValue: amount,
		})
	}
	return e.portfolios.AddToTotal(p.ID, amount)
}

func distinctMerchants(txs []models.Transaction) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, tx := range txs {
		if tx.Merchant == nil {
			continue
		}
		if _, ok := seen[*tx.Merchant]; ok {
			continue
		}
		seen[*tx.Merchant] = struct{}{}
		names = append(names, *tx.Merchant)
	}
	return names
}

// bestByMerchant keeps the highest-confidence approved mapping per merchant.
// Ties keep the first row encountered.
func bestByMerchant(mappings []models.MerchantMapping) map[string]models.MerchantMapping {
	best := make(map[string]models.MerchantMapping, len(mappings))
	for _, m := range mappings {
		cur, ok := best[m.MerchantName]
		if !ok || m.Confidence > cur.Confidence {
			best[m.MerchantName] = m
		}
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
