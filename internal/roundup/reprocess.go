package roundup

import (
	"fmt"
	"sort"

	"roundly/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Reprocessor re-runs the mapping engine over every FAILED transaction after
// the mapping corpus has changed. It is the only self-healing path and must
// be invoked explicitly. The bulk reset and the per-user passes are separate
// steps with no shared transaction; a concurrent sync on the same user can
// race with it.
type Reprocessor struct {
	transactions TransactionStore
	engine       *Engine
	log          *logrus.Logger
}

func NewReprocessor(transactions TransactionStore, engine *Engine, log *logrus.Logger) *Reprocessor {
	return &Reprocessor{transactions: transactions, engine: engine, log: log}
}

type ReprocessResult struct {
	Total     int    `json:"total"`
	Matched   int    `json:"matched"`
	Failed    int    `json:"failed"`
	Users     int    `json:"users"`
	Reference string `json:"reference"`
}

// Run resets all failed transactions to pending, groups their ids by owning
// user, and runs one engine pass per user. Returns aggregate counts.
func (r *Reprocessor) Run() (*ReprocessResult, error) {
	res := &ReprocessResult{Reference: uuid.New().String()}

	failed, err := r.transactions.ListByStatus(domain.TxStatusFailed)
	if err != nil {
		return nil, fmt.Errorf("list failed transactions: %w", err)
	}
	if len(failed) == 0 {
		return res, nil
	}
	res.Total = len(failed)

	ids := make([]uint, 0, len(failed))
	byUser := map[uint][]uint{}
	for _, tx := range failed {
		ids = append(ids, tx.ID)
		byUser[tx.UserID] = append(byUser[tx.UserID], tx.ID)
	}
	if err := r.transactions.ResetToPending(ids); err != nil {
		return nil, fmt.Errorf("reset to pending: %w", err)
	}

	userIDs := make([]uint, 0, len(byUser))
	for id := range byUser {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	for _, userID := range userIDs {
		pass, err := r.engine.Process(userID, byUser[userID], res.Reference)
		if err != nil {
			return nil, fmt.Errorf("reprocess user %d: %w", userID, err)
		}
		res.Matched += pass.Matched
		res.Failed += pass.Failed
	}
	res.Users = len(userIDs)

	r.log.WithFields(logrus.Fields{
		"total":     res.Total,
		"matched":   res.Matched,
		"failed":    res.Failed,
		"users":     res.Users,
		"reference": res.Reference,
	}).Info("reprocessing complete")
	return res, nil
}
