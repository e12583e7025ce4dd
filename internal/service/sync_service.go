package service

import (
	"fmt"

	"roundly/internal/domain"
	"roundly/internal/models"
	"roundly/internal/roundup"
	"roundly/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TransactionWriter is the slice of the transaction repository the sync
// service needs: persisting a batch, which assigns the ids the engine runs
// over.
type TransactionWriter interface {
	CreateBatch(txs []*models.Transaction) error
}

// SyncService is the pipeline entry point: resolve the acting account, pull a
// batch from the transaction source, persist it, and run the mapping engine.
// Storage failures propagate to the caller; there is no retry.
type SyncService struct {
	resolver *roundup.Resolver
	source   roundup.TransactionSource
	txRepo   TransactionWriter
	engine   *roundup.Engine
	hub      *ws.Hub
	log      *logrus.Logger
}

func NewSyncService(
	resolver *roundup.Resolver,
	source roundup.TransactionSource,
	txRepo TransactionWriter,
	engine *roundup.Engine,
	hub *ws.Hub,
	log *logrus.Logger,
) *SyncService {
	return &SyncService{
		resolver: resolver,
		source:   source,
		txRepo:   txRepo,
		engine:   engine,
		hub:      hub,
		log:      log,
	}
}

type SyncResult struct {
	UserID    uint    `json:"user_id"`
	Generated int     `json:"generated"`
	Matched   int     `json:"matched"`
	Failed    int     `json:"failed"`
	Allocated float64 `json:"allocated"`
	Reference string  `json:"reference"`
}

// Run executes one sync for the given profile id (zero = unauthenticated,
// resolved via the demo fallback).
func (s *SyncService) Run(profileID uint) (*SyncResult, error) {
	u, err := s.resolver.Resolve(profileID)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	txs, err := s.source.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("generate transactions: %w", err)
	}
	if err := s.txRepo.CreateBatch(txs); err != nil {
		return nil, fmt.Errorf("persist transactions: %w", err)
	}
	ids := make([]uint, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}

	ref := uuid.New().String()
	res, err := s.engine.Process(u.ID, ids, ref)
	if err != nil {
		return nil, err
	}

	out := &SyncResult{
		UserID:    u.ID,
		Generated: len(txs),
		Matched:   res.Matched,
		Failed:    res.Failed,
		Allocated: res.Total,
		Reference: ref,
	}
	if s.hub != nil {
		s.hub.BroadcastToUser(u.ID, map[string]interface{}{"type": "sync_complete", "result": out})
	}
	s.log.WithFields(logrus.Fields{
		"user_id":   u.ID,
		"generated": out.Generated,
		"matched":   out.Matched,
		"failed":    out.Failed,
	}).Info("sync run complete")
	return out, nil
}

// Ingest runs the pipeline over externally supplied transactions instead of
// the synthetic source. The batch must belong to the user being synced.
func (s *SyncService) Ingest(profileID uint, txs []*models.Transaction) (*SyncResult, error) {
	u, err := s.resolver.Resolve(profileID)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	for _, tx := range txs {
		tx.UserID = u.ID
		tx.RoundUp = u.RoundUpAmount
		tx.TotalDebit = tx.Amount + u.RoundUpAmount
		tx.Status = domain.TxStatusPending
	}
	if err := s.txRepo.CreateBatch(txs); err != nil {
		return nil, fmt.Errorf("persist transactions: %w", err)
	}
	ids := make([]uint, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	ref := uuid.New().String()
	res, err := s.engine.Process(u.ID, ids, ref)
	if err != nil {
		return nil, err
	}
	return &SyncResult{
		UserID:    u.ID,
		Generated: len(txs),
		Matched:   res.Matched,
		Failed:    res.Failed,
		Allocated: res.Total,
		Reference: ref,
	}, nil
}
