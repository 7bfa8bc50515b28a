package service

import (
	"context"
	"errors"

	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BalanceService handles crystal and aether mutations. Every change goes
// through the guarded repository updates and writes a ledger row in the
// same transaction.
type BalanceService struct {
	db         *pgxpool.Pool
	playerRepo *repository.PlayerRepository
	ledgerRepo *repository.LedgerRepository
}

func NewBalanceService(db *pgxpool.Pool) *BalanceService {
	return &BalanceService{
		db:         db,
		playerRepo: repository.NewPlayerRepository(db),
		ledgerRepo: repository.NewLedgerRepository(db),
	}
}

// CreditTx adds amount of a currency within an existing transaction.
func (s *BalanceService) CreditTx(ctx context.Context, q repository.Querier, playerID int64, currency string, amount int64, txType string, meta map[string]interface{}) (int64, error) {
	if amount <= 0 {
		return 0, invalidState("credit amount %d", amount)
	}
	return s.applyTx(ctx, q, playerID, currency, amount, txType, meta)
}

// DebitTx deducts amount of a currency within an existing transaction.
// Returns ErrInsufficientResource when the balance guard rejects it.
func (s *BalanceService) DebitTx(ctx context.Context, q repository.Querier, playerID int64, currency string, amount int64, txType string, meta map[string]interface{}) (int64, error) {
	if amount <= 0 {
		return 0, invalidState("debit amount %d", amount)
	}
	return s.applyTx(ctx, q, playerID, currency, -amount, txType, meta)
}

func (s *BalanceService) applyTx(ctx context.Context, q repository.Querier, playerID int64, currency string, delta int64, txType string, meta map[string]interface{}) (int64, error) {
	var balance int64
	var err error
	switch currency {
	case domain.CurrencyCrystals:
		balance, err = s.playerRepo.AddCrystals(ctx, q, playerID, delta)
	case domain.CurrencyAether:
		balance, err = s.playerRepo.AddAether(ctx, q, playerID, delta)
	default:
		return 0, invalidState("unknown currency %q", currency)
	}
	if errors.Is(err, repository.ErrInsufficientFunds) {
		return 0, insufficient(currency)
	}
	if err != nil {
		return 0, err
	}

	entry := &domain.LedgerEntry{
		PlayerID: playerID,
		Currency: currency,
		Type:     txType,
		Amount:   delta,
		Meta:     meta,
	}
	if err := s.ledgerRepo.Create(ctx, q, entry); err != nil {
		return 0, err
	}
	return balance, nil
}

// Credit opens its own transaction; used by paths with no surrounding tx.
func (s *BalanceService) Credit(ctx context.Context, playerID int64, currency string, amount int64, txType string, meta map[string]interface{}) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	balance, err := s.CreditTx(ctx, tx, playerID, currency, amount, txType, meta)
	if err != nil {
		return 0, err
	}
	return balance, tx.Commit(ctx)
}

// History returns the player's recent ledger entries.
func (s *BalanceService) History(ctx context.Context, playerID int64, limit int) ([]*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByPlayer(ctx, playerID, limit)
}
