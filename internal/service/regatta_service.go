package service

import (
	"context"
	"time"

	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/logger"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegattaService runs the time-windowed competitive events.
type RegattaService struct {
	db          *pgxpool.Pool
	regattaRepo *repository.RegattaRepository
	balance     *BalanceService
}

func NewRegattaService(db *pgxpool.Pool, balance *BalanceService) *RegattaService {
	return &RegattaService{
		db:          db,
		regattaRepo: repository.NewRegattaRepository(db),
		balance:     balance,
	}
}

// RegattaView is the current event plus the caller's standing, if joined.
type RegattaView struct {
	Regatta     *domain.Regatta            `json:"regatta"`
	Participant *domain.RegattaParticipant `json:"participant,omitempty"`
	Leaderboard []repository.RegattaRow    `json:"leaderboard"`
}

func (s *RegattaService) Current(ctx context.Context, playerID int64) (*RegattaView, error) {
	ev, err := s.regattaRepo.Current(ctx, s.db, time.Now())
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("active regatta")
		}
		return nil, err
	}
	view := &RegattaView{Regatta: ev}
	if p, err := s.regattaRepo.Participant(ctx, s.db, ev.ID, playerID); err == nil {
		view.Participant = p
	} else if !repository.IsNoRows(err) {
		return nil, err
	}
	board, err := s.regattaRepo.Leaderboard(ctx, ev.ID, 50)
	if err != nil {
		return nil, err
	}
	view.Leaderboard = board
	return view, nil
}

// Leaderboard returns the active event's standings.
func (s *RegattaService) Leaderboard(ctx context.Context, limit int) ([]repository.RegattaRow, error) {
	ev, err := s.regattaRepo.Current(ctx, s.db, time.Now())
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("active regatta")
		}
		return nil, err
	}
	return s.regattaRepo.Leaderboard(ctx, ev.ID, limit)
}

// Join enters the caller into the active regatta, once.
func (s *RegattaService) Join(ctx context.Context, playerID int64) (*domain.Regatta, error) {
	ev, err := s.regattaRepo.Current(ctx, s.db, time.Now())
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("active regatta")
		}
		return nil, err
	}
	joined, err := s.regattaRepo.Join(ctx, s.db, ev.ID, playerID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, alreadyDone("regatta joined")
	}
	return ev, nil
}

// SubmitTask scores one of the event's task indexes; each index counts once
// per player.
func (s *RegattaService) SubmitTask(ctx context.Context, playerID int64, taskIndex int) (int64, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ev, err := s.regattaRepo.Current(ctx, tx, now)
	if err != nil {
		if repository.IsNoRows(err) {
			return 0, notFound("active regatta")
		}
		return 0, err
	}
	if taskIndex < 1 || taskIndex > ev.TaskCount {
		return 0, notFound("regatta task")
	}
	if _, err := s.regattaRepo.Participant(ctx, tx, ev.ID, playerID); err != nil {
		if repository.IsNoRows(err) {
			return 0, invalidState("not joined")
		}
		return 0, err
	}

	fresh, err := s.regattaRepo.SubmitTask(ctx, tx, ev.ID, playerID, taskIndex)
	if err != nil {
		return 0, err
	}
	if !fresh {
		return 0, alreadyDone("task submitted")
	}
	total, err := s.regattaRepo.AddPoints(ctx, tx, ev.ID, playerID, ev.TaskPoints)
	if err != nil {
		return 0, err
	}
	return total, tx.Commit(ctx)
}

// ClaimResult is a claimed rank reward.
type ClaimResult struct {
	RegattaID int64 `json:"regatta_id"`
	Rank      int   `json:"rank"`
	Crystals  int64 `json:"crystals"`
}

// ClaimReward pays the rank reward for the caller's most recent completed
// regatta, once.
func (s *RegattaService) ClaimReward(ctx context.Context, playerID int64) (*ClaimResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ev, err := s.regattaRepo.LatestCompletedFor(ctx, tx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("completed regatta")
		}
		return nil, err
	}

	ok, err := s.regattaRepo.MarkClaimed(ctx, tx, ev.ID, playerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, alreadyDone("reward claimed")
	}

	rank, err := s.regattaRepo.Rank(ctx, tx, ev.ID, playerID)
	if err != nil {
		return nil, err
	}
	crystals := domain.RegattaRankReward(rank)
	meta := map[string]interface{}{"regatta_id": ev.ID, "rank": rank}
	if _, err := s.balance.CreditTx(ctx, tx, playerID, domain.CurrencyCrystals, crystals, "regatta_reward", meta); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ClaimResult{RegattaID: ev.ID, Rank: rank, Crystals: crystals}, nil
}

// Sweep transitions event windows; called from the background scheduler.
func (s *RegattaService) Sweep(ctx context.Context) error {
	now := time.Now()
	activated, err := s.regattaRepo.ActivateUpcoming(ctx, s.db, now)
	if err != nil {
		return err
	}
	completed, err := s.regattaRepo.CompleteEnded(ctx, s.db, now)
	if err != nil {
		return err
	}
	if activated > 0 || len(completed) > 0 {
		logger.Info("regatta sweep", "activated", activated, "completed", len(completed))
	}
	return nil
}
