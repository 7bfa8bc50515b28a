package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/logger"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Starter kit constants. New towns get both level-1 producers pre-placed,
// wheat to plant and a basic pickaxe.
const (
	starterWheat = 10
)

type PlayerService struct {
	db         *pgxpool.Pool
	playerRepo *repository.PlayerRepository
	invRepo    *repository.InventoryRepository
	farmRepo   *repository.FarmRepository
	mineRepo   *repository.MineRepository
	townRepo   *repository.TownRepository
	boostRepo  *repository.BoostRepository
	balance    *BalanceService
}

func NewPlayerService(db *pgxpool.Pool, balance *BalanceService) *PlayerService {
	return &PlayerService{
		db:         db,
		playerRepo: repository.NewPlayerRepository(db),
		invRepo:    repository.NewInventoryRepository(db),
		farmRepo:   repository.NewFarmRepository(db),
		mineRepo:   repository.NewMineRepository(db),
		townRepo:   repository.NewTownRepository(db),
		boostRepo:  repository.NewBoostRepository(db),
		balance:    balance,
	}
}

// Register creates a player plus the starter kit in one transaction and
// returns a session token.
func (s *PlayerService) Register(ctx context.Context, username, secret string) (*domain.Player, string, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 32 {
		return nil, "", invalidState("username length")
	}
	if len(secret) < 8 {
		return nil, "", invalidState("secret too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.Create(ctx, tx, username, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", alreadyDone("username taken")
		}
		return nil, "", err
	}

	if err := s.farmRepo.SeedPlots(ctx, tx, p.ID); err != nil {
		return nil, "", err
	}
	if err := s.mineRepo.Seed(ctx, tx, p.ID, catalog.DailyEnergy(p.Level)); err != nil {
		return nil, "", err
	}
	if err := s.invRepo.Add(ctx, tx, p.ID, catalog.ItemWheat, starterWheat); err != nil {
		return nil, "", err
	}
	if err := s.invRepo.Add(ctx, tx, p.ID, catalog.ItemBasicPickaxe, 1); err != nil {
		return nil, "", err
	}

	// Both producers pre-placed so crafting works from the first session.
	starters := []domain.Placement{
		{PlayerID: p.ID, Kind: catalog.KindBuilding, TypeKey: "basic_forge", X: 0, Y: 0, Level: 1},
		{PlayerID: p.ID, Kind: catalog.KindBuilding, TypeKey: "rune_bakery", X: 3, Y: 0, Level: 1},
	}
	for i := range starters {
		if err := s.townRepo.Insert(ctx, tx, &starters[i]); err != nil {
			return nil, "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", err
	}

	token, err := GenerateJWT(p.ID)
	if err != nil {
		return nil, "", err
	}
	logger.Info("player registered", "player_id", p.ID, "username", username)
	return p, token, nil
}

// Login verifies the secret and issues a token.
func (s *PlayerService) Login(ctx context.Context, username, secret string) (*domain.Player, string, error) {
	p, hash, err := s.playerRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, "", unauthorized("bad credentials")
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) != nil {
		return nil, "", unauthorized("bad credentials")
	}
	token, err := GenerateJWT(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// Profile is the full own-player view.
type Profile struct {
	Player    *domain.Player           `json:"player"`
	Inventory map[catalog.ItemID]int64 `json:"inventory"`
	Boosts    []*domain.ActiveBoost    `json:"boosts,omitempty"`
}

func (s *PlayerService) Profile(ctx context.Context, playerID int64) (*Profile, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}
	inv, err := s.invRepo.List(ctx, playerID)
	if err != nil {
		return nil, err
	}
	boosts, err := s.boostRepo.ListActive(ctx, playerID, time.Now())
	if err != nil {
		return nil, err
	}
	return &Profile{Player: p, Inventory: inv, Boosts: boosts}, nil
}

// PublicProfile is the reduced view other players may fetch.
func (s *PlayerService) PublicProfile(ctx context.Context, playerID int64) (*domain.PublicProfile, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}
	pub := p.Public()
	return &pub, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
