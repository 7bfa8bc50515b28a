package service

import (
	"context"
	"math/rand"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MineService runs the depth-based mine with its lazily reset daily energy
// budget.
type MineService struct {
	db          *pgxpool.Pool
	mineRepo    *repository.MineRepository
	invRepo     *repository.InventoryRepository
	playerRepo  *repository.PlayerRepository
	boostRepo   *repository.BoostRepository
	balance     *BalanceService
	progression *ProgressionService

	// roll returns a uniform int in [0, n); swapped out in tests.
	roll func(n int) int
}

func NewMineService(db *pgxpool.Pool, balance *BalanceService, progression *ProgressionService) *MineService {
	return &MineService{
		db:          db,
		mineRepo:    repository.NewMineRepository(db),
		invRepo:     repository.NewInventoryRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		boostRepo:   repository.NewBoostRepository(db),
		balance:     balance,
		progression: progression,
		roll:        rand.Intn,
	}
}

// MineView is the mine state with the derived per-dig numbers.
type MineView struct {
	Depth      int            `json:"depth"`
	Energy     int            `json:"energy"`
	Tool       catalog.ItemID `json:"tool"`
	DigCost    int            `json:"dig_cost"`
	MaxEnergy  int            `json:"max_energy"`
	ResetsAt   time.Time      `json:"resets_at"`
}

func (s *MineService) View(ctx context.Context, playerID int64) (*MineView, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, p, err := s.lockAndRefresh(ctx, tx, playerID, now)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	tool, _ := catalog.GetPickaxe(m.Tool)
	return &MineView{
		Depth:     m.Depth,
		Energy:    m.Energy,
		Tool:      m.Tool,
		DigCost:   catalog.DigEnergyCost(tool, m.Depth),
		MaxEnergy: catalog.DailyEnergy(p.Level),
		ResetsAt:  m.EnergyResetAt.Add(24 * time.Hour),
	}, nil
}

// lockAndRefresh takes the mine row lock and applies the 24h lazy energy
// reset when due.
func (s *MineService) lockAndRefresh(ctx context.Context, q repository.Querier, playerID int64, now time.Time) (*domain.MineState, *domain.Player, error) {
	m, err := s.mineRepo.LockForUpdate(ctx, q, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, nil, notFound("mine")
		}
		return nil, nil, err
	}
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	if m.EnergyStale(now) {
		m.Energy = catalog.DailyEnergy(p.Level)
		m.EnergyResetAt = now
		if err := s.mineRepo.ResetEnergy(ctx, q, playerID, m.Energy, now); err != nil {
			return nil, nil, err
		}
	}
	return m, p, nil
}

// DigResult is one dig's outcome.
type DigResult struct {
	Ore      catalog.ItemID `json:"ore_id"`
	Quantity int64          `json:"quantity"`
	Depth    int            `json:"depth"`
	Energy   int            `json:"energy"`
	Levels   *LevelResult   `json:"levels"`
}

// Dig spends energy, advances depth by the tool's gain and rolls an ore
// drop from the tiers unlocked at the pre-dig depth.
func (s *MineService) Dig(ctx context.Context, playerID int64) (*DigResult, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, _, err := s.lockAndRefresh(ctx, tx, playerID, now)
	if err != nil {
		return nil, err
	}
	tool, ok := catalog.GetPickaxe(m.Tool)
	if !ok {
		return nil, invalidState("no pickaxe equipped")
	}

	cost := catalog.DigEnergyCost(tool, m.Depth)
	if m.Energy < cost {
		return nil, insufficient("energy")
	}

	ore := catalog.PickOre(m.Depth, s.roll(catalog.OreWeightTotal(m.Depth)))
	if tool.TopBonus > 0 && s.roll(100) < tool.TopBonus {
		tiers := catalog.UnlockedOreTiers(m.Depth)
		ore = tiers[len(tiers)-1].Item
	}

	boost, err := s.boostRepo.Get(ctx, tx, playerID, catalog.BoostCrystal)
	if err != nil {
		return nil, err
	}
	qty := int64(boost.Multiplier(now))
	if qty < 1 {
		qty = 1
	}

	newDepth := m.Depth + tool.DepthGain
	newEnergy := m.Energy - cost
	if err := s.mineRepo.SetDepthEnergy(ctx, tx, playerID, newDepth, newEnergy); err != nil {
		return nil, err
	}
	if err := s.invRepo.Add(ctx, tx, playerID, ore, qty); err != nil {
		return nil, err
	}
	levels, err := s.progression.GrantXP(ctx, tx, playerID, catalog.ItemXP(ore, qty), now)
	if err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionMine, qty, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &DigResult{Ore: ore, Quantity: qty, Depth: newDepth, Energy: newEnergy, Levels: levels}, nil
}

// RestoreEnergy refills the budget for crystals.
func (s *MineService) RestoreEnergy(ctx context.Context, playerID int64) (*MineView, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, p, err := s.lockAndRefresh(ctx, tx, playerID, now)
	if err != nil {
		return nil, err
	}
	full := catalog.DailyEnergy(p.Level)
	if m.Energy >= full {
		return nil, invalidState("energy already full")
	}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, catalog.EnergyRestoreCost, "energy_restore", nil); err != nil {
		return nil, err
	}
	if err := s.mineRepo.ResetEnergy(ctx, tx, playerID, full, m.EnergyResetAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	tool, _ := catalog.GetPickaxe(m.Tool)
	return &MineView{
		Depth: m.Depth, Energy: full, Tool: m.Tool,
		DigCost: catalog.DigEnergyCost(tool, m.Depth), MaxEnergy: full,
		ResetsAt: m.EnergyResetAt.Add(24 * time.Hour),
	}, nil
}

// RestoreEnergyTx is the ad-reward variant, run inside the ad watch
// transaction.
func (s *MineService) RestoreEnergyTx(ctx context.Context, q repository.Querier, playerID int64, now time.Time) error {
	m, p, err := s.lockAndRefresh(ctx, q, playerID, now)
	if err != nil {
		return err
	}
	full := catalog.DailyEnergy(p.Level)
	if m.Energy >= full {
		return invalidState("energy already full")
	}
	return s.mineRepo.ResetEnergy(ctx, q, playerID, full, m.EnergyResetAt)
}

// EquipTool switches the equipped pickaxe to one the player owns.
func (s *MineService) EquipTool(ctx context.Context, playerID int64, tool catalog.ItemID) error {
	if _, ok := catalog.GetPickaxe(tool); !ok {
		return notFound("pickaxe")
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	qty, err := s.invRepo.Quantity(ctx, tx, playerID, tool)
	if err != nil {
		return err
	}
	if qty < 1 {
		return insufficient("pickaxe")
	}
	if err := s.mineRepo.SetTool(ctx, tx, playerID, tool); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
