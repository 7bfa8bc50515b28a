package service

import (
	"context"
	"time"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FarmService struct {
	db          *pgxpool.Pool
	farmRepo    *repository.FarmRepository
	invRepo     *repository.InventoryRepository
	playerRepo  *repository.PlayerRepository
	boostRepo   *repository.BoostRepository
	progression *ProgressionService
}

func NewFarmService(db *pgxpool.Pool, progression *ProgressionService) *FarmService {
	return &FarmService{
		db:          db,
		farmRepo:    repository.NewFarmRepository(db),
		invRepo:     repository.NewInventoryRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		boostRepo:   repository.NewBoostRepository(db),
		progression: progression,
	}
}

// PlotView is one plot with its derived readiness.
type PlotView struct {
	Plot    int             `json:"plot"`
	CropID  *catalog.ItemID `json:"crop_id,omitempty"`
	ReadyAt *time.Time      `json:"ready_at,omitempty"`
	Ready   bool            `json:"ready"`
}

func (s *FarmService) Plots(ctx context.Context, playerID int64) ([]PlotView, error) {
	plots, err := s.farmRepo.GetPlots(ctx, playerID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]PlotView, 0, len(plots))
	for _, p := range plots {
		out = append(out, PlotView{Plot: p.Plot, CropID: p.CropID, ReadyAt: p.ReadyAt, Ready: p.Ready(now)})
	}
	return out, nil
}

// Plant consumes one seed and occupies an empty plot.
func (s *FarmService) Plant(ctx context.Context, playerID int64, plot int, cropID catalog.ItemID) (*PlotView, error) {
	crop, ok := catalog.GetCrop(cropID)
	if !ok {
		return nil, notFound("crop")
	}
	if plot < 1 || plot > domain.FarmPlots {
		return nil, notFound("plot")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.Level < crop.MinLevel {
		return nil, invalidState("crop locked until level %d", crop.MinLevel)
	}

	if err := s.invRepo.Remove(ctx, tx, playerID, catalog.SeedFor(cropID), 1); err != nil {
		if err == repository.ErrInsufficientItems {
			return nil, insufficient("seeds")
		}
		return nil, err
	}

	readyAt := now.Add(crop.GrowTime)
	ok, err = s.farmRepo.Plant(ctx, tx, playerID, plot, cropID, readyAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidState("plot occupied")
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &PlotView{Plot: plot, CropID: &cropID, ReadyAt: &readyAt}, nil
}

// HarvestResult is one successful harvest.
type HarvestResult struct {
	Crop     catalog.ItemID `json:"crop_id"`
	Quantity int64          `json:"quantity"`
	Levels   *LevelResult   `json:"levels"`
}

// Harvest clears a ready plot, credits the yield and grants XP. The
// conditional UPDATE in the repository makes a concurrent double-harvest
// collect nothing.
func (s *FarmService) Harvest(ctx context.Context, playerID int64, plot int) (*HarvestResult, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cropID, ok, err := s.farmRepo.Harvest(ctx, tx, playerID, plot, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyHarvest(ctx, playerID, plot, now)
	}

	crop, ok := catalog.GetCrop(cropID)
	if !ok {
		return nil, notFound("crop")
	}

	boost, err := s.boostRepo.Get(ctx, tx, playerID, catalog.BoostCrystal)
	if err != nil {
		return nil, err
	}
	qty := int64(float64(crop.Yield) * boost.Multiplier(now))

	if err := s.invRepo.Add(ctx, tx, playerID, cropID, qty); err != nil {
		return nil, err
	}
	levels, err := s.progression.GrantXP(ctx, tx, playerID, catalog.ItemXP(cropID, qty), now)
	if err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionHarvest, qty, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &HarvestResult{Crop: cropID, Quantity: qty, Levels: levels}, nil
}

func (s *FarmService) classifyHarvest(ctx context.Context, playerID int64, plot int, now time.Time) error {
	p, err := s.farmRepo.PlotState(ctx, s.db, playerID, plot)
	if err != nil {
		if repository.IsNoRows(err) {
			return notFound("plot")
		}
		return err
	}
	if p.Empty() {
		return invalidState("plot empty")
	}
	return invalidState("crop not ready")
}
