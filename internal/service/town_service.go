package service

import (
	"context"

	"covenfield_backend/internal/catalog"
	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TownService manages the player's square town grid.
type TownService struct {
	db          *pgxpool.Pool
	townRepo    *repository.TownRepository
	playerRepo  *repository.PlayerRepository
	balance     *BalanceService
	progression *ProgressionService
}

func NewTownService(db *pgxpool.Pool, balance *BalanceService, progression *ProgressionService) *TownService {
	return &TownService{
		db:          db,
		townRepo:    repository.NewTownRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		balance:     balance,
		progression: progression,
	}
}

// PlacementView decorates a placement with its derived road shape.
type PlacementView struct {
	*domain.Placement
	RoadType catalog.RoadType `json:"road_type,omitempty"`
}

// TownView is the whole grid.
type TownView struct {
	Size       int             `json:"size"`
	Population int             `json:"population"`
	Placements []PlacementView `json:"placements"`
}

// Grid returns the town with road shapes computed from neighbor occupancy
// at read time; shapes are never stored.
func (s *TownService) Grid(ctx context.Context, playerID int64) (*TownView, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}
	placements, err := s.townRepo.List(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}

	roads := make(map[[2]int]bool)
	for _, pl := range placements {
		if pl.Kind == catalog.KindRoad {
			roads[[2]int{pl.X, pl.Y}] = true
		}
	}

	view := &TownView{Size: p.TownSize, Population: p.Population, Placements: make([]PlacementView, 0, len(placements))}
	for _, pl := range placements {
		pv := PlacementView{Placement: pl}
		if pl.Kind == catalog.KindRoad {
			pv.RoadType = catalog.InferRoadType(
				roads[[2]int{pl.X, pl.Y - 1}],
				roads[[2]int{pl.X + 1, pl.Y}],
				roads[[2]int{pl.X, pl.Y + 1}],
				roads[[2]int{pl.X - 1, pl.Y}],
			)
		}
		view.Placements = append(view.Placements, pv)
	}
	return view, nil
}

// placeableCost resolves the catalog price and gates for a kind/type pair.
func placeableCost(kind catalog.PlaceableKind, typeKey string, p *domain.Player) (int64, error) {
	switch kind {
	case catalog.KindBuilding:
		b, ok := catalog.GetBuildingType(typeKey)
		if !ok {
			return 0, notFound("building type")
		}
		if p.Level < b.MinLevel {
			return 0, invalidState("building locked until level %d", b.MinLevel)
		}
		if p.Population < b.PopNeeded {
			return 0, invalidState("building needs population %d", b.PopNeeded)
		}
		return b.Cost, nil
	case catalog.KindDecoration:
		d, ok := catalog.GetDecorationType(typeKey)
		if !ok {
			return 0, notFound("decoration type")
		}
		if p.Level < d.MinLevel {
			return 0, invalidState("decoration locked until level %d", d.MinLevel)
		}
		return d.Cost, nil
	case catalog.KindRoad:
		return catalog.RoadCost, nil
	}
	return 0, invalidState("unknown placeable kind %q", kind)
}

// fits checks grid bounds and overlap against existing placements, skipping
// the placement being moved.
func fits(p *domain.Placement, size int, placements []*domain.Placement, skipID int64) error {
	w, h := p.Footprint()
	if p.X < 0 || p.Y < 0 || p.X+w > size || p.Y+h > size {
		return invalidState("out of bounds")
	}
	for _, other := range placements {
		if other.ID == skipID {
			continue
		}
		ow, oh := other.Footprint()
		if p.X < other.X+ow && other.X < p.X+w && p.Y < other.Y+oh && other.Y < p.Y+h {
			return invalidState("overlaps placement %d", other.ID)
		}
	}
	return nil
}

// Place buys and places a building, road cell or decoration. The price gets
// the level discount; placing a house recomputes population.
func (s *TownService) Place(ctx context.Context, playerID int64, kind catalog.PlaceableKind, typeKey string, x, y int) (*domain.Placement, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.LockForUpdate(ctx, tx, playerID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("player")
		}
		return nil, err
	}

	cost, err := placeableCost(kind, typeKey, p)
	if err != nil {
		return nil, err
	}
	cost = catalog.PlacementDiscount(cost, p.Level)

	placement := &domain.Placement{PlayerID: playerID, Kind: kind, TypeKey: typeKey, X: x, Y: y, Level: 1}
	placements, err := s.townRepo.List(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if err := fits(placement, p.TownSize, placements, 0); err != nil {
		return nil, err
	}

	if cost > 0 {
		meta := map[string]interface{}{"type": typeKey}
		if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, cost, "placement", meta); err != nil {
			return nil, err
		}
	}
	if err := s.townRepo.Insert(ctx, tx, placement); err != nil {
		return nil, err
	}

	if kind == catalog.KindBuilding {
		if err := s.recomputePopulation(ctx, tx, playerID); err != nil {
			return nil, err
		}
		if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionPlace, 1, placement.CreatedAt); err != nil {
			return nil, err
		}
	}
	return placement, tx.Commit(ctx)
}

// Move relocates a placement; free of charge.
func (s *TownService) Move(ctx context.Context, playerID, placementID int64, x, y int) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	placement, err := s.townRepo.Get(ctx, tx, playerID, placementID)
	if err != nil {
		if repository.IsNoRows(err) {
			return notFound("placement")
		}
		return err
	}

	moved := *placement
	moved.X, moved.Y = x, y
	placements, err := s.townRepo.List(ctx, tx, playerID)
	if err != nil {
		return err
	}
	if err := fits(&moved, p.TownSize, placements, placementID); err != nil {
		return err
	}

	ok, err := s.townRepo.Move(ctx, tx, playerID, placementID, x, y)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("placement")
	}
	return tx.Commit(ctx)
}

// Remove deletes a placement. No refund; houses recompute population.
func (s *TownService) Remove(ctx context.Context, playerID, placementID int64) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	placement, err := s.townRepo.Get(ctx, tx, playerID, placementID)
	if err != nil {
		if repository.IsNoRows(err) {
			return notFound("placement")
		}
		return err
	}
	ok, err := s.townRepo.Delete(ctx, tx, playerID, placementID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("placement")
	}
	if placement.Kind == catalog.KindBuilding {
		if err := s.recomputePopulation(ctx, tx, playerID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Upgrade raises a building's level for its base cost times the next level,
// with the usual discount.
func (s *TownService) Upgrade(ctx context.Context, playerID, placementID int64) (*domain.Placement, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.playerRepo.LockForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	placement, err := s.townRepo.Get(ctx, tx, playerID, placementID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("placement")
		}
		return nil, err
	}
	if placement.Kind != catalog.KindBuilding {
		return nil, invalidState("only buildings upgrade")
	}
	b, ok := catalog.GetBuildingType(placement.TypeKey)
	if !ok {
		return nil, notFound("building type")
	}

	nextLevel := placement.Level + 1
	cost := catalog.PlacementDiscount(b.Cost*int64(nextLevel), p.Level)
	meta := map[string]interface{}{"type": placement.TypeKey, "level": nextLevel}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, cost, "upgrade", meta); err != nil {
		return nil, err
	}
	if err := s.townRepo.SetLevel(ctx, tx, placementID, nextLevel); err != nil {
		return nil, err
	}
	if err := s.recomputePopulation(ctx, tx, playerID); err != nil {
		return nil, err
	}

	placement.Level = nextLevel
	return placement, tx.Commit(ctx)
}

func (s *TownService) recomputePopulation(ctx context.Context, q repository.Querier, playerID int64) error {
	popByType := make(map[string]int)
	for key, b := range catalog.AllBuildingTypes() {
		popByType[key] = b.Population
	}
	total, err := s.townRepo.Population(ctx, q, playerID, popByType)
	if err != nil {
		return err
	}
	return s.playerRepo.SetPopulation(ctx, q, playerID, total)
}
