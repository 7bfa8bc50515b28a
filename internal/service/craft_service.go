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

// CraftService runs the factory (rune bakery) and armory (basic forge)
// queues. Both share the same slot mechanics; the producer kind selects the
// recipe set and the backing building.
type CraftService struct {
	db          *pgxpool.Pool
	craftRepo   *repository.CraftRepository
	invRepo     *repository.InventoryRepository
	townRepo    *repository.TownRepository
	boostRepo   *repository.BoostRepository
	progression *ProgressionService
}

func NewCraftService(db *pgxpool.Pool, progression *ProgressionService) *CraftService {
	return &CraftService{
		db:          db,
		craftRepo:   repository.NewCraftRepository(db),
		invRepo:     repository.NewInventoryRepository(db),
		townRepo:    repository.NewTownRepository(db),
		boostRepo:   repository.NewBoostRepository(db),
		progression: progression,
	}
}

func producerBuilding(kind catalog.ProducerKind) string {
	if kind == catalog.ProducerArmory {
		return "basic_forge"
	}
	return "rune_bakery"
}

// producerLevel returns the highest placed level of the producer's building,
// 0 when none is placed.
func (s *CraftService) producerLevel(ctx context.Context, q repository.Querier, playerID int64, kind catalog.ProducerKind) (int, error) {
	placements, err := s.townRepo.List(ctx, q, playerID)
	if err != nil {
		return 0, err
	}
	key := producerBuilding(kind)
	level := 0
	for _, p := range placements {
		if p.Kind == catalog.KindBuilding && p.TypeKey == key && p.Level > level {
			level = p.Level
		}
	}
	return level, nil
}

// QueueView is the current state of one producer's slots.
type QueueView struct {
	Producer catalog.ProducerKind `json:"producer"`
	Level    int                  `json:"building_level"`
	Jobs     []*domain.CraftJob   `json:"jobs"`
	Recipes  []catalog.Recipe     `json:"recipes"`
}

func (s *CraftService) Queue(ctx context.Context, playerID int64, kind catalog.ProducerKind) (*QueueView, error) {
	level, err := s.producerLevel(ctx, s.db, playerID, kind)
	if err != nil {
		return nil, err
	}
	jobs, err := s.craftRepo.ListJobs(ctx, playerID, kind)
	if err != nil {
		return nil, err
	}
	return &QueueView{Producer: kind, Level: level, Jobs: jobs, Recipes: catalog.RecipesFor(kind)}, nil
}

// Start consumes a recipe's inputs and occupies a free queue slot.
func (s *CraftService) Start(ctx context.Context, playerID int64, kind catalog.ProducerKind, recipeID int64) (*domain.CraftJob, error) {
	recipe, ok := catalog.GetRecipe(recipeID)
	if !ok || recipe.Producer != kind {
		return nil, notFound("recipe")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	level, err := s.producerLevel(ctx, tx, playerID, kind)
	if err != nil {
		return nil, err
	}
	if level == 0 {
		return nil, invalidState("%s not built", producerBuilding(kind))
	}
	if level < recipe.MinBuilding {
		return nil, invalidState("recipe needs building level %d", recipe.MinBuilding)
	}

	occupied, err := s.craftRepo.OccupiedSlots(ctx, tx, playerID, kind)
	if err != nil {
		return nil, err
	}
	slot := 0
	for i := 1; i <= catalog.CraftSlots; i++ {
		if !occupied[i] {
			slot = i
			break
		}
	}
	if slot == 0 {
		return nil, invalidState("all slots busy")
	}

	if err := s.invRepo.RemoveAll(ctx, tx, playerID, recipe.Inputs); err != nil {
		if err == repository.ErrInsufficientItems {
			return nil, insufficient("recipe inputs")
		}
		return nil, err
	}

	job := &domain.CraftJob{
		PlayerID:   playerID,
		Producer:   kind,
		Slot:       slot,
		RecipeID:   recipeID,
		StartedAt:  now,
		FinishesAt: now.Add(recipe.Duration),
	}
	if err := s.craftRepo.Insert(ctx, tx, job); err != nil {
		// Unique (player, producer, slot) index: a concurrent start won.
		if isUniqueViolation(err) {
			return nil, invalidState("slot taken")
		}
		return nil, err
	}
	return job, tx.Commit(ctx)
}

// CollectResult is one collected craft output.
type CollectResult struct {
	Item     catalog.ItemID `json:"item_id"`
	Quantity int64          `json:"quantity"`
	Levels   *LevelResult   `json:"levels"`
}

// Collect empties a finished slot, credits the output and grants XP.
func (s *CraftService) Collect(ctx context.Context, playerID int64, kind catalog.ProducerKind, slot int) (*CollectResult, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	recipeID, ok, err := s.craftRepo.Collect(ctx, tx, playerID, kind, slot, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.classifyCollect(ctx, playerID, kind, slot)
	}
	recipe, ok := catalog.GetRecipe(recipeID)
	if !ok {
		return nil, notFound("recipe")
	}

	boost, err := s.boostRepo.Get(ctx, tx, playerID, catalog.BoostCrystal)
	if err != nil {
		return nil, err
	}
	qty := int64(float64(recipe.OutputQty) * boost.Multiplier(now))

	if err := s.invRepo.Add(ctx, tx, playerID, recipe.Output, qty); err != nil {
		return nil, err
	}
	levels, err := s.progression.GrantXP(ctx, tx, playerID, catalog.ItemXP(recipe.Output, qty), now)
	if err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionCraft, qty, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &CollectResult{Item: recipe.Output, Quantity: qty, Levels: levels}, nil
}

func (s *CraftService) classifyCollect(ctx context.Context, playerID int64, kind catalog.ProducerKind, slot int) error {
	_, err := s.craftRepo.Job(ctx, s.db, playerID, kind, slot)
	if err != nil {
		if repository.IsNoRows(err) {
			return invalidState("slot empty")
		}
		return err
	}
	return invalidState("craft not finished")
}
