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

// ZooService manages enclosures, animal production and breeding.
type ZooService struct {
	db          *pgxpool.Pool
	zooRepo     *repository.ZooRepository
	invRepo     *repository.InventoryRepository
	playerRepo  *repository.PlayerRepository
	boostRepo   *repository.BoostRepository
	balance     *BalanceService
	progression *ProgressionService

	roll func(n int) int
}

func NewZooService(db *pgxpool.Pool, balance *BalanceService, progression *ProgressionService) *ZooService {
	return &ZooService{
		db:          db,
		zooRepo:     repository.NewZooRepository(db),
		invRepo:     repository.NewInventoryRepository(db),
		playerRepo:  repository.NewPlayerRepository(db),
		boostRepo:   repository.NewBoostRepository(db),
		balance:     balance,
		progression: progression,
		roll:        rand.Intn,
	}
}

// ZooView is all enclosures with their animals.
type ZooView struct {
	Enclosures []EnclosureView `json:"enclosures"`
}

type EnclosureView struct {
	ID      int64            `json:"id"`
	Animals []*domain.Animal `json:"animals"`
}

func (s *ZooService) View(ctx context.Context, playerID int64) (*ZooView, error) {
	encs, err := s.zooRepo.ListEnclosures(ctx, playerID)
	if err != nil {
		return nil, err
	}
	animals, err := s.zooRepo.ListAnimals(ctx, s.db, playerID)
	if err != nil {
		return nil, err
	}
	byEnc := make(map[int64][]*domain.Animal)
	for _, a := range animals {
		byEnc[a.EnclosureID] = append(byEnc[a.EnclosureID], a)
	}
	view := &ZooView{Enclosures: make([]EnclosureView, 0, len(encs))}
	for _, e := range encs {
		view.Enclosures = append(view.Enclosures, EnclosureView{ID: e.ID, Animals: byEnc[e.ID]})
	}
	return view, nil
}

// BuyEnclosure adds an empty enclosure for crystals.
func (s *ZooService) BuyEnclosure(ctx context.Context, playerID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, catalog.EnclosureCost, "enclosure_purchase", nil); err != nil {
		return 0, err
	}
	id, err := s.zooRepo.CreateEnclosure(ctx, tx, playerID)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

// BuyAnimal buys a shop-purchasable animal into an enclosure with a free slot.
func (s *ZooService) BuyAnimal(ctx context.Context, playerID, enclosureID int64, typeKey string) (*domain.Animal, error) {
	at, ok := catalog.GetAnimalType(typeKey)
	if !ok {
		return nil, notFound("animal type")
	}
	if at.Cost == 0 {
		return nil, invalidState("%s is breeding-only", at.Name)
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
	if p.Level < at.MinLevel {
		return nil, invalidState("animal locked until level %d", at.MinLevel)
	}

	owned, err := s.zooRepo.EnclosureOwned(ctx, tx, playerID, enclosureID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, notFound("enclosure")
	}
	count, err := s.zooRepo.CountAnimalsIn(ctx, tx, enclosureID)
	if err != nil {
		return nil, err
	}
	if count >= catalog.EnclosureSlots {
		return nil, invalidState("enclosure full")
	}

	meta := map[string]interface{}{"animal": typeKey}
	if _, err := s.balance.DebitTx(ctx, tx, playerID, domain.CurrencyCrystals, at.Cost, "animal_purchase", meta); err != nil {
		return nil, err
	}

	animal := &domain.Animal{
		EnclosureID:     enclosureID,
		PlayerID:        playerID,
		TypeKey:         typeKey,
		Tier:            at.Tier,
		LastCollectedAt: now,
	}
	if err := s.zooRepo.InsertAnimal(ctx, tx, animal); err != nil {
		return nil, err
	}
	return animal, tx.Commit(ctx)
}

// ZooCollectResult is one animal collection.
type ZooCollectResult struct {
	Item     catalog.ItemID `json:"item_id"`
	Quantity int64          `json:"quantity"`
	Cycles   int64          `json:"cycles"`
	Levels   *LevelResult   `json:"levels"`
}

// Collect credits the animal's accrued production cycles. Partial progress
// toward the next cycle is preserved; the guarded timestamp advance stops a
// concurrent collect from crediting the same cycles twice.
func (s *ZooService) Collect(ctx context.Context, playerID, animalID int64) (*ZooCollectResult, error) {
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	animal, err := s.zooRepo.GetAnimal(ctx, tx, playerID, animalID)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("animal")
		}
		return nil, err
	}
	at, ok := catalog.GetAnimalType(animal.TypeKey)
	if !ok {
		return nil, notFound("animal type")
	}

	cycles := animal.AccruedCycles(at.ProduceEvery, now)
	if cycles == 0 {
		return nil, invalidState("nothing to collect")
	}
	advancedTo := animal.LastCollectedAt.Add(time.Duration(cycles) * at.ProduceEvery)

	ok, err = s.zooRepo.AdvanceCollection(ctx, tx, animalID, animal.LastCollectedAt, advancedTo)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, alreadyDone("collected")
	}

	boost, err := s.boostRepo.Get(ctx, tx, playerID, catalog.BoostCrystal)
	if err != nil {
		return nil, err
	}
	qty := int64(float64(at.ProduceQty*cycles) * boost.Multiplier(now))

	if err := s.invRepo.Add(ctx, tx, playerID, at.Produce, qty); err != nil {
		return nil, err
	}
	levels, err := s.progression.GrantXP(ctx, tx, playerID, catalog.ItemXP(at.Produce, qty), now)
	if err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionCollectZoo, qty, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ZooCollectResult{Item: at.Produce, Quantity: qty, Cycles: cycles, Levels: levels}, nil
}

// breedReady reports whether the animal is past its breed cooldown. Bought
// animals carry no cooldown; offspring do until their ready time passes.
func breedReady(a *domain.Animal, now time.Time) bool {
	return a.BreedReadyAt == nil || !a.BreedReadyAt.After(now)
}

// Breed consumes two same-enclosure animals past their breed cooldown and
// produces one offspring whose tier rolls from the pair's tier chances.
func (s *ZooService) Breed(ctx context.Context, playerID, animalA, animalB int64) (*domain.Animal, error) {
	if animalA == animalB {
		return nil, invalidState("an animal cannot breed with itself")
	}
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	a, err := s.zooRepo.GetAnimal(ctx, tx, playerID, animalA)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("animal")
		}
		return nil, err
	}
	b, err := s.zooRepo.GetAnimal(ctx, tx, playerID, animalB)
	if err != nil {
		if repository.IsNoRows(err) {
			return nil, notFound("animal")
		}
		return nil, err
	}
	if a.EnclosureID != b.EnclosureID {
		return nil, invalidState("animals must share an enclosure")
	}
	if !breedReady(a, now) || !breedReady(b, now) {
		return nil, invalidState("animal still maturing")
	}

	ta, _ := catalog.GetAnimalType(a.TypeKey)
	tb, _ := catalog.GetAnimalType(b.TypeKey)

	ok, err := s.zooRepo.DeleteBreedingPair(ctx, tx, playerID, animalA, animalB)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidState("breeding pair unavailable")
	}

	tier := catalog.PickOffspringTier(a.Tier, b.Tier, s.roll(100))
	candidates := catalog.AnimalsOfTier(tier)
	if len(candidates) == 0 {
		return nil, invalidState("no animal of tier %d", tier)
	}
	offspringType := candidates[s.roll(len(candidates))]

	readyAt := now.Add(catalog.BreedCooldown(ta, tb))
	offspring := &domain.Animal{
		EnclosureID:     a.EnclosureID,
		PlayerID:        playerID,
		TypeKey:         offspringType.Key,
		Tier:            offspringType.Tier,
		LastCollectedAt: readyAt,
		BreedReadyAt:    &readyAt,
	}
	if err := s.zooRepo.InsertAnimal(ctx, tx, offspring); err != nil {
		return nil, err
	}
	if err := s.progression.TrackAction(ctx, tx, playerID, domain.ActionBreed, 1, now); err != nil {
		return nil, err
	}
	return offspring, tx.Commit(ctx)
}
