package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type QuestRepository struct {
	db *pgxpool.Pool
}

func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

func (r *QuestRepository) GetActiveQuests(ctx context.Context, q Querier, maxLevel int) ([]*domain.Quest, error) {
	rows, err := q.Query(ctx,
		`SELECT id, title, description, objectives, reward_crystals, reward_xp, min_level, is_active, sort_order
		 FROM quests
		 WHERE is_active = true AND min_level <= $1
		 ORDER BY sort_order, id`,
		maxLevel,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Quest
	for rows.Next() {
		var qst domain.Quest
		var objJSON []byte
		if err := rows.Scan(&qst.ID, &qst.Title, &qst.Description, &objJSON,
			&qst.RewardCrystals, &qst.RewardXP, &qst.MinLevel, &qst.IsActive, &qst.SortOrder); err != nil {
			return nil, err
		}
		objs, err := domain.UnmarshalObjectives(objJSON)
		if err != nil {
			return nil, err
		}
		qst.Objectives = objs
		out = append(out, &qst)
	}
	return out, rows.Err()
}

func (r *QuestRepository) GetQuest(ctx context.Context, q Querier, questID int64) (*domain.Quest, error) {
	var qst domain.Quest
	var objJSON []byte
	err := q.QueryRow(ctx,
		`SELECT id, title, description, objectives, reward_crystals, reward_xp, min_level, is_active, sort_order
		 FROM quests WHERE id = $1`,
		questID,
	).Scan(&qst.ID, &qst.Title, &qst.Description, &objJSON,
		&qst.RewardCrystals, &qst.RewardXP, &qst.MinLevel, &qst.IsActive, &qst.SortOrder)
	if err != nil {
		return nil, err
	}
	objs, err := domain.UnmarshalObjectives(objJSON)
	if err != nil {
		return nil, err
	}
	qst.Objectives = objs
	return &qst, nil
}

// GetOrCreateProgress materializes a player's progress row from the quest
// definition (targets copied, currents zero).
func (r *QuestRepository) GetOrCreateProgress(ctx context.Context, q Querier, playerID int64, quest *domain.Quest) (*domain.PlayerQuest, error) {
	pq, err := r.getProgress(ctx, q, playerID, quest.ID)
	if err == nil {
		return pq, nil
	}
	if !IsNoRows(err) {
		return nil, err
	}

	fresh := make(domain.Objectives, len(quest.Objectives))
	for i, o := range quest.Objectives {
		fresh[i] = domain.Objective{Type: o.Type, Target: o.Target}
	}
	objJSON, err := fresh.Marshal()
	if err != nil {
		return nil, err
	}

	var created domain.PlayerQuest
	var storedJSON []byte
	err = q.QueryRow(ctx,
		`INSERT INTO player_quests (player_id, quest_id, objectives)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, quest_id) DO UPDATE SET quest_id = EXCLUDED.quest_id
		 RETURNING id, player_id, quest_id, objectives, completed, claimed, completed_at, claimed_at`,
		playerID, quest.ID, objJSON,
	).Scan(&created.ID, &created.PlayerID, &created.QuestID, &storedJSON,
		&created.Completed, &created.Claimed, &created.CompletedAt, &created.ClaimedAt)
	if err != nil {
		return nil, err
	}
	created.Objectives, err = domain.UnmarshalObjectives(storedJSON)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *QuestRepository) getProgress(ctx context.Context, q Querier, playerID, questID int64) (*domain.PlayerQuest, error) {
	var pq domain.PlayerQuest
	var objJSON []byte
	err := q.QueryRow(ctx,
		`SELECT id, player_id, quest_id, objectives, completed, claimed, completed_at, claimed_at
		 FROM player_quests WHERE player_id = $1 AND quest_id = $2`,
		playerID, questID,
	).Scan(&pq.ID, &pq.PlayerID, &pq.QuestID, &objJSON, &pq.Completed, &pq.Claimed, &pq.CompletedAt, &pq.ClaimedAt)
	if err != nil {
		return nil, err
	}
	objs, err := domain.UnmarshalObjectives(objJSON)
	if err != nil {
		return nil, err
	}
	pq.Objectives = objs
	return &pq, nil
}

func (r *QuestRepository) ListProgress(ctx context.Context, playerID int64) (map[int64]*domain.PlayerQuest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, quest_id, objectives, completed, claimed, completed_at, claimed_at
		 FROM player_quests WHERE player_id = $1`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]*domain.PlayerQuest)
	for rows.Next() {
		var pq domain.PlayerQuest
		var objJSON []byte
		if err := rows.Scan(&pq.ID, &pq.PlayerID, &pq.QuestID, &objJSON,
			&pq.Completed, &pq.Claimed, &pq.CompletedAt, &pq.ClaimedAt); err != nil {
			return nil, err
		}
		objs, err := domain.UnmarshalObjectives(objJSON)
		if err != nil {
			return nil, err
		}
		pq.Objectives = objs
		out[pq.QuestID] = &pq
	}
	return out, rows.Err()
}

func (r *QuestRepository) UpdateProgress(ctx context.Context, q Querier, pq *domain.PlayerQuest) error {
	objJSON, err := pq.Objectives.Marshal()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`UPDATE player_quests SET objectives = $1, completed = $2, completed_at = $3 WHERE id = $4`,
		objJSON, pq.Completed, pq.CompletedAt, pq.ID,
	)
	return err
}

// Claim flips the claimed flag and returns the quest rewards. The WHERE
// clause is the one-way gate: completed, not yet claimed, owned by caller.
func (r *QuestRepository) Claim(ctx context.Context, q Querier, playerID, questID int64, now time.Time) (crystals, xp int64, ok bool, err error) {
	err = q.QueryRow(ctx,
		`UPDATE player_quests pq SET claimed = true, claimed_at = $1
		 FROM quests qs
		 WHERE pq.quest_id = qs.id
		   AND pq.player_id = $2 AND pq.quest_id = $3
		   AND pq.completed = true AND pq.claimed = false
		 RETURNING qs.reward_crystals, qs.reward_xp`,
		now, playerID, questID,
	).Scan(&crystals, &xp)
	if IsNoRows(err) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return crystals, xp, true, nil
}
