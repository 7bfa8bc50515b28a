package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func scanAchievements(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*domain.Achievement, error) {
	var out []*domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.ConditionType,
			&a.Threshold, &a.RewardCrystals, &a.RewardXP, &a.Title); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

const achievementColumns = `id, name, description, condition_type, threshold,
	reward_crystals, reward_xp, COALESCE(title, '')`

func (r *AchievementRepository) All(ctx context.Context) ([]*domain.Achievement, error) {
	rows, err := r.db.Query(ctx, `SELECT `+achievementColumns+` FROM achievements ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAchievements(rows)
}

// ByCondition returns all achievements tracking one condition type, the
// scan set for a progress update.
func (r *AchievementRepository) ByCondition(ctx context.Context, q Querier, conditionType string) ([]*domain.Achievement, error) {
	rows, err := q.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE condition_type = $1 ORDER BY threshold`,
		conditionType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAchievements(rows)
}

// Advance bumps a progress counter (or takes the value as absolute for
// stat-style conditions) and reports whether the threshold was crossed for
// the first time. Must run inside a transaction: the FOR UPDATE lock keeps
// two concurrent calls from both crossing.
func (r *AchievementRepository) Advance(ctx context.Context, q Querier, playerID int64, a *domain.Achievement, increment int64, absolute bool, now time.Time) (bool, error) {
	if _, err := q.Exec(ctx,
		`INSERT INTO player_achievements (player_id, achievement_id) VALUES ($1, $2)
		 ON CONFLICT (player_id, achievement_id) DO NOTHING`,
		playerID, a.ID,
	); err != nil {
		return false, err
	}

	var progress int64
	var completed bool
	err := q.QueryRow(ctx,
		`SELECT progress, completed FROM player_achievements
		 WHERE player_id = $1 AND achievement_id = $2 FOR UPDATE`,
		playerID, a.ID,
	).Scan(&progress, &completed)
	if err != nil {
		return false, err
	}
	if completed {
		// Completion is one-way; nothing left to track.
		return false, nil
	}

	if absolute {
		if increment > progress {
			progress = increment
		}
	} else {
		progress += increment
	}
	if progress > a.Threshold {
		progress = a.Threshold
	}
	crossed := progress >= a.Threshold

	_, err = q.Exec(ctx,
		`UPDATE player_achievements SET progress = $1, completed = $2,
			completed_at = CASE WHEN $2 THEN $3 ELSE completed_at END
		 WHERE player_id = $4 AND achievement_id = $5`,
		progress, crossed, now, playerID, a.ID,
	)
	if err != nil {
		return false, err
	}
	return crossed, nil
}

func (r *AchievementRepository) ListProgress(ctx context.Context, playerID int64) (map[int64]*domain.PlayerAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT player_id, achievement_id, progress, completed, claimed, completed_at, claimed_at
		 FROM player_achievements WHERE player_id = $1`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]*domain.PlayerAchievement)
	for rows.Next() {
		var pa domain.PlayerAchievement
		if err := rows.Scan(&pa.PlayerID, &pa.AchievementID, &pa.Progress,
			&pa.Completed, &pa.Claimed, &pa.CompletedAt, &pa.ClaimedAt); err != nil {
			return nil, err
		}
		out[pa.AchievementID] = &pa
	}
	return out, rows.Err()
}

// Claim marks the cosmetic title claim; rewards were granted at completion.
func (r *AchievementRepository) Claim(ctx context.Context, q Querier, playerID, achievementID int64, now time.Time) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE player_achievements SET claimed = true, claimed_at = $1
		 WHERE player_id = $2 AND achievement_id = $3 AND completed = true AND claimed = false`,
		now, playerID, achievementID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Progress returns one progress row, used to tell "already claimed" apart
// from "not completed yet" when a claim is rejected.
func (r *AchievementRepository) Progress(ctx context.Context, q Querier, playerID, achievementID int64) (*domain.PlayerAchievement, error) {
	var pa domain.PlayerAchievement
	err := q.QueryRow(ctx,
		`SELECT player_id, achievement_id, progress, completed, claimed, completed_at, claimed_at
		 FROM player_achievements WHERE player_id = $1 AND achievement_id = $2`,
		playerID, achievementID,
	).Scan(&pa.PlayerID, &pa.AchievementID, &pa.Progress, &pa.Completed, &pa.Claimed, &pa.CompletedAt, &pa.ClaimedAt)
	if err != nil {
		return nil, err
	}
	return &pa, nil
}
