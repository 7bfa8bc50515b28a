package repository

import (
	"context"
	"time"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RegattaRepository struct {
	db *pgxpool.Pool
}

func NewRegattaRepository(db *pgxpool.Pool) *RegattaRepository {
	return &RegattaRepository{db: db}
}

// Current returns the active regatta, pgx.ErrNoRows when none is running.
func (r *RegattaRepository) Current(ctx context.Context, q Querier, now time.Time) (*domain.Regatta, error) {
	var ev domain.Regatta
	err := q.QueryRow(ctx,
		`SELECT id, name, status, starts_at, ends_at, task_points, task_count
		 FROM regattas
		 WHERE status = $1 AND starts_at <= $2 AND ends_at > $2
		 ORDER BY starts_at DESC LIMIT 1`,
		domain.RegattaActive, now,
	).Scan(&ev.ID, &ev.Name, &ev.Status, &ev.StartsAt, &ev.EndsAt, &ev.TaskPoints, &ev.TaskCount)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *RegattaRepository) Get(ctx context.Context, q Querier, id int64) (*domain.Regatta, error) {
	var ev domain.Regatta
	err := q.QueryRow(ctx,
		`SELECT id, name, status, starts_at, ends_at, task_points, task_count
		 FROM regattas WHERE id = $1`,
		id,
	).Scan(&ev.ID, &ev.Name, &ev.Status, &ev.StartsAt, &ev.EndsAt, &ev.TaskPoints, &ev.TaskCount)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Join enters the player into the event. Returns false when the player was
// already a participant.
func (r *RegattaRepository) Join(ctx context.Context, q Querier, regattaID, playerID int64) (bool, error) {
	tag, err := q.Exec(ctx,
		`INSERT INTO regatta_participants (regatta_id, player_id)
		 VALUES ($1, $2)
		 ON CONFLICT (regatta_id, player_id) DO NOTHING`,
		regattaID, playerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RegattaRepository) Participant(ctx context.Context, q Querier, regattaID, playerID int64) (*domain.RegattaParticipant, error) {
	var p domain.RegattaParticipant
	err := q.QueryRow(ctx,
		`SELECT regatta_id, player_id, points, claimed, joined_at
		 FROM regatta_participants WHERE regatta_id = $1 AND player_id = $2`,
		regattaID, playerID,
	).Scan(&p.RegattaID, &p.PlayerID, &p.Points, &p.Claimed, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SubmitTask records a task completion exactly once per (participant, task
// index). Returns false when the index was already submitted.
func (r *RegattaRepository) SubmitTask(ctx context.Context, q Querier, regattaID, playerID int64, taskIndex int) (bool, error) {
	tag, err := q.Exec(ctx,
		`INSERT INTO regatta_submissions (regatta_id, player_id, task_index)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (regatta_id, player_id, task_index) DO NOTHING`,
		regattaID, playerID, taskIndex,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RegattaRepository) AddPoints(ctx context.Context, q Querier, regattaID, playerID, points int64) (int64, error) {
	var total int64
	err := q.QueryRow(ctx,
		`UPDATE regatta_participants SET points = points + $1
		 WHERE regatta_id = $2 AND player_id = $3
		 RETURNING points`,
		points, regattaID, playerID,
	).Scan(&total)
	return total, err
}

type RegattaRow struct {
	PlayerID int64  `json:"player_id"`
	Username string `json:"username"`
	Points   int64  `json:"points"`
	Rank     int    `json:"rank"`
}

func (r *RegattaRepository) Leaderboard(ctx context.Context, regattaID int64, limit int) ([]RegattaRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT rp.player_id, p.username, rp.points,
			RANK() OVER (ORDER BY rp.points DESC, rp.joined_at) AS rnk
		 FROM regatta_participants rp
		 JOIN players p ON p.id = rp.player_id
		 WHERE rp.regatta_id = $1
		 ORDER BY rnk
		 LIMIT $2`,
		regattaID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegattaRow
	for rows.Next() {
		var row RegattaRow
		if err := rows.Scan(&row.PlayerID, &row.Username, &row.Points, &row.Rank); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Rank returns the player's final rank in a regatta.
func (r *RegattaRepository) Rank(ctx context.Context, q Querier, regattaID, playerID int64) (int, error) {
	var rank int
	err := q.QueryRow(ctx,
		`SELECT rnk FROM (
			SELECT player_id, RANK() OVER (ORDER BY points DESC, joined_at) AS rnk
			FROM regatta_participants WHERE regatta_id = $1
		 ) ranked WHERE player_id = $2`,
		regattaID, playerID,
	).Scan(&rank)
	return rank, err
}

// MarkClaimed is the one-way reward gate for a completed regatta.
func (r *RegattaRepository) MarkClaimed(ctx context.Context, q Querier, regattaID, playerID int64) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE regatta_participants SET claimed = true
		 WHERE regatta_id = $1 AND player_id = $2 AND claimed = false`,
		regattaID, playerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CompleteEnded flips active regattas whose window has passed; called from
// the background sweep.
func (r *RegattaRepository) CompleteEnded(ctx context.Context, q Querier, now time.Time) ([]int64, error) {
	rows, err := q.Query(ctx,
		`UPDATE regattas SET status = $1
		 WHERE status = $2 AND ends_at <= $3
		 RETURNING id`,
		domain.RegattaCompleted, domain.RegattaActive, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActivateUpcoming opens regattas whose start time has arrived.
func (r *RegattaRepository) ActivateUpcoming(ctx context.Context, q Querier, now time.Time) (int64, error) {
	tag, err := q.Exec(ctx,
		`UPDATE regattas SET status = $1
		 WHERE status = $2 AND starts_at <= $3 AND ends_at > $3`,
		domain.RegattaActive, domain.RegattaUpcoming, now,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// LatestCompletedFor returns the most recent completed regatta the player
// participated in, for the reward claim endpoint.
func (r *RegattaRepository) LatestCompletedFor(ctx context.Context, q Querier, playerID int64) (*domain.Regatta, error) {
	var ev domain.Regatta
	err := q.QueryRow(ctx,
		`SELECT r.id, r.name, r.status, r.starts_at, r.ends_at, r.task_points, r.task_count
		 FROM regattas r
		 JOIN regatta_participants rp ON rp.regatta_id = r.id
		 WHERE rp.player_id = $1 AND r.status = $2
		 ORDER BY r.ends_at DESC LIMIT 1`,
		playerID, domain.RegattaCompleted,
	).Scan(&ev.ID, &ev.Name, &ev.Status, &ev.StartsAt, &ev.EndsAt, &ev.TaskPoints, &ev.TaskCount)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}
