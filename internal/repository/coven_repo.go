package repository

import (
	"context"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CovenRepository struct {
	db *pgxpool.Pool
}

func NewCovenRepository(db *pgxpool.Pool) *CovenRepository {
	return &CovenRepository{db: db}
}

func (r *CovenRepository) Create(ctx context.Context, q Querier, name, description string, leaderID int64) (*domain.Coven, error) {
	var c domain.Coven
	err := q.QueryRow(ctx,
		`INSERT INTO covens (name, description, leader_id, member_count)
		 VALUES ($1, $2, $3, 0)
		 RETURNING id, name, description, leader_id, member_count, shared_crystals, created_at`,
		name, description, leaderID,
	).Scan(&c.ID, &c.Name, &c.Description, &c.LeaderID, &c.MemberCount, &c.SharedCrystals, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CovenRepository) Get(ctx context.Context, q Querier, id int64) (*domain.Coven, error) {
	var c domain.Coven
	err := q.QueryRow(ctx,
		`SELECT id, name, description, leader_id, member_count, shared_crystals, created_at
		 FROM covens WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.LeaderID, &c.MemberCount, &c.SharedCrystals, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MemberOf returns the caller's membership, pgx.ErrNoRows when covenless.
func (r *CovenRepository) MemberOf(ctx context.Context, q Querier, playerID int64) (*domain.CovenMember, error) {
	var m domain.CovenMember
	err := q.QueryRow(ctx,
		`SELECT coven_id, player_id, role, joined_at FROM coven_members WHERE player_id = $1`,
		playerID,
	).Scan(&m.CovenID, &m.PlayerID, &m.Role, &m.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *CovenRepository) Members(ctx context.Context, q Querier, covenID int64) ([]*domain.CovenMember, error) {
	rows, err := q.Query(ctx,
		`SELECT coven_id, player_id, role, joined_at
		 FROM coven_members WHERE coven_id = $1 ORDER BY joined_at`,
		covenID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.CovenMember
	for rows.Next() {
		var m domain.CovenMember
		if err := rows.Scan(&m.CovenID, &m.PlayerID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// AddMember inserts the membership and bumps the denormalized counter in
// one transaction. The unique index on player_id rejects double-joins.
func (r *CovenRepository) AddMember(ctx context.Context, q Querier, covenID, playerID int64, role string) error {
	if _, err := q.Exec(ctx,
		`INSERT INTO coven_members (coven_id, player_id, role) VALUES ($1, $2, $3)`,
		covenID, playerID, role,
	); err != nil {
		return err
	}
	_, err := q.Exec(ctx,
		`UPDATE covens SET member_count = member_count + 1 WHERE id = $1`, covenID)
	return err
}

// RemoveMember drops the membership and decrements the counter; returns the
// remaining member count so the caller can delete an empty coven.
func (r *CovenRepository) RemoveMember(ctx context.Context, q Querier, covenID, playerID int64) (int, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM coven_members WHERE coven_id = $1 AND player_id = $2`,
		covenID, playerID,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNoRows
	}
	var remaining int
	err = q.QueryRow(ctx,
		`UPDATE covens SET member_count = member_count - 1 WHERE id = $1 RETURNING member_count`,
		covenID,
	).Scan(&remaining)
	return remaining, err
}

func (r *CovenRepository) Delete(ctx context.Context, q Querier, covenID int64) error {
	_, err := q.Exec(ctx, `DELETE FROM covens WHERE id = $1`, covenID)
	return err
}

func (r *CovenRepository) SetRole(ctx context.Context, q Querier, covenID, playerID int64, role string) (bool, error) {
	tag, err := q.Exec(ctx,
		`UPDATE coven_members SET role = $1 WHERE coven_id = $2 AND player_id = $3`,
		role, covenID, playerID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CovenRepository) SetLeader(ctx context.Context, q Querier, covenID, playerID int64) error {
	_, err := q.Exec(ctx, `UPDATE covens SET leader_id = $1 WHERE id = $2`, playerID, covenID)
	return err
}

// --- tasks ---

func (r *CovenRepository) CreateTask(ctx context.Context, q Querier, t *domain.CovenTask) error {
	objJSON, err := t.Objectives.Marshal()
	if err != nil {
		return err
	}
	return q.QueryRow(ctx,
		`INSERT INTO coven_tasks (coven_id, title, objectives, reward_crystals)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.CovenID, t.Title, objJSON, t.RewardCrystals,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *CovenRepository) Tasks(ctx context.Context, q Querier, covenID int64) ([]*domain.CovenTask, error) {
	rows, err := q.Query(ctx,
		`SELECT id, coven_id, title, objectives, reward_crystals, completed, completed_at, created_at
		 FROM coven_tasks WHERE coven_id = $1 ORDER BY completed, id`,
		covenID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.CovenTask
	for rows.Next() {
		t, err := scanCovenTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanCovenTask(row interface{ Scan(dest ...any) error }) (*domain.CovenTask, error) {
	var t domain.CovenTask
	var objJSON []byte
	if err := row.Scan(&t.ID, &t.CovenID, &t.Title, &objJSON,
		&t.RewardCrystals, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	objs, err := domain.UnmarshalObjectives(objJSON)
	if err != nil {
		return nil, err
	}
	t.Objectives = objs
	return &t, nil
}

// LockTask reads a task under FOR UPDATE; contribution is a
// read-modify-write of the aggregate objective totals.
func (r *CovenRepository) LockTask(ctx context.Context, q Querier, covenID, taskID int64) (*domain.CovenTask, error) {
	return scanCovenTask(q.QueryRow(ctx,
		`SELECT id, coven_id, title, objectives, reward_crystals, completed, completed_at, created_at
		 FROM coven_tasks WHERE id = $1 AND coven_id = $2 FOR UPDATE`,
		taskID, covenID,
	))
}

func (r *CovenRepository) UpdateTask(ctx context.Context, q Querier, t *domain.CovenTask) error {
	objJSON, err := t.Objectives.Marshal()
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx,
		`UPDATE coven_tasks SET objectives = $1, completed = $2, completed_at = $3 WHERE id = $4`,
		objJSON, t.Completed, t.CompletedAt, t.ID,
	)
	return err
}

// RecordContribution keeps the per-member breakdown for display.
func (r *CovenRepository) RecordContribution(ctx context.Context, q Querier, taskID, playerID int64, objType string, amount int64) error {
	_, err := q.Exec(ctx,
		`INSERT INTO coven_contributions (task_id, player_id, type, amount)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (task_id, player_id, type) DO UPDATE
			SET amount = coven_contributions.amount + $4`,
		taskID, playerID, objType, amount,
	)
	return err
}

func (r *CovenRepository) AddSharedCrystals(ctx context.Context, q Querier, covenID, delta int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx,
		`UPDATE covens SET shared_crystals = shared_crystals + $1
		 WHERE id = $2 AND shared_crystals + $1 >= 0
		 RETURNING shared_crystals`,
		delta, covenID,
	).Scan(&balance)
	if IsNoRows(err) {
		return 0, ErrInsufficientFunds
	}
	return balance, err
}
