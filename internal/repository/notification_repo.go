package repository

import (
	"context"

	"covenfield_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Subscribe upserts on the endpoint URL so a re-registering browser does not
// pile up duplicate rows.
func (r *NotificationRepository) Subscribe(ctx context.Context, s *domain.PushSubscription) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO push_subscriptions (player_id, endpoint, p256dh, auth_key)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (endpoint) DO UPDATE SET
			player_id = EXCLUDED.player_id,
			p256dh = EXCLUDED.p256dh,
			auth_key = EXCLUDED.auth_key
		 RETURNING id, created_at`,
		s.PlayerID, s.Endpoint, s.P256DH, s.AuthKey,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *NotificationRepository) Unsubscribe(ctx context.Context, playerID int64, endpoint string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM push_subscriptions WHERE player_id = $1 AND endpoint = $2`,
		playerID, endpoint,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) Subscriptions(ctx context.Context, playerID int64) ([]*domain.PushSubscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, endpoint, p256dh, auth_key, created_at
		 FROM push_subscriptions WHERE player_id = $1 ORDER BY id`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.PushSubscription
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.Endpoint, &s.P256DH, &s.AuthKey, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Prefs returns the player's opt-in set, defaulting to all-on when no row
// was ever written.
func (r *NotificationRepository) Prefs(ctx context.Context, playerID int64) (*domain.NotificationPrefs, error) {
	p := &domain.NotificationPrefs{PlayerID: playerID, Production: true, Market: true, Coven: true, Daily: true}
	err := r.db.QueryRow(ctx,
		`SELECT production, market, coven, daily FROM notification_prefs WHERE player_id = $1`,
		playerID,
	).Scan(&p.Production, &p.Market, &p.Coven, &p.Daily)
	if IsNoRows(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *NotificationRepository) SetPrefs(ctx context.Context, p *domain.NotificationPrefs) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notification_prefs (player_id, production, market, coven, daily)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (player_id) DO UPDATE SET
			production = EXCLUDED.production,
			market = EXCLUDED.market,
			coven = EXCLUDED.coven,
			daily = EXCLUDED.daily`,
		p.PlayerID, p.Production, p.Market, p.Coven, p.Daily,
	)
	return err
}
