package service

import (
	"context"
	"strings"

	"covenfield_backend/internal/domain"
	"covenfield_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationService records push subscriptions and per-category opt-ins.
// Actual delivery belongs to an external push worker.
type NotificationService struct {
	repo *repository.NotificationRepository
}

func NewNotificationService(db *pgxpool.Pool) *NotificationService {
	return &NotificationService{repo: repository.NewNotificationRepository(db)}
}

func (s *NotificationService) Subscribe(ctx context.Context, playerID int64, endpoint, p256dh, authKey string) (*domain.PushSubscription, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" || p256dh == "" || authKey == "" {
		return nil, invalidState("incomplete subscription")
	}
	sub := &domain.PushSubscription{PlayerID: playerID, Endpoint: endpoint, P256DH: p256dh, AuthKey: authKey}
	if err := s.repo.Subscribe(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *NotificationService) Unsubscribe(ctx context.Context, playerID int64, endpoint string) error {
	ok, err := s.repo.Unsubscribe(ctx, playerID, endpoint)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("subscription")
	}
	return nil
}

func (s *NotificationService) Prefs(ctx context.Context, playerID int64) (*domain.NotificationPrefs, error) {
	return s.repo.Prefs(ctx, playerID)
}

func (s *NotificationService) SetPrefs(ctx context.Context, prefs *domain.NotificationPrefs) error {
	return s.repo.SetPrefs(ctx, prefs)
}
