package database

import (
	"context"

	"github.com/firufinds/match-notifier/internal/entity"
)

type MatchRepository interface {
	GetMatchByCoincidenceID(ctx context.Context, coincidenciaID string) (*entity.MatchView, error)
}

type TokenRepository interface {
	GetPushToken(ctx context.Context, userID string) (string, error)
	UpsertPushToken(ctx context.Context, userID, pushToken string) error
}

// DedupeCache guards against redelivered coincidence events. MarkNotified
// reports whether this is the first time the id was seen within the TTL.
type DedupeCache interface {
	MarkNotified(ctx context.Context, coincidenciaID string) (bool, error)
}
