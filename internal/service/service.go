package service

import (
	"context"

	"github.com/firufinds/match-notifier/internal/entity"
)

type CoincidenceUseCase interface {
	NotifyMatch(ctx context.Context, coincidenciaID string) error
	RegisterToken(ctx context.Context, req *entity.TokenRegistrationRequest) (*entity.TokenRegistration, error)
}
