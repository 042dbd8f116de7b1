package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/firufinds/match-notifier/internal/database"
	"github.com/firufinds/match-notifier/internal/entity"
	"github.com/firufinds/match-notifier/internal/push"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	notificationTitle = "¡Posible coincidencia encontrada!"

	// Fallback when the matched report carries no breed. The platform view
	// returns raza as null in that case.
	unknownBreed = "sin raza"
)

type coincidenceUseCase struct {
	matches database.MatchRepository
	tokens  database.TokenRepository
	dedupe  database.DedupeCache
	sender  push.Sender

	// propagateDeliveryErrors makes a gateway failure fatal for the
	// invocation instead of logged-and-swallowed.
	propagateDeliveryErrors bool
}

// NewCoincidenceUseCase wires the notify chain. dedupe may be nil, in which
// case redelivered events produce duplicate pushes.
func NewCoincidenceUseCase(matches database.MatchRepository, tokens database.TokenRepository, dedupe database.DedupeCache, sender push.Sender, propagateDeliveryErrors bool) CoincidenceUseCase {
	return &coincidenceUseCase{
		matches:                 matches,
		tokens:                  tokens,
		dedupe:                  dedupe,
		sender:                  sender,
		propagateDeliveryErrors: propagateDeliveryErrors,
	}
}

// NotifyMatch runs the chain for one coincidence event: match lookup, then
// token lookup, then one dispatch attempt. Lookups are strictly sequential,
// the second needs the first's usuario_perdida_id. First failure
// short-circuits.
func (uc *coincidenceUseCase) NotifyMatch(ctx context.Context, coincidenciaID string) error {
	if uc.dedupe != nil {
		first, err := uc.dedupe.MarkNotified(ctx, coincidenciaID)
		if err != nil {
			// A cache outage must not block notifications; worst case is a
			// duplicate push, which is the behavior without dedupe anyway.
			logrus.Warnf("dedupe check failed for coincidence %s: %v", coincidenciaID, err)
		} else if !first {
			logrus.WithField("coincidencia_id", coincidenciaID).Info("Duplicate coincidence event, skipping dispatch")
			return nil
		}
	}

	match, err := uc.matches.GetMatchByCoincidenceID(ctx, coincidenciaID)
	if err != nil {
		return err
	}

	token, err := uc.tokens.GetPushToken(ctx, match.UsuarioPerdidaID)
	if err != nil {
		return err
	}

	msg := &push.Message{
		To:    token,
		Sound: "default",
		Title: notificationTitle,
		Body:  matchBody(match),
		Data:  map[string]interface{}{"someData": "goes here"},
	}

	if err := uc.sender.Send(ctx, msg); err != nil {
		if uc.propagateDeliveryErrors {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"coincidencia_id": coincidenciaID,
			"user_id":         match.UsuarioPerdidaID,
		}).Errorf("Error sending push notification: %v", err)
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"coincidencia_id": coincidenciaID,
		"user_id":         match.UsuarioPerdidaID,
		"porcentaje":      match.PorcentajeCoincidencia,
	}).Info("Match notification dispatched")

	return nil
}

func (uc *coincidenceUseCase) RegisterToken(ctx context.Context, req *entity.TokenRegistrationRequest) (*entity.TokenRegistration, error) {
	if err := uc.tokens.UpsertPushToken(ctx, req.UserID, req.PushToken); err != nil {
		return nil, fmt.Errorf("failed to register push token: %w", err)
	}

	return &entity.TokenRegistration{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		PushToken: req.PushToken,
		UpdatedAt: time.Now(),
	}, nil
}

// matchBody renders the notification text. The percentage prints like a
// plain number, 75 not 75.00.
func matchBody(match *entity.MatchView) string {
	raza := unknownBreed
	if match.Raza != nil && *match.Raza != "" {
		raza = *match.Raza
	}
	porcentaje := strconv.FormatFloat(match.PorcentajeCoincidencia, 'f', -1, 64)
	return fmt.Sprintf("Se encontró una mascota (%s - %s) que coincide en un %s%% con tu reporte.", match.Especie, raza, porcentaje)
}
