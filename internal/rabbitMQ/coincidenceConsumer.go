package rabbitMQ

import (
	"context"
	"encoding/json"

	"github.com/firufinds/match-notifier/internal/entity"
	"github.com/firufinds/match-notifier/internal/service"

	"github.com/sirupsen/logrus"
)

// CoincidenceHandler adapts queue deliveries to the notify use case.
// Messages carry the same {"record":{"coincidencia_id":...}} shape as the
// webhook. A resolver failure returns the error so the broker nacks and
// redelivers; a malformed message is logged and dropped, requeueing cannot
// fix it.
func CoincidenceHandler(ctx context.Context, usecase service.CoincidenceUseCase) func(message []byte) error {
	return func(message []byte) error {
		var payload entity.CoincidenceWebhook
		if err := json.Unmarshal(message, &payload); err != nil {
			logrus.Errorf("Dropping unparseable coincidence event: %v", err)
			return nil
		}

		if payload.Record == nil || payload.Record.CoincidenciaID == "" {
			logrus.Errorf("Dropping coincidence event: %v", entity.ErrMalformedPayload)
			return nil
		}

		return usecase.NotifyMatch(ctx, payload.Record.CoincidenciaID)
	}
}
