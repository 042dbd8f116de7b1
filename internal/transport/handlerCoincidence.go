package transport

import (
	"net/http"

	"github.com/firufinds/match-notifier/internal/entity"
	"github.com/firufinds/match-notifier/internal/service"

	"github.com/gin-gonic/gin"
)

type CoincidenceHandler struct {
	service service.CoincidenceUseCase
}

func NewCoincidenceHandler(service service.CoincidenceUseCase) *CoincidenceHandler {
	return &CoincidenceHandler{service: service}
}

// SendMatchNotification is the webhook the data platform invokes when a row
// lands in coincidencias_notificadas. The contract is binary: 200 when the
// chain ran, 400 with a diagnostic for everything else. Retry, if any,
// belongs to the invoking event system.
func (h *CoincidenceHandler) SendMatchNotification(c *gin.Context) {
	var payload entity.CoincidenceWebhook
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": entity.ErrMalformedPayload.Error() + ": " + err.Error()})
		return
	}

	if err := h.service.NotifyMatch(c.Request.Context(), payload.Record.CoincidenciaID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification sent successfully"})
}

func (h *CoincidenceHandler) RegisterToken(c *gin.Context) {
	var req entity.TokenRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registration, err := h.service.RegisterToken(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, registration)
}
