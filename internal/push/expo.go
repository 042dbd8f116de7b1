package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/firufinds/match-notifier/internal/entity"

	"github.com/sirupsen/logrus"
)

// Message is the Expo push API payload. It exists only for the duration of
// one dispatch call; nothing here is persisted.
type Message struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
}

// Sender is a downstream push provider (Expo here, could be FCM etc.).
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

type expoTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type expoResponse struct {
	Data expoTicket `json:"data"`
}

type ExpoClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewExpoClient(endpoint string, timeout time.Duration) *ExpoClient {
	return &ExpoClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ExpoClient) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", entity.ErrDeliveryFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %v", entity.ErrDeliveryFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrDeliveryFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: gateway status %d: %s", entity.ErrDeliveryFailure, resp.StatusCode, detail)
	}

	var result expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode gateway response: %v", entity.ErrDeliveryFailure, err)
	}

	// Expo returns 200 with a per-message ticket; an "error" ticket means
	// the message was rejected (DeviceNotRegistered and friends).
	if result.Data.Status == "error" {
		return fmt.Errorf("%w: ticket error: %s", entity.ErrDeliveryFailure, result.Data.Message)
	}

	logrus.WithFields(logrus.Fields{
		"ticket_id": result.Data.ID,
		"status":    result.Data.Status,
	}).Info("Push notification sent")

	return nil
}
