package database

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/firufinds/match-notifier/internal/entity"
)

const (
	matchViewPath  = "/rest/v1/vista_coincidencias_potenciales"
	pushTokensPath = "/rest/v1/user_push_tokens"
)

// SupabaseRepository talks to the data platform's PostgREST interface. It is
// read-only for the notification chain; the only write is the push-token
// upsert used by the registration endpoint.
type SupabaseRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewSupabaseRepository(baseURL, apiKey string, timeout time.Duration) *SupabaseRepository {
	return &SupabaseRepository{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (r *SupabaseRepository) GetMatchByCoincidenceID(ctx context.Context, coincidenciaID string) (*entity.MatchView, error) {
	query := url.Values{}
	query.Set("coincidencia_id", "eq."+coincidenciaID)
	query.Set("select", "*")

	var rows []entity.MatchView
	if err := r.getRows(ctx, matchViewPath, query, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrMatchNotFound, err)
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("%w: coincidence %s returned %d rows, want 1", entity.ErrMatchNotFound, coincidenciaID, len(rows))
	}

	return &rows[0], nil
}

func (r *SupabaseRepository) GetPushToken(ctx context.Context, userID string) (string, error) {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("select", "push_token")

	var rows []entity.PushTokenRow
	if err := r.getRows(ctx, pushTokensPath, query, &rows); err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrTokenNotFound, err)
	}
	if len(rows) != 1 {
		return "", fmt.Errorf("%w: user %s has %d registered tokens, want 1", entity.ErrTokenNotFound, userID, len(rows))
	}

	return rows[0].PushToken, nil
}

// UpsertPushToken mirrors the mobile client's registration flow: an upsert
// on user_id so the most recent registration wins.
func (r *SupabaseRepository) UpsertPushToken(ctx context.Context, userID, pushToken string) error {
	body, err := json.Marshal([]entity.PushTokenRow{{UserID: userID, PushToken: pushToken}})
	if err != nil {
		return fmt.Errorf("failed to marshal push token row: %w", err)
	}

	endpoint := r.baseURL + pushTokensPath + "?on_conflict=user_id"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build upsert request: %w", err)
	}
	r.setAuthHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push token upsert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push token upsert failed: status %d: %s", resp.StatusCode, detail)
	}

	return nil
}

func (r *SupabaseRepository) getRows(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := r.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	r.setAuthHeaders(req)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("query failed: status %d: %s", resp.StatusCode, detail)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode rows: %w", err)
	}

	return nil
}

func (r *SupabaseRepository) setAuthHeaders(req *http.Request) {
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
}
