package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/firufinds/match-notifier/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUseCase struct {
	notifyErr error
	notified  []string
	regErr    error
	regCalls  int
}

func (f *fakeUseCase) NotifyMatch(ctx context.Context, coincidenciaID string) error {
	f.notified = append(f.notified, coincidenciaID)
	return f.notifyErr
}

func (f *fakeUseCase) RegisterToken(ctx context.Context, req *entity.TokenRegistrationRequest) (*entity.TokenRegistration, error) {
	f.regCalls++
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &entity.TokenRegistration{ID: "reg-1", UserID: req.UserID, PushToken: req.PushToken}, nil
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendMatchNotificationSuccess(t *testing.T) {
	usecase := &fakeUseCase{}
	router := InitRoutes(usecase)

	w := performRequest(router, http.MethodPost, "/functions/v1/send-match-notification",
		`{"record":{"coincidencia_id":"c-1","mascota_id":"ignored"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Notification sent successfully"}`, w.Body.String())
	assert.Equal(t, []string{"c-1"}, usecase.notified)
}

func TestSendMatchNotificationMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "record without coincidencia_id", body: `{"record":{"mascota_id":"m-1"}}`},
		{name: "empty coincidencia_id", body: `{"record":{"coincidencia_id":""}}`},
		{name: "record is not an object", body: `{"record":"c-1"}`},
		{name: "not json", body: `coincidencia`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usecase := &fakeUseCase{}
			router := InitRoutes(usecase)

			w := performRequest(router, http.MethodPost, "/functions/v1/send-match-notification", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
			assert.Empty(t, usecase.notified, "no downstream call for a malformed payload")
		})
	}
}

func TestSendMatchNotificationResolverFailure(t *testing.T) {
	usecase := &fakeUseCase{notifyErr: entity.ErrMatchNotFound}
	router := InitRoutes(usecase)

	w := performRequest(router, http.MethodPost, "/functions/v1/send-match-notification",
		`{"record":{"coincidencia_id":"missing"}}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "match not found")
}

func TestRegisterTokenEndpoint(t *testing.T) {
	usecase := &fakeUseCase{}
	router := InitRoutes(usecase)

	w := performRequest(router, http.MethodPost, "/api/v1/tokens",
		`{"user_id":"u-1","push_token":"ExponentPushToken[abc]"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "reg-1")
}

func TestRegisterTokenEndpointMissingFields(t *testing.T) {
	usecase := &fakeUseCase{}
	router := InitRoutes(usecase)

	w := performRequest(router, http.MethodPost, "/api/v1/tokens", `{"user_id":"u-1"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, usecase.regCalls)
}

func TestHealthEndpoint(t *testing.T) {
	router := InitRoutes(&fakeUseCase{})

	w := performRequest(router, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
