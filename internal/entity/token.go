package entity

import "time"

// TokenRegistrationRequest registers (or refreshes) the Expo push token for a
// user's device. Most recent registration wins: the platform upserts on
// user_id, so one active token per user.
type TokenRegistrationRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	PushToken string `json:"push_token" binding:"required"`
}

type TokenRegistration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PushToken string    `json:"push_token"`
	UpdatedAt time.Time `json:"updated_at"`
}
