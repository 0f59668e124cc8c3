// Package domain holds session types shared by transport and service
package domain

// Session describes the authenticated principal behind a bearer token
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
