package models

import "time"

// Credentials is the login form payload.
type Credentials struct {
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

// Session is an authenticated admin session held by the console.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
