package entity

import "time"

type PasswordReset struct {
	Email     string
	Code      string
	ExpiresAt time.Time
	IsUsed    bool
}
