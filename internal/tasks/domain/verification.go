package domain

import "time"

// VerificationCode is the outstanding email verification challenge for a
// user. Secret seeds the one-time code mailed to the user.
type VerificationCode struct {
	UserID    string
	Secret    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the code can no longer be redeemed at now.
func (v VerificationCode) Expired(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
