package models

import "time"

// FinancialRecord is one encrypted financial bundle version stored for a
// user. The bundle itself only exists in plaintext inside a request.
type FinancialRecord struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	Ciphertext string    `json:"-"` // Not serialized
	HMAC       string    `json:"hmac"`
	CreatedAt  time.Time `json:"created_at"`
}
