// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. Salt and Verifier come from the client's key
// derivation; the server never receives the password itself.
type User struct {
	ID                  string
	Account             string
	Salt                []byte
	Verifier            []byte
	IsPro               bool
	SubscriptionEndTime *time.Time
	CreatedAt           time.Time
}
