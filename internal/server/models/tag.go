package models

// Tag is a per-user label used for suggestions and filtering.
// (UserID, Name) is unique.
type Tag struct {
	ID     string
	Name   string
	UserID string
}
