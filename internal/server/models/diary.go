package models

import "time"

// Diary is a journal entry owned by UserID. Title, Content and Mood hold
// client-side ciphertext; the server stores them opaquely.
type Diary struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Mood      string
	Tags      []string
	CreatedAt time.Time
}

// HasTag reports whether the entry carries exactly tag (case-sensitive).
func (d *Diary) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
