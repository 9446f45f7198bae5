// Package models defines the plaintext client-side view of diaries, tags and
// the login session used by the DiaryKeeper CLI.
package models

import (
	"strings"
	"time"
)

// Session is an authenticated user. Key is the session key every encrypt and
// decrypt call receives explicitly. Registered is set by a login that created
// the account and is not persisted.
type Session struct {
	Account    string
	Key        string
	Registered bool
}

// Draft is an entry as typed by the user, before encryption.
type Draft struct {
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// Diary is a decrypted entry returned by a listing.
type Diary struct {
	ID        string
	Title     string
	Content   string
	Mood      string
	Tags      []string
	CreatedAt time.Time
}

type Tag struct {
	ID   string
	Name string
}

// DayActivity counts the entries written on Day (UTC midnight).
type DayActivity struct {
	Day   time.Time
	Count int
}

// ParseTags splits a comma separated tag line, trimming blanks and dropping
// empty items.
func ParseTags(line string) []string {
	var tags []string
	for _, part := range strings.Split(line, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
