package models

import (
	"testing"
	"time"
)

func TestDiary_HasTag(t *testing.T) {
	d := &Diary{Tags: []string{"travel", "Food"}}

	if !d.HasTag("travel") {
		t.Fatal("expected travel")
	}
	if d.HasTag("food") {
		t.Fatal("tag match must be case-sensitive")
	}
	if (&Diary{}).HasTag("") {
		t.Fatal("untagged entry has no tags")
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := &RefreshToken{Expires: now}

	if !tok.Expired(now) {
		t.Fatal("token is expired at its expiry instant")
	}
	if tok.Expired(now.Add(-time.Second)) {
		t.Fatal("token is valid before expiry")
	}
}
