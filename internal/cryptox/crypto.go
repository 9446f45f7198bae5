// Package cryptox holds the client-side cryptography of DiaryKeeper: password
// based key derivation and the field codec used to encrypt diary titles,
// contents and moods before they leave the client.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	// SaltSize is the size of a freshly generated per-user salt.
	SaltSize = 32
)

// DeriveMasterKey stretches password with salt using Argon2id and returns a
// 32-byte key. The same inputs always produce the same key.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// MakeVerifier derives the value the server stores to authenticate a user.
// It is a one-way function of the master key, so the server can check a login
// without ever holding a key able to decrypt the user's diaries.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// SessionKey renders a master key as the string key consumed by Encrypt and
// Decrypt and persisted in the client's session store.
func SessionKey(masterKey []byte) string {
	return hex.EncodeToString(masterKey)
}
