package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"unicode/utf16"
)

// moodCiphertextMinLen is the length, in UTF-16 code units, above which an undecryptable mood is
// assumed to be ciphertext rather than a legacy plaintext emoji.
const moodCiphertextMinLen = 10

var errShortCiphertext = errors.New("ciphertext too short")

func newAEAD(key string) (cipher.AEAD, error) {
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals plaintext with AES-256-GCM under a key derived from key and
// returns base64(nonce || ciphertext). A fresh nonce is drawn on every call.
//
// An empty key disables encryption and plaintext is returned unchanged. The
// same happens if the cipher cannot be initialised, so callers never have to
// deal with an error from the codec.
func Encrypt(plaintext string, key string) string {
	if key == "" {
		return plaintext
	}

	aead, err := newAEAD(key)
	if err != nil {
		return plaintext
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return plaintext
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed)
}

// Decrypt reverses Encrypt. An empty key returns ciphertext unchanged.
//
// Decrypt never fails: malformed input or a wrong key yields the original
// ciphertext, leaving the data unreadable but intact until the right key is
// supplied.
func Decrypt(ciphertext string, key string) string {
	if key == "" {
		return ciphertext
	}
	plaintext, err := open(ciphertext, key)
	if err != nil {
		return ciphertext
	}
	return plaintext
}

// DecryptMood is Decrypt for the mood field. When decryption leaves a value
// longer than 10 characters untouched, it is treated as an unreadable
// ciphertext and reported as "no mood" instead of being displayed raw.
func DecryptMood(ciphertext string, key string) string {
	if ciphertext == "" {
		return ""
	}
	decrypted := Decrypt(ciphertext, key)
	if decrypted == ciphertext && moodLen(ciphertext) > moodCiphertextMinLen {
		return ""
	}
	return decrypted
}

// moodLen counts UTF-16 code units, so an emoji outside the BMP counts as two.
func moodLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func open(ciphertext string, key string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", err
	}

	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", errShortCiphertext
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
