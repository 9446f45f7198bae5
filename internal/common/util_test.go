package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 16, 32} {
		s, err := MakeRandHexString(n)
		require.NoError(t, err)
		assert.Len(t, s, n*2)

		raw, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, raw, n)
	}

	a, _ := MakeRandHexString(32)
	b, _ := MakeRandHexString(32)
	assert.NotEqual(t, a, b)
}

func TestGenerateRandByteArray(t *testing.T) {
	salt := GenerateRandByteArray(16)
	other := GenerateRandByteArray(16)

	assert.Len(t, salt, 16)
	assert.NotEqual(t, salt, other)
	assert.Empty(t, GenerateRandByteArray(0))
}

func TestWipeByteArray(t *testing.T) {
	key := []byte("derived-session-key")
	WipeByteArray(key)
	assert.Equal(t, make([]byte, len("derived-session-key")), key)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestUniqueStrings(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, []string{}},
		{"no duplicates", []string{"work", "travel"}, []string{"work", "travel"}},
		{"first occurrence wins", []string{"travel", "work", "travel", "work"}, []string{"travel", "work"}},
		{"case sensitive", []string{"Work", "work"}, []string{"Work", "work"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueStrings(tt.in))
		})
	}
}
