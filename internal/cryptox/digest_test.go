package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerateDigest_ReferenceValue(t *testing.T) {
	got := GenerateDigest("a@b.com", "1234567890", 1000)

	sum := sha256.Sum256([]byte("a@b.com:1234567890:1000"))
	require.Equal(t, hex.EncodeToString(sum[:]), got)
	require.Equal(t, "672d128c54952e0c96d3f61ec0bd5a7d554ba6b0058f6980c63606893aee621b", got)
}

func TestGenerateDigest_Format(t *testing.T) {
	inputs := []struct {
		email, phone string
		ts           int64
	}{
		{"a@b.com", "1234567890", 1000},
		{"", "", 0},
		{"юзер@пример.рф", "+7 (999) 123-45-67", 1729300000000},
		{"x@y.z", "0000000000", -1},
	}
	for _, in := range inputs {
		d := GenerateDigest(in.email, in.phone, in.ts)
		assert.Len(t, d, DigestLength)
		assert.Regexp(t, hexDigest, d)
		assert.True(t, IsDigest(d))
	}
}

func TestGenerateDigest_Deterministic(t *testing.T) {
	a := GenerateDigest("a@b.com", "1234567890", 42)
	b := GenerateDigest("a@b.com", "1234567890", 42)
	require.Equal(t, a, b)
}

func TestGenerateDigest_TimestampSalts(t *testing.T) {
	seen := make(map[string]int64)
	for ts := int64(1000); ts < 1100; ts++ {
		d := GenerateDigest("a@b.com", "1234567890", ts)
		if prev, ok := seen[d]; ok {
			t.Fatalf("timestamps %d and %d produced the same digest", prev, ts)
		}
		seen[d] = ts
	}
	require.Equal(t, "3981d027c3f05fc3590d95d9453e7287b6b25e7bc32f82223b4313b11ee0c19a",
		GenerateDigest("a@b.com", "1234567890", 1001))
}

func TestGenerateDigest_SingleCharacterChange(t *testing.T) {
	base := GenerateDigest("a@b.com", "1234567890", 1000)
	assert.NotEqual(t, base, GenerateDigest("a@b.con", "1234567890", 1000))
	assert.NotEqual(t, base, GenerateDigest("a@b.com", "1234567891", 1000))
	assert.NotEqual(t, base, GenerateDigest("a@b.com", "1234567890", 1009))
}

func TestIsDigest(t *testing.T) {
	valid := GenerateDigest("a@b.com", "1234567890", 1000)

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid", valid, true},
		{"empty", "", false},
		{"too short", valid[:63], false},
		{"too long", valid + "0", false},
		{"uppercase", "672D128C54952E0C96D3F61EC0BD5A7D554BA6B0058F6980C63606893AEE621B", false},
		{"non hex", "z" + valid[1:], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDigest(tt.in))
		})
	}
}

func TestEqualDigests(t *testing.T) {
	d := GenerateDigest("a@b.com", "1234567890", 1000)

	assert.True(t, EqualDigests(d, d))
	assert.False(t, EqualDigests(d, d+"x"))
	assert.False(t, EqualDigests(d, ""))
	assert.False(t, EqualDigests("", d))
	assert.True(t, EqualDigests("", ""))
}
