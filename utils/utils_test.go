package utils

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		id, err := GenerateReferenceID()
		require.NoError(t, err)
		require.Len(t, id, 8)

		var letters, digits int
		for _, c := range id {
			switch {
			case c >= 'A' && c <= 'Z':
				letters++
			case unicode.IsDigit(c):
				digits++
			default:
				t.Fatalf("unexpected character %q in %s", c, id)
			}
		}
		assert.Equal(t, 4, letters, id)
		assert.Equal(t, 4, digits, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 450)
}

func TestRandomPassword(t *testing.T) {
	pw, err := RandomPassword()
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{12}$`, pw)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("other", hash))
}

func TestTeamLink(t *testing.T) {
	assert.Equal(t, "/teams/7-the-eagles", TeamLink(7, "The Eagles"))
}

func TestNormalizeGender(t *testing.T) {
	assert.Equal(t, "Male", NormalizeGender("male"))
	assert.Equal(t, "Female", NormalizeGender(" FEMALE "))
	assert.Equal(t, "Other", NormalizeGender("mixed"))
	assert.Equal(t, "Other", NormalizeGender(""))
}
