package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)
	id := uuid.New()

	gotTime, gotID, err := Decode(Encode(createdAt, id))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, cursor := range []string{
		"%%%not-base64%%%",
		"bm8tc2VwYXJhdG9y",           // "no-separator"
		"YWJjfGRlZg",                 // "abc|def"
		"MTIzNDV8bm90LWEtdXVpZA",     // "12345|not-a-uuid"
		"LTF8MDAwMDAwMDAtMDAwMC0wMDAwLTAwMDAtMDAwMDAwMDAwMDAw", // negative nanos
	} {
		_, _, err := Decode(cursor)
		assert.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", cursor)
	}
}
