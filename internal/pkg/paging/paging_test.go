package paging

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 30, 15, 123456789, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := DecodeCursor(EncodeCursor(at, id))
	require.NoError(t, err)
	assert.True(t, gotAt.Equal(at))
	assert.Equal(t, id, gotID)
}

func TestDecodeCursor_Malformed(t *testing.T) {
	for _, cursor := range []string{
		"",
		"%%%",
		"bm8tcGlwZQ", // decodes but has no separator
	} {
		_, _, err := DecodeCursor(cursor)
		assert.ErrorIs(t, err, ErrBadCursor, cursor)
	}
}
