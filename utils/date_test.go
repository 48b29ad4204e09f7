package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUTCToTimezone(t *testing.T) {
	utc := time.Date(2026, 3, 4, 2, 30, 0, 0, time.UTC)

	local := FromUTCToTimezone(utc, "America/Los_Angeles")
	assert.True(t, local.Equal(utc))
	assert.Equal(t, "America/Los_Angeles", local.Location().String())

	assert.Equal(t, utc, FromUTCToTimezone(utc, "Not/AZone"))
}

func TestFormatLocal(t *testing.T) {
	assert.Empty(t, FormatLocal(time.Time{}))
	assert.Equal(t, "Mar 3, 2026 6:30 PM", FormatLocal(time.Date(2026, 3, 4, 2, 30, 0, 0, time.UTC)))
}

func TestStructRoundTrip(t *testing.T) {
	s, err := StructToString([]string{"a", "b"})
	assert.NoError(t, err)
	assert.Equal(t, `["a","b"]`, s)

	var out []string
	assert.NoError(t, BytesToStruct([]byte(s), &out))
	assert.Equal(t, []string{"a", "b"}, out)
}
