package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementCounter(t *testing.T) {
	assert.Equal(t, "1", IncrementCounter("0"))
	assert.Equal(t, "42", IncrementCounter("41"))
	assert.Equal(t, "1", IncrementCounter(""))
	assert.Equal(t, "1", IncrementCounter("lots"))
	assert.Equal(t, "1", IncrementCounter("-5"))
}

func TestParseCount(t *testing.T) {
	cases := map[string]int64{
		"":      0,
		"250":   250,
		"1,234": 1234,
		"1.2K":  1200,
		"3k":    3000,
		"2.5M":  2500000,
		"n/a":   0,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseCount(in), in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0K", FormatNumber(1000))
	assert.Equal(t, "1.5K", FormatNumber(1540))
	assert.Equal(t, "2.3M", FormatNumber(2_300_000))
}

func TestParseReadTime(t *testing.T) {
	v, ok := ParseReadTime("5 min read")
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	v, ok = ParseReadTime("7.5")
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	_, ok = ParseReadTime("five minutes")
	assert.False(t, ok)

	_, ok = ParseReadTime("")
	assert.False(t, ok)
}
