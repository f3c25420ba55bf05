package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWorkingDays(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"explicit subset", "5,6", "5,6"},
		{"full week", "0,1,2,3,4,5,6", "0,1,2,3,4,5,6"},
		{"whitespace tolerated", " 1 , 3 ,5 ", "1,3,5"},
		{"empty defaults to full week", "", "0,1,2,3,4,5,6"},
		{"garbage defaults to full week", "mon,tue", "0,1,2,3,4,5,6"},
		{"out of range skipped", "2,9,-1", "2"},
		{"duplicates collapse", "4,4,4", "4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseWorkingDays(tc.raw).String())
		})
	}
}

func TestWorkingDaysContains(t *testing.T) {
	days := ParseWorkingDays("0,6")
	assert.True(t, days.Contains(time.Sunday))
	assert.True(t, days.Contains(time.Saturday))
	assert.False(t, days.Contains(time.Wednesday))
}

func TestWorkingDaysNext(t *testing.T) {
	days := ParseWorkingDays("5,6")

	day, offset, ok := days.Next(time.Monday, 1)
	assert.True(t, ok)
	assert.Equal(t, time.Friday, day)
	assert.Equal(t, 4, offset)

	// Scanning from Friday with a minimum offset of one lands on Saturday.
	day, offset, ok = days.Next(time.Friday, 1)
	assert.True(t, ok)
	assert.Equal(t, time.Saturday, day)
	assert.Equal(t, 1, offset)

	// A single-day week wraps a full seven days.
	single := ParseWorkingDays("5")
	day, offset, ok = single.Next(time.Friday, 1)
	assert.True(t, ok)
	assert.Equal(t, time.Friday, day)
	assert.Equal(t, 7, offset)

	var empty WorkingDays
	_, _, ok = empty.Next(time.Monday, 1)
	assert.False(t, ok)
}
