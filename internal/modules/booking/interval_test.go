package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	iv := func(from, to int) Interval {
		return Interval{Start: base.Add(time.Duration(from) * day), End: base.Add(time.Duration(to) * day)}
	}

	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"same", iv(0, 2), iv(0, 2), true},
		{"inside", iv(0, 5), iv(1, 2), true},
		{"partial left", iv(0, 2), iv(1, 3), true},
		{"touching end", iv(0, 2), iv(2, 4), false},
		{"touching start", iv(2, 4), iv(0, 2), false},
		{"disjoint", iv(0, 1), iv(3, 4), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestInterval_ValidAndNormalize(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2026, 3, 10, 15, 0, 0, 123456789, loc)

	n := Interval{Start: start, End: start.Add(time.Hour)}.Normalize()
	assert.Equal(t, time.UTC, n.Start.Location())
	assert.Equal(t, 0, n.Start.Nanosecond())
	assert.Equal(t, 10, n.Start.Hour())
	assert.True(t, n.Valid())

	assert.False(t, Interval{Start: start, End: start}.Valid())
	assert.False(t, Interval{Start: start, End: start.Add(-time.Minute)}.Valid())
}
