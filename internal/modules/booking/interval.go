package booking

import "time"

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether the two intervals share any instant. Touching
// boundaries (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// Normalize returns the interval in UTC truncated to whole seconds, the form
// stored and compared by the repository.
func (i Interval) Normalize() Interval {
	return Interval{
		Start: i.Start.UTC().Truncate(time.Second),
		End:   i.End.UTC().Truncate(time.Second),
	}
}
