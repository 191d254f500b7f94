package interval

import "fmt"

// Span is a clock interval within one day, bounds formatted "HH:MM".
// The zero-padded format makes lexicographic comparison equivalent to
// time comparison.
type Span struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Overlaps reports whether two spans share any time. Touching
// endpoints (one ends exactly when the other starts) do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Contains reports whether o lies entirely within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// HourlySlots slices [startHour, endHour) into one-hour spans.
func HourlySlots(startHour, endHour int) []Span {
	if endHour <= startHour {
		return nil
	}
	slots := make([]Span, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		slots = append(slots, Span{
			Start: fmt.Sprintf("%02d:00", h),
			End:   fmt.Sprintf("%02d:00", h+1),
		})
	}
	return slots
}
