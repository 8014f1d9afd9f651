package model

import "math"

// Percent returns round(n/d*100), and 0 when d is 0.
func Percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

// Percent is the share of done units, rounded to the nearest integer.
func (s Stats) Percent() int {
	return Percent(s.Done, s.Total)
}

// Add counts one unit with status st. Anything outside the known states
// counts as todo.
func (s *Stats) Add(st Status) {
	s.Total++
	switch st {
	case StatusDone:
		s.Done++
	case StatusDoing:
		s.Doing++
	default:
		s.Todo++
	}
}
