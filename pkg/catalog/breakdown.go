package catalog

import "strings"

// Hours is a course's weekly load grouped by activity kind
type Hours struct {
	Projects int
	Labs     int
	Lectures int
}

// Points is a course's grading split grouped by component kind
type Points struct {
	Projects int
	Tests    int
	Finals   int
}

// Breakdown groups a course's raw hour and point labels.
// The listing is in Czech, so labels are matched on word stems.
func Breakdown(c Course) (Hours, Points) {
	var h Hours
	for label, v := range c.Hours {
		l := strings.ToLower(label)
		switch {
		case strings.Contains(l, "ojekt"):
			h.Projects += v
		case strings.Contains(l, "abor"), strings.Contains(l, "cvi"):
			h.Labs += v
		case strings.Contains(l, "edn"):
			h.Lectures += v
		}
	}

	var p Points
	for label, v := range c.Points {
		l := strings.ToLower(label)
		switch {
		case strings.Contains(l, "ojekt"):
			p.Projects += v
		case strings.Contains(l, "test"):
			p.Tests += v
		case strings.Contains(l, "zkou"):
			p.Finals += v
		}
	}

	return h, p
}

// Max returns the largest single component
func (p Points) Max() int {
	return max(p.Projects, p.Tests, p.Finals)
}
