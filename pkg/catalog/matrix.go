package catalog

import "sort"

// Matrix maps specializations to the union of all required courses
type Matrix struct {
	Courses []string // column order, sorted
	Specs   []string // row order
	Cells   [][]bool // Cells[row][col]
}

// BuildMatrix computes the requirement matrix over the given specializations
func BuildMatrix(specs []Specialization) Matrix {
	union := make(map[string]struct{})
	for _, sp := range specs {
		for _, c := range sp.ReqAll {
			union[c] = struct{}{}
		}
	}

	m := Matrix{Courses: make([]string, 0, len(union))}
	for c := range union {
		m.Courses = append(m.Courses, c)
	}
	sort.Strings(m.Courses)

	for _, sp := range specs {
		required := make(map[string]bool, len(sp.ReqAll))
		for _, c := range sp.ReqAll {
			required[c] = true
		}

		row := make([]bool, len(m.Courses))
		for i, c := range m.Courses {
			row[i] = required[c]
		}
		m.Specs = append(m.Specs, sp.Abbrv)
		m.Cells = append(m.Cells, row)
	}

	return m
}
