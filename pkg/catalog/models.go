package catalog

import (
	"sort"
)

// Semester is the term a course is taught in
type Semester string

const (
	Winter Semester = "W"
	Summer Semester = "S"
)

// SlotCount is the number of semesters in a two-year master's plan
const SlotCount = 4

// SlotSemester returns the expected semester of a plan slot (W, S, W, S)
func SlotSemester(slot int) Semester {
	if slot%2 == 0 {
		return Winter
	}
	return Summer
}

// Name returns the long form used in calendar entries and headings
func (s Semester) Name() string {
	if s == Summer {
		return "summer"
	}
	return "winter"
}

// Valid reports whether s is one of the two known semesters
func (s Semester) Valid() bool {
	return s == Winter || s == Summer
}

// Course is a single course from the faculty's course listing
type Course struct {
	Abbrv    string         `json:"abbrv" db:"abbrv"`
	Name     string         `json:"name" db:"name"`
	Garant   string         `json:"garant" db:"garant"`
	Link     string         `json:"link" db:"link"`
	Semester Semester       `json:"semester" db:"semester"`
	Credits  int            `json:"credits" db:"credits"`
	Finals   string         `json:"finals" db:"finals"`
	Dept     string         `json:"dept" db:"dept"`
	Hours    map[string]int `json:"hours" db:"-"`  // e.g. "přednášky" -> 26
	Points   map[string]int `json:"points" db:"-"` // e.g. "zkouška" -> 60
}

// NewCourse returns a course with empty hour and point maps
func NewCourse(abbrv string) Course {
	return Course{
		Abbrv:  abbrv,
		Hours:  map[string]int{},
		Points: map[string]int{},
	}
}

// Specialization is a study-program specialization and its requirements.
//
// Req holds the mandatory courses per plan slot, ReqAny the winter and
// summer elective pools that must be covered. ReqAll is the union of both
// and is maintained by Normalize.
type Specialization struct {
	Abbrv  string              `json:"abbrv"`
	Name   string              `json:"name"`
	Garant string              `json:"garant"`
	Link   string              `json:"link"`
	Req    [SlotCount][]string `json:"req"`
	ReqAny [2][]string         `json:"req_any"`
	ReqAll []string            `json:"req_all"`
}

// PoolIndex maps a semester to its ReqAny index
func PoolIndex(s Semester) int {
	if s == Summer {
		return 1
	}
	return 0
}

// Normalize recomputes ReqAll from Req and ReqAny
func (s *Specialization) Normalize() {
	all := make(map[string]struct{})
	for _, slot := range s.Req {
		for _, c := range slot {
			all[c] = struct{}{}
		}
	}
	for _, pool := range s.ReqAny {
		for _, c := range pool {
			all[c] = struct{}{}
		}
	}

	s.ReqAll = make([]string, 0, len(all))
	for c := range all {
		s.ReqAll = append(s.ReqAll, c)
	}
	sort.Strings(s.ReqAll)
}

// Requires reports whether abbrv is in the specialization's required universe
func (s Specialization) Requires(abbrv string) bool {
	i := sort.SearchStrings(s.ReqAll, abbrv)
	return i < len(s.ReqAll) && s.ReqAll[i] == abbrv
}
