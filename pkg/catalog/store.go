package catalog

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Store holds the course and specialization tables for one run
type Store struct {
	courses  map[string]Course
	specs    map[string]Specialization
	specKeys []string // source order
}

// Load builds the keyed tables from the given record collections.
//
// Courses sharing an abbreviation are all re-keyed as abbreviation plus the
// lower-case semester tag (e.g. "FITw" and "FITs"), whatever order they
// arrive in.
func Load(courses []Course, specs []Specialization) (*Store, error) {
	s := &Store{
		courses: make(map[string]Course, len(courses)),
		specs:   make(map[string]Specialization, len(specs)),
	}

	// Group them
	groups := make(map[string][]Course)
	var order []string
	for _, c := range courses {
		if _, exists := groups[c.Abbrv]; !exists {
			order = append(order, c.Abbrv)
		}
		groups[c.Abbrv] = append(groups[c.Abbrv], c)
	}

	// Plain keys first so a composite key can never shadow a real abbreviation
	for _, abbrv := range order {
		if len(groups[abbrv]) == 1 {
			s.courses[abbrv] = withDefaults(groups[abbrv][0])
		}
	}
	for _, abbrv := range order {
		group := groups[abbrv]
		if len(group) == 1 {
			continue
		}
		for _, c := range group {
			key := CompositeKey(c.Abbrv, c.Semester)
			if _, exists := s.courses[key]; exists {
				return nil, &DuplicateKeyError{Kind: "course", Key: key}
			}
			s.courses[key] = withDefaults(c)
		}
	}

	for _, sp := range specs {
		if _, exists := s.specs[sp.Abbrv]; exists {
			return nil, &DuplicateKeyError{Kind: "specialization", Key: sp.Abbrv}
		}
		s.resolveRequirements(&sp)
		sp.Normalize()
		s.specs[sp.Abbrv] = sp
		s.specKeys = append(s.specKeys, sp.Abbrv)
	}

	return s, nil
}

// CompositeKey is the store key of a course whose abbreviation is taught in both semesters
func CompositeKey(abbrv string, sem Semester) string {
	return abbrv + lower.String(string(sem))
}

// Resolve returns the store key of abbrv as taught in sem. A disambiguated
// abbreviation maps to its composite key; anything else is returned as is.
func (s *Store) Resolve(abbrv string, sem Semester) string {
	if _, ok := s.courses[abbrv]; ok {
		return abbrv
	}
	if key := CompositeKey(abbrv, sem); s.courses[key].Abbrv == abbrv {
		return key
	}
	return abbrv
}

// resolveRequirements rewrites plain abbreviations of disambiguated courses
// to the composite key of the semester they are required in
func (s *Store) resolveRequirements(sp *Specialization) {
	resolve := func(keys []string, sem Semester) []string {
		if keys == nil {
			return nil
		}
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = s.Resolve(k, sem)
		}
		return out
	}
	for i := range sp.Req {
		sp.Req[i] = resolve(sp.Req[i], SlotSemester(i))
	}
	for i := range sp.ReqAny {
		sp.ReqAny[i] = resolve(sp.ReqAny[i], SlotSemester(i))
	}
}

func withDefaults(c Course) Course {
	if c.Hours == nil {
		c.Hours = map[string]int{}
	}
	if c.Points == nil {
		c.Points = map[string]int{}
	}
	return c
}

// Course looks up a course by its store key
func (s *Store) Course(key string) (Course, error) {
	c, ok := s.courses[key]
	if !ok {
		return Course{}, &UnknownCourseError{Key: key}
	}
	return c, nil
}

// Specialization looks up a specialization by its abbreviation
func (s *Store) Specialization(key string) (Specialization, error) {
	sp, ok := s.specs[key]
	if !ok {
		return Specialization{}, &UnknownSpecializationError{Key: key}
	}
	return sp, nil
}

// CourseKeys returns all course keys sorted alphabetically
func (s *Store) CourseKeys() []string {
	keys := make([]string, 0, len(s.courses))
	for k := range s.courses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CoursesIn returns the keys of all courses taught in the given semester, sorted
func (s *Store) CoursesIn(sem Semester) []string {
	var keys []string
	for _, k := range s.CourseKeys() {
		if s.courses[k].Semester == sem {
			keys = append(keys, k)
		}
	}
	return keys
}

// SpecializationKeys returns specialization codes in the order they were loaded
func (s *Store) SpecializationKeys() []string {
	return append([]string(nil), s.specKeys...)
}

// Specializations returns every specialization in load order
func (s *Store) Specializations() []Specialization {
	out := make([]Specialization, 0, len(s.specKeys))
	for _, k := range s.specKeys {
		out = append(out, s.specs[k])
	}
	return out
}
