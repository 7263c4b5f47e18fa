package plan

import (
	"fmt"
	"sort"

	"fitctl/pkg/catalog"
)

// CreditTarget is the number of credits needed to finish the degree
const CreditTarget = 120

// Passed reports whether a credit total reaches the degree target
func Passed(credits int) bool {
	return credits >= CreditTarget
}

// MisplacedCourse is a course scheduled in a slot of the wrong semester
type MisplacedCourse struct {
	Course   string
	Slot     int
	Expected catalog.Semester
	Actual   catalog.Semester
}

func (m MisplacedCourse) String() string {
	return fmt.Sprintf("course %s in slot %d is taught in %s, expected %s", m.Course, m.Slot+1, m.Actual, m.Expected)
}

// SlotReport is the evaluation of one semester slot
type SlotReport struct {
	Index     int
	Semester  catalog.Semester
	Courses   []string
	Credits   int // correctly placed courses only, duplicates counted each time
	Misplaced []MisplacedCourse
}

// Shortfall is the part of an elective pool not covered by the plan
type Shortfall struct {
	Courses []string
	Credits int
}

// Report is the outcome of evaluating a selection against a specialization
type Report struct {
	Spec                   catalog.Specialization
	Slots                  [catalog.SlotCount]SlotReport
	ExtraCredits           int
	TotalCredits           int // distinct correctly placed courses plus ExtraCredits
	Remaining              []string
	RemainingRequiredCount int
	WinterShortfall        Shortfall
	SummerShortfall        Shortfall
	ProjectedTotalCredits  int
	Optional               []string // selected courses outside the required universe
}

// Misplaced returns every misplacement finding across all slots
func (r *Report) Misplaced() []MisplacedCourse {
	var out []MisplacedCourse
	for _, s := range r.Slots {
		out = append(out, s.Misplaced...)
	}
	return out
}

// Shortfall returns the shortfall of the given semester's elective pool
func (r *Report) Shortfall(sem catalog.Semester) Shortfall {
	if sem == catalog.Summer {
		return r.SummerShortfall
	}
	return r.WinterShortfall
}

// Evaluate checks a selection plan against a specialization.
//
// Every course in a slot is checked; misplaced ones are reported and left
// out of the credit sums but still count as selected when computing the
// remaining required courses.
func Evaluate(store *catalog.Store, spec catalog.Specialization, sel Selection) (*Report, error) {
	r := &Report{Spec: spec, ExtraCredits: sel.ExtraCredits}

	selected := make(map[string]struct{})
	placed := make(map[string]int) // key -> credits

	for i, keys := range sel.Semesters {
		slot := SlotReport{
			Index:    i,
			Semester: catalog.SlotSemester(i),
		}

		for _, key := range keys {
			key = store.Resolve(key, slot.Semester)
			slot.Courses = append(slot.Courses, key)

			c, err := store.Course(key)
			if err != nil {
				return nil, fmt.Errorf("semester %d: %w", i+1, err)
			}
			selected[key] = struct{}{}

			if c.Semester != slot.Semester {
				slot.Misplaced = append(slot.Misplaced, MisplacedCourse{
					Course:   key,
					Slot:     i,
					Expected: slot.Semester,
					Actual:   c.Semester,
				})
				continue
			}
			slot.Credits += c.Credits
			placed[key] = c.Credits
		}

		r.Slots[i] = slot
	}

	for _, credits := range placed {
		r.TotalCredits += credits
	}
	r.TotalCredits += sel.ExtraCredits

	for _, req := range spec.ReqAll {
		if _, ok := selected[req]; !ok {
			r.Remaining = append(r.Remaining, req)
		}
	}
	r.RemainingRequiredCount = len(r.Remaining)

	if r.RemainingRequiredCount > 0 {
		var err error
		r.WinterShortfall, err = shortfall(store, spec.ReqAny[catalog.PoolIndex(catalog.Winter)], selected)
		if err != nil {
			return nil, err
		}
		r.SummerShortfall, err = shortfall(store, spec.ReqAny[catalog.PoolIndex(catalog.Summer)], selected)
		if err != nil {
			return nil, err
		}
	}
	r.ProjectedTotalCredits = r.TotalCredits + r.WinterShortfall.Credits + r.SummerShortfall.Credits

	for key := range selected {
		if !spec.Requires(key) {
			r.Optional = append(r.Optional, key)
		}
	}
	sort.Strings(r.Optional)

	return r, nil
}

func shortfall(store *catalog.Store, pool []string, selected map[string]struct{}) (Shortfall, error) {
	var s Shortfall
	seen := make(map[string]bool, len(pool))
	for _, key := range pool {
		if _, ok := selected[key]; ok || seen[key] {
			continue
		}
		seen[key] = true

		c, err := store.Course(key)
		if err != nil {
			return Shortfall{}, fmt.Errorf("elective pool: %w", err)
		}
		s.Courses = append(s.Courses, key)
		s.Credits += c.Credits
	}
	sort.Strings(s.Courses)
	return s, nil
}

// Decision pairs the required-only plan with the student's full plan
type Decision struct {
	Required *Report
	Selected *Report
}

// Decide evaluates the specialization's mandatory courses alone and merged
// with the student's selection.
func Decide(store *catalog.Store, spec catalog.Specialization, sel Selection) (*Decision, error) {
	required, err := Evaluate(store, spec, RequiredSelection(spec))
	if err != nil {
		return nil, fmt.Errorf("required courses: %w", err)
	}

	selected, err := Evaluate(store, spec, resolve(store, sel).WithRequired(spec))
	if err != nil {
		return nil, err
	}

	return &Decision{Required: required, Selected: selected}, nil
}

// resolve maps plain abbreviations in sel to the store keys of their slot's semester
func resolve(store *catalog.Store, sel Selection) Selection {
	out := sel
	for i, slot := range sel.Semesters {
		if slot == nil {
			continue
		}
		out.Semesters[i] = make([]string, len(slot))
		for j, key := range slot {
			out.Semesters[i][j] = store.Resolve(key, catalog.SlotSemester(i))
		}
	}
	return out
}

// Overview evaluates the required-only plan of every specialization in load order
func Overview(store *catalog.Store) ([]*Report, error) {
	var reports []*Report
	for _, spec := range store.Specializations() {
		r, err := Evaluate(store, spec, RequiredSelection(spec))
		if err != nil {
			return nil, fmt.Errorf("specialization %s: %w", spec.Abbrv, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
