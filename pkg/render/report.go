package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"fitctl/pkg/catalog"
	"fitctl/pkg/plan"
)

// courseWidth is the visible width of one course cell in a semester line
const courseWidth = 14

// Printer writes plan reports for a single store
type Printer struct {
	w     io.Writer
	f     Formatter
	store *catalog.Store
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, f Formatter, store *catalog.Store) *Printer {
	return &Printer{w: w, f: f, store: store}
}

// Credits renders "N/120 cr.", red below the degree target and green from it
func (p *Printer) Credits(total int, hint string) string {
	kind := Fail
	if plan.Passed(total) {
		kind = Pass
	}
	return fmt.Sprintf("%s/%d cr.", p.f.Format(kind, fmt.Sprintf("%s%d", hint, total)), plan.CreditTarget)
}

// courses renders a list of course keys with their final exam type
func (p *Printer) courses(spec catalog.Specialization, keys []string) string {
	var b strings.Builder
	for _, key := range keys {
		finals := ""
		if c, err := p.store.Course(key); err == nil {
			finals = c.Finals
		}

		kind := Optional
		if spec.Requires(key) {
			kind = Required
		}

		plain := fmt.Sprintf("%s(%s), ", key, finals)
		b.WriteString(p.f.Format(kind, key))
		b.WriteString(p.f.Format(Finals, "("+finals+")"))
		b.WriteString(", ")
		if n := utf8.RuneCountInString(plain); n < courseWidth {
			b.WriteString(strings.Repeat(" ", courseWidth-n))
		}
	}
	return b.String()
}

// placed returns the slot's courses without the misplaced ones
func placed(slot plan.SlotReport) []string {
	wrong := make(map[string]bool, len(slot.Misplaced))
	for _, m := range slot.Misplaced {
		wrong[m.Course] = true
	}
	var keys []string
	for _, k := range slot.Courses {
		if !wrong[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// details renders the points and hours rows under a semester line
func (p *Printer) details(keys []string) (string, string) {
	points := "    : Points "
	hours := "    : Hours  "
	for _, key := range keys {
		c, err := p.store.Course(key)
		if err != nil {
			continue
		}
		h, pt := catalog.Breakdown(c)

		hours += fmt.Sprintf("%s/%s/%s   ",
			p.f.Format(Projects, fmt.Sprintf("%02d", h.Projects)),
			p.f.Format(Labs, fmt.Sprintf("%02d", h.Labs)),
			p.f.Format(Lectures, fmt.Sprintf("%02d", h.Lectures)))

		// A component worth the full 100 points needs one more column
		format, pad := "%02d", "   "
		if pt.Max() == 100 {
			format, pad = "%d", "    "
		}
		points += fmt.Sprintf("%s/%s/%s%s",
			p.f.Format(Projects, fmt.Sprintf(format, pt.Projects)),
			p.f.Format(Tests, fmt.Sprintf(format, pt.Tests)),
			p.f.Format(Exams, fmt.Sprintf(format, pt.Finals)),
			pad)
	}
	return points, hours
}

// Report writes the semester lines, credit totals and remaining requirements
func (p *Printer) Report(r *plan.Report, detail bool) {
	for _, slot := range r.Slots {
		keys := placed(slot)
		line := fmt.Sprintf("%d. %s: %02d cr. %s", slot.Index/2+1, slot.Semester, slot.Credits, p.courses(r.Spec, keys))
		for _, m := range slot.Misplaced {
			line += p.f.Format(Error, fmt.Sprintf("Course %s in wrong semester (W/S)", m.Course)) + " "
		}
		fmt.Fprintln(p.w, strings.TrimRight(line, " "))

		if detail {
			points, hours := p.details(keys)
			fmt.Fprintln(p.w, strings.TrimRight(points, " "))
			fmt.Fprintln(p.w, strings.TrimRight(hours, " "))
			fmt.Fprintln(p.w)
		}
	}

	if r.ExtraCredits != 0 {
		fmt.Fprintf(p.w, "Extra: %d cr.\n", r.ExtraCredits)
	}
	fmt.Fprintln(p.w, p.Credits(r.TotalCredits, ""))

	fmt.Fprintf(p.w, "Remaining required: %d\n", r.RemainingRequiredCount)
	if r.RemainingRequiredCount > 0 {
		for _, sem := range []catalog.Semester{catalog.Winter, catalog.Summer} {
			s := r.Shortfall(sem)
			if len(s.Courses) == 0 {
				continue
			}
			line := fmt.Sprintf("%s: %d cr. %s", sem, s.Credits, p.courses(r.Spec, s.Courses))
			fmt.Fprintln(p.w, strings.TrimRight(line, " "))
		}

		short := r.WinterShortfall.Credits + r.SummerShortfall.Credits
		fmt.Fprintln(p.w, p.Credits(r.ProjectedTotalCredits, fmt.Sprintf("(%d+%d)", short, r.TotalCredits)))
	}

	if detail {
		fmt.Fprintln(p.w, "Color Legend:")
		fmt.Fprintf(p.w, "Points: %s/%s/%s\n",
			p.f.Format(Projects, "Projects"), p.f.Format(Tests, "Tests (half semester)"), p.f.Format(Exams, "Finals"))
		fmt.Fprintf(p.w, "Hours:  %s/%s/%s\n",
			p.f.Format(Projects, "Projects"), p.f.Format(Labs, "Labs (exercises)"), p.f.Format(Lectures, "Lectures"))
	}
}

// SpecHeader writes the specialization's code, name and garant
func (p *Printer) SpecHeader(spec catalog.Specialization) {
	fmt.Fprintf(p.w, "%s\n%s\n\n", p.f.Format(Header, spec.Abbrv+", "+spec.Name), spec.Garant)
}

// Decision writes the required-only plan followed by the student's plan
func (p *Printer) Decision(d *plan.Decision, detail, legend bool) {
	p.SpecHeader(d.Selected.Spec)

	fmt.Fprintln(p.w, "Only required courses:")
	p.Report(d.Required, false)

	fmt.Fprintln(p.w, "\nWith selected courses:")
	p.Report(d.Selected, detail)

	if legend {
		p.Legend(d.Selected)
	}
}

// Legend lists the full names of the required and optional courses
func (p *Printer) Legend(r *plan.Report) {
	fmt.Fprintln(p.w, "\nLegend\nRequired:")
	for _, key := range r.Spec.ReqAll {
		fmt.Fprintf(p.w, "%s - %s\n", key, p.name(key))
	}
	fmt.Fprintln(p.w, "Optional:")
	for _, key := range r.Optional {
		fmt.Fprintf(p.w, "%s - %s\n", key, p.name(key))
	}
}

func (p *Printer) name(key string) string {
	c, err := p.store.Course(key)
	if err != nil {
		return "?"
	}
	return c.Name
}

// Overview writes every specialization with its required-only plan
func (p *Printer) Overview(reports []*plan.Report) {
	for _, r := range reports {
		fmt.Fprintf(p.w, "\n%s\n\n", strings.Repeat("#", 70))
		p.SpecHeader(r.Spec)
		fmt.Fprintln(p.w, "Required courses:")
		p.Report(r, false)
	}
}
