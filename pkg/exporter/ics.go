package exporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fitctl/pkg/catalog"
	"fitctl/pkg/plan"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// semesterSpan returns the first day and the day after the last day of a plan slot.
// Winter runs September through January, summer February through June.
func semesterSpan(startYear, slot int) (time.Time, time.Time) {
	year := startYear + slot/2
	if catalog.SlotSemester(slot) == catalog.Winter {
		return time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year+1, time.February, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year+1, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year+1, time.July, 1, 0, 0, 0, 0, time.UTC)
}

// GenerateICS writes the plan as one all-day event per semester, starting
// with the winter semester of startYear.
func GenerateICS(r *plan.Report, store *catalog.Store, startYear int, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//fitctl//study plan//EN")

	title := cases.Title(language.English)
	now := time.Now()

	for _, slot := range r.Slots {
		if len(slot.Courses) == 0 {
			continue
		}
		start, end := semesterSpan(startYear, slot.Index)

		// Stable across exports so calendar apps update instead of duplicating
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("fitctl:%s:%d:%d", r.Spec.Abbrv, startYear, slot.Index)))

		event := cal.AddEvent(id.String())
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetAllDayStartAt(start)
		event.SetAllDayEndAt(end)
		event.SetSummary(fmt.Sprintf("%s %s semester %d (%d cr.)", r.Spec.Abbrv, title.String(slot.Semester.Name()), slot.Index/2+1, slot.Credits))

		var lines []string
		for _, key := range slot.Courses {
			name := ""
			if c, err := store.Course(key); err == nil {
				name = c.Name
			}
			lines = append(lines, fmt.Sprintf("%s - %s", key, name))
		}
		for _, m := range slot.Misplaced {
			lines = append(lines, fmt.Sprintf("Warning: %s is not taught in this semester", m.Course))
		}
		event.SetDescription(strings.Join(lines, "\n"))
	}

	return cal.SerializeTo(w)
}
