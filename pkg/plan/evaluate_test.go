package plan

import (
	"testing"

	"fitctl/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourse(abbrv string, sem catalog.Semester, credits int) catalog.Course {
	c := catalog.NewCourse(abbrv)
	c.Semester = sem
	c.Credits = credits
	c.Finals = "Zk"
	return c
}

// fixture: FCE(W,5) VYF(S,6) PP1(W,4) KNN(S,5) SIN(W,5), spec NVIZ requires FCE, VYF and the PP1 pool
func fixture(t *testing.T) (*catalog.Store, catalog.Specialization) {
	t.Helper()

	store, err := catalog.Load([]catalog.Course{
		newCourse("FCE", catalog.Winter, 5),
		newCourse("VYF", catalog.Summer, 6),
		newCourse("PP1", catalog.Winter, 4),
		newCourse("KNN", catalog.Summer, 5),
		newCourse("SIN", catalog.Winter, 5),
	}, []catalog.Specialization{{
		Abbrv:  "NVIZ",
		Name:   "Počítačová grafika a interakce",
		Req:    [catalog.SlotCount][]string{{"FCE"}, {"VYF"}, {}, {}},
		ReqAny: [2][]string{{"PP1"}, {}},
	}})
	require.NoError(t, err)

	spec, err := store.Specialization("NVIZ")
	require.NoError(t, err)
	return store, spec
}

func selection(slots ...[]string) Selection {
	var s Selection
	copy(s.Semesters[:], slots)
	return s
}

func TestEvaluate_RequiredCovered(t *testing.T) {
	store, spec := fixture(t)

	r, err := Evaluate(store, spec, selection([]string{"FCE", "PP1"}, []string{"VYF"}))
	require.NoError(t, err)

	assert.Equal(t, 9, r.Slots[0].Credits)
	assert.Equal(t, 6, r.Slots[1].Credits)
	assert.Equal(t, 15, r.TotalCredits)
	assert.Equal(t, 0, r.RemainingRequiredCount)
	assert.Empty(t, r.WinterShortfall.Courses)
	assert.Equal(t, 15, r.ProjectedTotalCredits)
	assert.Empty(t, r.Misplaced())
}

func TestEvaluate_MandatoryOnly(t *testing.T) {
	store, spec := fixture(t)

	r, err := Evaluate(store, spec, selection([]string{"FCE"}, []string{"VYF"}))
	require.NoError(t, err)

	assert.Equal(t, 11, r.TotalCredits)
	assert.Equal(t, 1, r.RemainingRequiredCount)
	assert.Equal(t, []string{"PP1"}, r.Remaining)
	assert.Equal(t, Shortfall{Courses: []string{"PP1"}, Credits: 4}, r.WinterShortfall)
	assert.Equal(t, 0, r.SummerShortfall.Credits)
	assert.Equal(t, 15, r.ProjectedTotalCredits)
}

func TestEvaluate_EmptyPlan(t *testing.T) {
	store, spec := fixture(t)

	r, err := Evaluate(store, spec, Selection{})
	require.NoError(t, err)

	assert.Equal(t, 0, r.TotalCredits)
	assert.Equal(t, 3, r.RemainingRequiredCount)
	assert.Equal(t, 4, r.WinterShortfall.Credits)
	assert.Equal(t, r.TotalCredits+r.WinterShortfall.Credits+r.SummerShortfall.Credits, r.ProjectedTotalCredits)
	for i, slot := range r.Slots {
		assert.Equal(t, catalog.SlotSemester(i), slot.Semester)
		assert.Zero(t, slot.Credits)
	}
}

func TestEvaluate_Misplaced(t *testing.T) {
	store, spec := fixture(t)

	r, err := Evaluate(store, spec, selection([]string{"FCE", "VYF", "KNN"}))
	require.NoError(t, err)

	require.Len(t, r.Slots[0].Misplaced, 2)
	assert.Equal(t, MisplacedCourse{
		Course:   "VYF",
		Slot:     0,
		Expected: catalog.Winter,
		Actual:   catalog.Summer,
	}, r.Slots[0].Misplaced[0])
	assert.Equal(t, "KNN", r.Slots[0].Misplaced[1].Course)

	// Only FCE is counted
	assert.Equal(t, 5, r.Slots[0].Credits)
	assert.Equal(t, 5, r.TotalCredits)

	// A misplaced required course still counts as chosen
	assert.Equal(t, []string{"PP1"}, r.Remaining)
}

func TestEvaluate_DuplicatesAcrossSlots(t *testing.T) {
	store, spec := fixture(t)

	// FCE in both winter slots, SIN twice in the same slot
	r, err := Evaluate(store, spec, selection(
		[]string{"FCE", "SIN", "SIN"},
		[]string{"VYF"},
		[]string{"FCE"},
	))
	require.NoError(t, err)

	// Per-slot sums count every entry
	assert.Equal(t, 15, r.Slots[0].Credits)
	assert.Equal(t, 5, r.Slots[2].Credits)

	// The total counts each distinct course once
	assert.Equal(t, 16, r.TotalCredits)
	sum := 0
	for _, s := range r.Slots {
		sum += s.Credits
	}
	assert.NotEqual(t, sum, r.TotalCredits)
	assert.Equal(t, []string{"SIN"}, r.Optional)
}

func TestEvaluate_UnknownCourse(t *testing.T) {
	store, spec := fixture(t)

	_, err := Evaluate(store, spec, selection([]string{"FCE"}, []string{"NOPE"}))

	var unknown *catalog.UnknownCourseError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "NOPE", unknown.Key)
}

func TestEvaluate_ExtraCredits(t *testing.T) {
	store, spec := fixture(t)

	sel := selection([]string{"FCE"})
	sel.ExtraCredits = 30

	r, err := Evaluate(store, spec, sel)
	require.NoError(t, err)

	assert.Equal(t, 35, r.TotalCredits)
	assert.Equal(t, r.TotalCredits+r.WinterShortfall.Credits+r.SummerShortfall.Credits, r.ProjectedTotalCredits)
}

func TestEvaluate_DoesNotMutateStore(t *testing.T) {
	store, spec := fixture(t)
	before, _ := store.Course("FCE")

	_, err := Evaluate(store, spec, selection([]string{"FCE", "VYF"}))
	require.NoError(t, err)

	after, _ := store.Course("FCE")
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"FCE", "PP1", "VYF"}, spec.ReqAll)
}

func TestPassedThreshold(t *testing.T) {
	assert.Equal(t, 120, CreditTarget)
	assert.True(t, Passed(120))
	assert.True(t, Passed(121))
	assert.False(t, Passed(119))
}

func TestDecide(t *testing.T) {
	store, spec := fixture(t)

	d, err := Decide(store, spec, selection([]string{"PP1", "FCE"}, []string{"KNN"}))
	require.NoError(t, err)

	assert.Equal(t, 11, d.Required.TotalCredits)
	assert.Equal(t, 1, d.Required.RemainingRequiredCount)

	// FCE is not listed twice in the merged winter slot
	assert.Equal(t, []string{"FCE", "PP1"}, d.Selected.Slots[0].Courses)
	assert.Equal(t, []string{"VYF", "KNN"}, d.Selected.Slots[1].Courses)
	assert.Equal(t, 20, d.Selected.TotalCredits)
	assert.Equal(t, 0, d.Selected.RemainingRequiredCount)
	assert.Equal(t, []string{"KNN"}, d.Selected.Optional)
}

func TestOverview(t *testing.T) {
	store, _ := fixture(t)

	reports, err := Overview(store)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "NVIZ", r.Spec.Abbrv)
	assert.Equal(t, 11, r.TotalCredits)
	assert.Equal(t, 1, r.RemainingRequiredCount)
	assert.Equal(t, []string{"PP1"}, r.WinterShortfall.Courses)
}

func TestOverview_UnknownRequiredCourse(t *testing.T) {
	store, err := catalog.Load([]catalog.Course{newCourse("FCE", catalog.Winter, 5)},
		[]catalog.Specialization{{Abbrv: "NBIO", Req: [catalog.SlotCount][]string{{"XYZ"}, {}, {}, {}}}})
	require.NoError(t, err)

	_, err = Overview(store)
	var unknown *catalog.UnknownCourseError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "XYZ", unknown.Key)
}

func TestEvaluate_DisambiguatedCourse(t *testing.T) {
	store, err := catalog.Load([]catalog.Course{
		newCourse("FIT", catalog.Winter, 4),
		newCourse("FIT", catalog.Summer, 5),
	}, []catalog.Specialization{{
		Abbrv:  "NSEN",
		Req:    [catalog.SlotCount][]string{{"FIT"}, {}, {}, {}},
		ReqAny: [2][]string{{}, {"FIT"}},
	}})
	require.NoError(t, err)
	spec, err := store.Specialization("NSEN")
	require.NoError(t, err)

	r, err := Evaluate(store, spec, selection([]string{"FIT"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"FITw"}, r.Slots[0].Courses)
	assert.Equal(t, 4, r.Slots[0].Credits)
	assert.Equal(t, []string{"FITs"}, r.Remaining)
	assert.Equal(t, []string{"FITs"}, r.SummerShortfall.Courses)
	assert.Equal(t, 9, r.ProjectedTotalCredits)

	reports, err := Overview(store)
	require.NoError(t, err)
	assert.Equal(t, 4, reports[0].TotalCredits)

	d, err := Decide(store, spec, selection([]string{"FIT"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"FITw"}, d.Selected.Slots[0].Courses)
}
