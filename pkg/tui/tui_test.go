package tui

import (
	"testing"

	"fitctl/pkg/catalog"
)

func TestValidateHex(t *testing.T) {
	for _, tc := range []struct {
		in    string
		valid bool
	}{
		{"#FF00FF", true},
		{"#a1b2c3", true},
		{"FF00FF", false},
		{"#FF00F", false},
		{"#GG00FF", false},
	} {
		err := ValidateHex(tc.in)
		if (err == nil) != tc.valid {
			t.Errorf("ValidateHex(%q) = %v, want valid=%v", tc.in, err, tc.valid)
		}
	}
}

func TestValidNumber(t *testing.T) {
	if err := validNumber("2023"); err != nil {
		t.Errorf("expected 2023 to be valid, got %v", err)
	}
	if err := validNumber(""); err != nil {
		t.Errorf("expected empty input to keep the default, got %v", err)
	}
	if err := validNumber("-1"); err == nil {
		t.Errorf("expected negative number to be rejected")
	}
}

func TestCourseOptions(t *testing.T) {
	mk := func(abbrv string, sem catalog.Semester) catalog.Course {
		c := catalog.NewCourse(abbrv)
		c.Semester = sem
		c.Credits = 5
		return c
	}
	store, err := catalog.Load([]catalog.Course{
		mk("FCE", catalog.Winter),
		mk("PGR", catalog.Winter),
		mk("VYF", catalog.Summer),
	}, []catalog.Specialization{{Abbrv: "NVIZ", Req: [catalog.SlotCount][]string{{"FCE"}, {}, {}, {}}}})
	if err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	spec, _ := store.Specialization("NVIZ")

	options := courseOptions(store, spec, 0, []string{"PGR"})
	if len(options) != 2 {
		t.Fatalf("expected only the 2 winter courses, got %d", len(options))
	}
	if options[0].Value != "FCE" || options[0].Key != "FCE   (5 cr.) *" {
		t.Errorf("unexpected first option %+v", options[0])
	}
	if options[1].Value != "PGR" {
		t.Errorf("unexpected second option %+v", options[1])
	}

	if summer := courseOptions(store, spec, 3, nil); len(summer) != 1 || summer[0].Value != "VYF" {
		t.Errorf("expected VYF for the second-year summer slot, got %+v", summer)
	}
}
