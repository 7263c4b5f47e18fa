package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fitctl/pkg/catalog"

	"github.com/google/go-cmp/cmp"
)

func sampleCourses() []catalog.Course {
	fce := catalog.NewCourse("FCE")
	fce.Name = "Fyzika v elektrotechnice"
	fce.Garant = "Ing. Jan Novák"
	fce.Link = "https://www.fit.vut.cz/study/course/FCE/.cs"
	fce.Semester = catalog.Winter
	fce.Credits = 5
	fce.Finals = "ZáZk"
	fce.Dept = "UPGM"
	fce.Hours = map[string]int{"přednášky": 26, "cvičení": 13}
	fce.Points = map[string]int{"zkouška": 60, "projekty": 40}

	// Same abbreviation in both semesters, no detail tables
	fitW := catalog.NewCourse("FIT")
	fitW.Semester = catalog.Winter
	fitW.Credits = 4
	fitS := catalog.NewCourse("FIT")
	fitS.Semester = catalog.Summer
	fitS.Credits = 4

	return []catalog.Course{fce, fitW, fitS}
}

func sampleSpecializations() []catalog.Specialization {
	nviz := catalog.Specialization{
		Abbrv:  "NVIZ",
		Name:   "Počítačová grafika a interakce",
		Garant: "prof. Ing. Adam Herout, Ph.D.",
		Link:   "https://www.fit.vut.cz/study/field/15127/.cs",
		Req:    [catalog.SlotCount][]string{{"FCE"}, {"VYF"}, {}, {"MTIa"}},
		ReqAny: [2][]string{{"PGR", "POVa"}, {}},
	}
	nviz.Normalize()

	empty := catalog.Specialization{
		Abbrv:  "NBIO",
		Req:    [catalog.SlotCount][]string{{}, {}, {}, {}},
		ReqAny: [2][]string{{}, {}},
	}
	empty.Normalize()

	return []catalog.Specialization{nviz, empty}
}

func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".json", ".db"} {
		t.Run(ext, func(t *testing.T) {
			dir := t.TempDir()

			coursePath := filepath.Join(dir, "courses"+ext)
			courses := sampleCourses()
			if err := CourseCodec(coursePath).Write(coursePath, courses); err != nil {
				t.Fatalf("failed to write courses: %v", err)
			}
			loadedCourses, err := CourseCodec(coursePath).Read(coursePath)
			if err != nil {
				t.Fatalf("failed to read courses: %v", err)
			}
			if diff := cmp.Diff(courses, loadedCourses); diff != "" {
				t.Errorf("course round trip mismatch (-want +got):\n%s", diff)
			}

			specPath := filepath.Join(dir, "specializations"+ext)
			specs := sampleSpecializations()
			if err := SpecializationCodec(specPath).Write(specPath, specs); err != nil {
				t.Fatalf("failed to write specializations: %v", err)
			}
			loadedSpecs, err := SpecializationCodec(specPath).Read(specPath)
			if err != nil {
				t.Fatalf("failed to read specializations: %v", err)
			}
			if diff := cmp.Diff(specs, loadedSpecs); diff != "" {
				t.Errorf("specialization round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSQLiteOverwritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.sqlite")

	if err := (SQLiteCourses{}).Write(path, sampleCourses()); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	single := sampleCourses()[:1]
	if err := (SQLiteCourses{}).Write(path, single); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	loaded, err := (SQLiteCourses{}).Read(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if diff := cmp.Diff(single, loaded); diff != "" {
		t.Errorf("expected only the second snapshot (-want +got):\n%s", diff)
	}
}

func TestLoadOrPopulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "courses.json")

	calls := 0
	populate := func() ([]catalog.Course, error) {
		calls++
		return sampleCourses(), nil
	}

	// 1. Nothing cached yet, populate and persist
	first, err := Courses(path, populate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected populate to be called once, got %d", calls)
	}
	if !Exists(path) {
		t.Fatalf("expected snapshot at %s", path)
	}

	// 2. Snapshot exists, populate must not run again
	second, err := Courses(path, populate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected cached snapshot to be used, populate called %d times", calls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached courses differ (-first +second):\n%s", diff)
	}
}

func TestLoadOrPopulate_UnreadableSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "specializations.json")
	if err := os.WriteFile(path, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	specs, err := Specializations(path, func() ([]catalog.Specialization, error) {
		return sampleSpecializations(), nil
	})
	if err != nil {
		t.Fatalf("expected the snapshot to be repopulated, got: %v", err)
	}
	if len(specs) != 2 {
		t.Errorf("expected 2 specializations, got %d", len(specs))
	}
}

func TestLoadOrPopulate_PopulateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	wantErr := errors.New("listing page unavailable")

	_, err := Courses(path, func() ([]catalog.Course, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected populate error, got %v", err)
	}
	if Exists(path) {
		t.Errorf("no snapshot should be written when populate fails")
	}
}

func TestLoadOrPopulate_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// The parent "directory" is a regular file
	path := filepath.Join(blocker, "courses.json")
	_, err := Courses(path, func() ([]catalog.Course, error) {
		return sampleCourses(), nil
	})

	var writeErr *WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if writeErr.Path != path {
		t.Errorf("expected path %s, got %s", path, writeErr.Path)
	}
}

func TestDefaultDir(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(tempDir, ".fitctl_cache")
	if dir != expected {
		t.Errorf("expected %s, got %s", expected, dir)
	}
	if _, err := os.Stat(expected); os.IsNotExist(err) {
		t.Errorf("expected cache directory to be created")
	}
}
