package cache

import (
	"errors"
	"fmt"
	"os"

	"fitctl/pkg/catalog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const courseSchema = `
CREATE TABLE courses (
	position INTEGER PRIMARY KEY,
	abbrv    TEXT NOT NULL,
	name     TEXT NOT NULL,
	garant   TEXT NOT NULL,
	link     TEXT NOT NULL,
	semester TEXT NOT NULL,
	credits  INTEGER NOT NULL,
	finals   TEXT NOT NULL,
	dept     TEXT NOT NULL
);
CREATE TABLE course_hours (
	position INTEGER NOT NULL REFERENCES courses(position),
	label    TEXT NOT NULL,
	value    INTEGER NOT NULL
);
CREATE TABLE course_points (
	position INTEGER NOT NULL REFERENCES courses(position),
	label    TEXT NOT NULL,
	value    INTEGER NOT NULL
);`

const specSchema = `
CREATE TABLE specializations (
	position INTEGER PRIMARY KEY,
	abbrv    TEXT NOT NULL,
	name     TEXT NOT NULL,
	garant   TEXT NOT NULL,
	link     TEXT NOT NULL
);
CREATE TABLE spec_courses (
	position INTEGER NOT NULL REFERENCES specializations(position),
	kind     TEXT NOT NULL,
	slot     INTEGER NOT NULL,
	ord      INTEGER NOT NULL,
	abbrv    TEXT NOT NULL
);`

const (
	InsertCourseQuery = "INSERT INTO courses (position, abbrv, name, garant, link, semester, credits, finals, dept) VALUES (:position, :abbrv, :name, :garant, :link, :semester, :credits, :finals, :dept)"
	InsertHoursQuery  = "INSERT INTO course_hours (position, label, value) VALUES (?, ?, ?)"
	InsertPointsQuery = "INSERT INTO course_points (position, label, value) VALUES (?, ?, ?)"
	InsertSpecQuery   = "INSERT INTO specializations (position, abbrv, name, garant, link) VALUES (?, ?, ?, ?, ?)"
	InsertReqQuery    = "INSERT INTO spec_courses (position, kind, slot, ord, abbrv) VALUES (?, ?, ?, ?, ?)"
)

// spec_courses.kind values
const (
	kindReq = "req"
	kindAny = "any"
	kindAll = "all"
)

type courseRow struct {
	Position int `db:"position"`
	catalog.Course
}

type labelRow struct {
	Position int    `db:"position"`
	Label    string `db:"label"`
	Value    int    `db:"value"`
}

type specRow struct {
	Position int    `db:"position"`
	Abbrv    string `db:"abbrv"`
	Name     string `db:"name"`
	Garant   string `db:"garant"`
	Link     string `db:"link"`
}

type specCourseRow struct {
	Position int    `db:"position"`
	Kind     string `db:"kind"`
	Slot     int    `db:"slot"`
	Ord      int    `db:"ord"`
	Abbrv    string `db:"abbrv"`
}

// create replaces any existing file with a fresh database
func create(path, schema string) (*sqlx.DB, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// SQLiteCourses stores the course snapshot in an SQLite database
type SQLiteCourses struct{}

func (SQLiteCourses) Write(path string, courses []catalog.Course) error {
	db, err := create(path, courseSchema)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, c := range courses {
		if _, err := tx.NamedExec(InsertCourseQuery, courseRow{Position: i, Course: c}); err != nil {
			return fmt.Errorf("failed to insert course %s: %w", c.Abbrv, err)
		}
		for label, v := range c.Hours {
			if _, err := tx.Exec(InsertHoursQuery, i, label, v); err != nil {
				return err
			}
		}
		for label, v := range c.Points {
			if _, err := tx.Exec(InsertPointsQuery, i, label, v); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (SQLiteCourses) Read(path string) ([]catalog.Course, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []courseRow
	if err := db.Select(&rows, "SELECT * FROM courses ORDER BY position"); err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	courses := make([]catalog.Course, len(rows))
	byPosition := make(map[int]*catalog.Course, len(rows))
	for i, r := range rows {
		courses[i] = r.Course
		courses[i].Hours = map[string]int{}
		courses[i].Points = map[string]int{}
		byPosition[r.Position] = &courses[i]
	}

	var hours []labelRow
	if err := db.Select(&hours, "SELECT position, label, value FROM course_hours"); err != nil {
		return nil, fmt.Errorf("failed to read course hours: %w", err)
	}
	for _, h := range hours {
		if c, ok := byPosition[h.Position]; ok {
			c.Hours[h.Label] = h.Value
		}
	}

	var points []labelRow
	if err := db.Select(&points, "SELECT position, label, value FROM course_points"); err != nil {
		return nil, fmt.Errorf("failed to read course points: %w", err)
	}
	for _, p := range points {
		if c, ok := byPosition[p.Position]; ok {
			c.Points[p.Label] = p.Value
		}
	}

	return courses, nil
}

// SQLiteSpecializations stores the specialization snapshot in an SQLite database
type SQLiteSpecializations struct{}

func (SQLiteSpecializations) Write(path string, specs []catalog.Specialization) error {
	db, err := create(path, specSchema)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := func(pos int, kind string, slot int, courses []string) error {
		for ord, c := range courses {
			if _, err := tx.Exec(InsertReqQuery, pos, kind, slot, ord, c); err != nil {
				return err
			}
		}
		return nil
	}

	for i, sp := range specs {
		if _, err := tx.Exec(InsertSpecQuery, i, sp.Abbrv, sp.Name, sp.Garant, sp.Link); err != nil {
			return fmt.Errorf("failed to insert specialization %s: %w", sp.Abbrv, err)
		}
		for slot, courses := range sp.Req {
			if err := insert(i, kindReq, slot, courses); err != nil {
				return err
			}
		}
		for slot, courses := range sp.ReqAny {
			if err := insert(i, kindAny, slot, courses); err != nil {
				return err
			}
		}
		if err := insert(i, kindAll, 0, sp.ReqAll); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (SQLiteSpecializations) Read(path string) ([]catalog.Specialization, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var rows []specRow
	if err := db.Select(&rows, "SELECT * FROM specializations ORDER BY position"); err != nil {
		return nil, fmt.Errorf("failed to read specializations: %w", err)
	}

	specs := make([]catalog.Specialization, len(rows))
	byPosition := make(map[int]*catalog.Specialization, len(rows))
	for i, r := range rows {
		sp := catalog.Specialization{
			Abbrv:  r.Abbrv,
			Name:   r.Name,
			Garant: r.Garant,
			Link:   r.Link,
			ReqAll: []string{},
		}
		for slot := range sp.Req {
			sp.Req[slot] = []string{}
		}
		for slot := range sp.ReqAny {
			sp.ReqAny[slot] = []string{}
		}
		specs[i] = sp
		byPosition[r.Position] = &specs[i]
	}

	var courses []specCourseRow
	if err := db.Select(&courses, "SELECT * FROM spec_courses ORDER BY position, kind, slot, ord"); err != nil {
		return nil, fmt.Errorf("failed to read specialization courses: %w", err)
	}
	for _, c := range courses {
		sp, ok := byPosition[c.Position]
		if !ok {
			continue
		}
		switch {
		case c.Kind == kindReq && c.Slot < len(sp.Req):
			sp.Req[c.Slot] = append(sp.Req[c.Slot], c.Abbrv)
		case c.Kind == kindAny && c.Slot < len(sp.ReqAny):
			sp.ReqAny[c.Slot] = append(sp.ReqAny[c.Slot], c.Abbrv)
		case c.Kind == kindAll:
			sp.ReqAll = append(sp.ReqAll, c.Abbrv)
		}
	}

	return specs, nil
}
