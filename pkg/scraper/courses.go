package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"fitctl/pkg/catalog"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoListing is returned when a page has no listing table
var ErrNoListing = errors.New("listing table not found")

// ParseCourseList parses the course listing table. Detail fields (garant,
// hours, points) are filled in later by ParseCourseDetail. The returned
// missing map lists fields that could not be parsed per course.
func ParseCourseList(r io.Reader) ([]catalog.Course, map[string][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, err
	}

	table := doc.Find("main table#list")
	if table.Length() == 0 {
		return nil, nil, ErrNoListing
	}

	var courses []catalog.Course
	missing := make(map[string][]string)

	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 6 {
			return
		}

		c := catalog.NewCourse(cellText(cells.Eq(1)))
		c.Name = cellText(cells.Eq(0))
		c.Link, _ = cells.Eq(0).Find("a").Attr("href")

		// "L" is letní, the summer term; everything else is taught in winter
		if cellText(cells.Eq(2)) == "L" {
			c.Semester = catalog.Summer
		} else {
			c.Semester = catalog.Winter
		}

		credits, err := strconv.Atoi(cellText(cells.Eq(3)))
		if err != nil || credits < 0 {
			missing[c.Abbrv] = append(missing[c.Abbrv], "credits")
		} else {
			c.Credits = credits
		}

		c.Finals = cellText(cells.Eq(4))
		c.Dept = cellText(cells.Eq(5))

		courses = append(courses, c)
	})

	return courses, missing, nil
}

// ParseCourseDetail fills in the garant, hours and points of a course from
// its detail page and returns the names of fields that were not found.
func ParseCourseDetail(r io.Reader, c *catalog.Course) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var missing []string

	if garant, ok := labelled(doc, "p", "Garant", "div"); ok {
		c.Garant = garant
	} else {
		missing = append(missing, "garant")
	}

	if hours, ok := labelled(doc, "p", "Rozsah", "div"); ok && len(parseAmounts(hours)) > 0 {
		c.Hours = parseAmounts(hours)
	} else {
		missing = append(missing, "hours")
	}

	if points, ok := labelled(doc, "p", "Bodov", "div"); ok && len(parseAmounts(points)) > 0 {
		c.Points = parseAmounts(points)
	} else {
		missing = append(missing, "points")
	}

	return missing, nil
}

// FetchCourses downloads the course listing and every course's detail page
func (c *Client) FetchCourses(ctx context.Context) ([]catalog.Course, error) {
	listURL := fmt.Sprintf("study/courses/.cs?year=%d&type=%s", c.opts.Year, c.opts.StudyType)

	resp, err := c.Get(ctx, listURL)
	if err != nil {
		return nil, &FetchError{URL: listURL, Err: err}
	}
	courses, missing, err := ParseCourseList(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &FetchError{URL: listURL, Err: err}
	}
	for _, course := range courses {
		c.warnMissing("course", course.Abbrv, missing[course.Abbrv])
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for i := range courses {
		course := &courses[i]
		if course.Link == "" {
			c.warnMissing("course", course.Abbrv, []string{"link"})
			continue
		}
		g.Go(func() error {
			c.logger.Debug("downloading course", zap.String("course", course.Abbrv))

			resp, err := c.Get(ctx, course.Link)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.warnUnavailable("course", course.Abbrv, err)
				return nil
			}
			defer resp.Body.Close()

			fields, err := ParseCourseDetail(resp.Body, course)
			if err != nil {
				return fmt.Errorf("course %s: %w", course.Abbrv, err)
			}
			c.warnMissing("course", course.Abbrv, fields)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("downloaded courses", zap.Int("count", len(courses)))
	return courses, nil
}

// warnUnavailable keeps the listing record of a page that could not be downloaded
func (c *Client) warnUnavailable(kind, abbrv string, err error) {
	c.logger.Warn("detail page unavailable", zap.String(kind, abbrv), zap.Error(err))
}

func (c *Client) warnMissing(kind, abbrv string, fields []string) {
	for _, f := range fields {
		c.logger.Warn("missing field", zap.String(kind, abbrv), zap.String("field", f))
	}
}
