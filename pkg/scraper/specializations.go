package scraper

import (
	"context"
	"fmt"
	"io"

	"fitctl/pkg/catalog"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParseSpecializationList parses the specialization table of a study program page
func ParseSpecializationList(r io.Reader) ([]catalog.Specialization, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	holder := doc.Find("main div.table-responsive__holder").First()
	if holder.Length() == 0 {
		return nil, ErrNoListing
	}

	var specs []catalog.Specialization
	holder.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		sp := newSpecialization()
		sp.Name = cellText(cells.Eq(0))
		sp.Link, _ = cells.Eq(0).Find("a").Attr("href")
		sp.Abbrv = cellText(cells.Eq(1))
		specs = append(specs, sp)
	})

	return specs, nil
}

func newSpecialization() catalog.Specialization {
	var sp catalog.Specialization
	for i := range sp.Req {
		sp.Req[i] = []string{}
	}
	for i := range sp.ReqAny {
		sp.ReqAny[i] = []string{}
	}
	sp.ReqAll = []string{}
	return sp
}

// requiredIn returns the abbreviations of mandatory ("P") rows of a plan table
func requiredIn(table *goquery.Selection) []string {
	required := []string{}
	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 || cellText(cells.Eq(2)) != "P" {
			return
		}
		required = append(required, cellText(row.Find("th").First()))
	})
	return required
}

// ParseSpecializationDetail fills in the garant and course requirements of a
// specialization from its page and returns the names of fields not found.
//
// The page lists six plan tables: one per semester of the two years, then
// the winter and summer elective pools.
func ParseSpecializationDetail(r io.Reader, sp *catalog.Specialization) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var missing []string

	if garant, ok := labelled(doc, "div", "Garant", "a"); ok {
		sp.Garant = garant
	} else {
		missing = append(missing, "garant")
	}

	tables := doc.Find("div.table-responsive__holder").First().Find("table")
	if tables.Length() < catalog.SlotCount+len(sp.ReqAny) {
		missing = append(missing, "requirements")
	}

	for i := range sp.Req {
		if i < tables.Length() {
			sp.Req[i] = requiredIn(tables.Eq(i))
		}
	}
	for i := range sp.ReqAny {
		if catalog.SlotCount+i < tables.Length() {
			sp.ReqAny[i] = requiredIn(tables.Eq(catalog.SlotCount + i))
		}
	}
	sp.Normalize()

	return missing, nil
}

// FetchSpecializations downloads the study program page and every specialization's page
func (c *Client) FetchSpecializations(ctx context.Context) ([]catalog.Specialization, error) {
	listURL := fmt.Sprintf("study/program/%d/.cs", c.opts.ProgramID)

	resp, err := c.Get(ctx, listURL)
	if err != nil {
		return nil, &FetchError{URL: listURL, Err: err}
	}
	specs, err := ParseSpecializationList(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, &FetchError{URL: listURL, Err: err}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Concurrency)

	for i := range specs {
		sp := &specs[i]
		if sp.Link == "" {
			c.warnMissing("specialization", sp.Abbrv, []string{"link"})
			continue
		}
		g.Go(func() error {
			c.logger.Debug("downloading specialization", zap.String("specialization", sp.Abbrv))

			resp, err := c.Get(ctx, sp.Link)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.warnUnavailable("specialization", sp.Abbrv, err)
				return nil
			}
			defer resp.Body.Close()

			fields, err := ParseSpecializationDetail(resp.Body, sp)
			if err != nil {
				return fmt.Errorf("specialization %s: %w", sp.Abbrv, err)
			}
			c.warnMissing("specialization", sp.Abbrv, fields)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Info("downloaded specializations", zap.Int("count", len(specs)))
	return specs, nil
}
