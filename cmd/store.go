package cmd

import (
	"context"
	"errors"
	"fmt"

	"fitctl/pkg/cache"
	"fitctl/pkg/catalog"
	"fitctl/pkg/config"
	"fitctl/pkg/scraper"

	"github.com/charmbracelet/huh/spinner"
)

// errInterrupted is returned when the spinner stops before the fetch finished
var errInterrupted = errors.New("fetch interrupted")

// runSpinner shows a spinner until action returns. Overridden in tests.
var runSpinner = func(ctx context.Context, title string, action func()) error {
	return spinner.New().
		Title(title).
		Context(ctx).
		Action(action).
		Run()
}

// withSpinner runs fn behind the spinner and returns its error. If the
// spinner stops first, fn's results must not be used, so an error is returned
// even when the spinner itself reports none.
func withSpinner(ctx context.Context, title string, fn func() error) error {
	done := make(chan error, 1)
	if err := runSpinner(ctx, title, func() { done <- fn() }); err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	default:
		if err := ctx.Err(); err != nil {
			return err
		}
		return errInterrupted
	}
}

// snapshotPaths resolves the cache files, flags first and config second
func snapshotPaths(cfg *config.AppConfig) (string, string, error) {
	courses, specs, err := cfg.CachePaths()
	if err != nil {
		return "", "", err
	}
	if coursesCache != "" {
		courses = coursesCache
	}
	if specsCache != "" {
		specs = specsCache
	}
	return courses, specs, nil
}

// loadStore builds the record store from the cache, scraping the faculty
// website for any snapshot that is missing
func loadStore(ctx context.Context, cfg *config.AppConfig) (*catalog.Store, error) {
	coursesPath, specsPath, err := snapshotPaths(cfg)
	if err != nil {
		return nil, err
	}

	client, err := scraper.NewClient(cfg.ScraperOptions(), logger)
	if err != nil {
		return nil, err
	}

	var courses []catalog.Course
	var specs []catalog.Specialization

	load := func() error {
		var err error
		courses, err = cache.Courses(coursesPath, func() ([]catalog.Course, error) {
			return client.FetchCourses(ctx)
		})
		if err != nil {
			return err
		}
		specs, err = cache.Specializations(specsPath, func() ([]catalog.Specialization, error) {
			return client.FetchSpecializations(ctx)
		})
		return err
	}

	if cache.Exists(coursesPath) && cache.Exists(specsPath) {
		err = load()
	} else if err = ctx.Err(); err == nil {
		err = withSpinner(ctx, "Fetching courses and specializations from the faculty website...", load)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog.Load(courses, specs)
}
