package scraper

import "fmt"

// FetchError means a listing page could not be downloaded or parsed.
// Without the listing there is nothing to scrape, so the run stops.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch listing %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
