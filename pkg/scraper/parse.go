package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// labelled finds the value next to a field label on a detail page.
//
// Detail pages lay fields out as
//
//	<div><tag>Label</tag></div><div>...<valueSel>value</valueSel>...</div>
//
// so the value is looked up in the first div following the label's parent.
func labelled(doc *goquery.Document, tag, label, valueSel string) (string, bool) {
	title := doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Children().Length() == 0 && strings.Contains(s.Text(), label)
	}).First()
	if title.Length() == 0 {
		return "", false
	}

	value := title.Parent().NextAllFiltered("div").First().Find(valueSel).First()
	if value.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(value.Text()), true
}

// parseAmounts parses lists like "26 hod. přednášky, 13 hod. cvičení" or
// "60 b. zkouška, 40 b. projekty" into label -> amount.
func parseAmounts(s string) map[string]int {
	out := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		fields := strings.Fields(part)
		if len(fields) < 3 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		out[strings.Join(fields[2:], " ")] += n
	}
	return out
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}
