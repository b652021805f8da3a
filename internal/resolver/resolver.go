// Package resolver locates the current month's menu link on the district's
// menus page and converts it to a direct-download URL.
package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Resolution failures, distinguishable with errors.Is.
var (
	ErrMonthNotFound      = errors.New("no section heading matches the target month")
	ErrLinkNotFound       = errors.New("no menu link matches the provider label")
	ErrMalformedShareLink = errors.New("share link carries no file id")
)

// Share links embed the file id as /d/<id>; the direct form bypasses the
// hosting provider's preview page.
var shareIDRegex = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

const directURLFormat = "https://drive.google.com/uc?export=download&id=%s"

// Resolve finds the menu document link for the given month on the menus
// page and returns a direct-download URL for it.
//
// The month's section runs from the heading whose text contains monthLabel
// to the next heading of equal or higher level. Within that section the
// first link whose text contains providerLabel wins; links in other months'
// sections are never considered. Both matches are case-insensitive.
// Relative links are resolved against base.
func Resolve(doc *goquery.Document, base *url.URL, monthLabel, providerLabel string) (string, error) {
	heading := findHeading(doc, monthLabel)
	if heading == nil {
		return "", fmt.Errorf("%w: %q", ErrMonthNotFound, monthLabel)
	}

	link := findSectionLink(heading, providerLabel)
	if link == nil {
		return "", fmt.Errorf("%w: %q under %q", ErrLinkNotFound, providerLabel, monthLabel)
	}

	href, _ := link.Attr("href")
	if base != nil {
		if abs, err := base.Parse(href); err == nil {
			href = abs.String()
		}
	}

	return DirectURL(href)
}

// DirectURL converts a share link into its direct-download form.
func DirectURL(shareLink string) (string, error) {
	m := shareIDRegex.FindStringSubmatch(shareLink)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedShareLink, shareLink)
	}
	return fmt.Sprintf(directURLFormat, m[1]), nil
}

// findHeading returns the first h1-h6 whose text contains monthLabel.
func findHeading(doc *goquery.Document, monthLabel string) *goquery.Selection {
	want := strings.ToLower(monthLabel)

	var heading *goquery.Selection
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(h.Text()), want) {
			heading = h
			return false
		}
		return true
	})
	return heading
}

// findSectionLink scans the heading's section, in document order, for the
// first link whose text contains providerLabel.
func findSectionLink(heading *goquery.Selection, providerLabel string) *goquery.Selection {
	// The section ends where the next heading of equal or higher level
	// starts, so a later month's links stay out of scope.
	level := headingLevel(goquery.NodeName(heading))
	stops := make([]string, 0, level)
	for i := 1; i <= level; i++ {
		stops = append(stops, fmt.Sprintf("h%d", i))
	}
	section := heading.NextUntil(strings.Join(stops, ", "))

	want := strings.ToLower(providerLabel)
	var link *goquery.Selection
	section.EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if goquery.NodeName(sib) == "a" {
			if _, ok := sib.Attr("href"); ok && strings.Contains(strings.ToLower(sib.Text()), want) {
				link = sib
				return false
			}
			return true
		}
		sib.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(a.Text()), want) {
				link = a
				return false
			}
			return true
		})
		return link == nil
	})
	return link
}

func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 6
}
