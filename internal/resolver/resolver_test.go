package resolver

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture HTML: %v", err)
	}
	return doc
}

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing base URL: %v", err)
	}
	return u
}

const menusPage = `
<html><body>
<h1>School Menus</h1>
<p>Menus are posted monthly. See the <a href="https://drive.google.com/file/d/DECOY/view">Hot &amp; Cold Lunch Menu archive</a>.</p>
<h2>August 2025 Menus</h2>
<ul>
  <li><a href="https://drive.google.com/file/d/AUG_BREAKFAST/view">Breakfast Menu</a></li>
  <li><a href="https://drive.google.com/file/d/AUG_LUNCH_1/view">Revolution Foods Hot &amp; Cold Lunch Menu</a></li>
  <li><a href="https://drive.google.com/file/d/AUG_SUPPER/view">Supper Menu</a></li>
</ul>
<h2>September 2025 Menus</h2>
<ul>
  <li><a href="https://drive.google.com/file/d/SEP_BREAKFAST/view">Breakfast Menu</a></li>
  <li><a href="https://drive.google.com/file/d/SEP_LUNCH_1/view">Revolution Foods Hot &amp; Cold Lunch Menu</a></li>
</ul>
<h2>Contact</h2>
<p><a href="https://drive.google.com/file/d/FOOTER/view">Hot &amp; Cold Lunch Menu questions</a></p>
</body></html>`

func TestResolvePicksLinkFromMonthSection(t *testing.T) {
	doc := mustDoc(t, menusPage)
	label := "revolution foods hot & cold lunch menu"

	t.Run("august", func(t *testing.T) {
		got, err := Resolve(doc, nil, "august", label)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		want := "https://drive.google.com/uc?export=download&id=AUG_LUNCH_1"
		if got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})

	// September's section must win even though August's matching link
	// comes first in the document.
	t.Run("september", func(t *testing.T) {
		got, err := Resolve(doc, nil, "september", label)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		want := "https://drive.google.com/uc?export=download&id=SEP_LUNCH_1"
		if got != want {
			t.Errorf("Resolve = %q, want %q", got, want)
		}
	})
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	doc := mustDoc(t, menusPage)

	got, err := Resolve(doc, nil, "AUGUST", "REVOLUTION FOODS HOT & COLD LUNCH MENU")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(got, "AUG_LUNCH_1") {
		t.Errorf("Resolve = %q, want the August link", got)
	}
}

func TestResolveMonthNotFound(t *testing.T) {
	doc := mustDoc(t, menusPage)

	_, err := Resolve(doc, nil, "december", "lunch menu")
	if !errors.Is(err, ErrMonthNotFound) {
		t.Errorf("Resolve error = %v, want ErrMonthNotFound", err)
	}
}

func TestResolveLinkNotFoundInSection(t *testing.T) {
	doc := mustDoc(t, menusPage)

	// September has no supper link; August's must not leak in.
	_, err := Resolve(doc, nil, "september", "supper menu")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("Resolve error = %v, want ErrLinkNotFound", err)
	}
	if errors.Is(err, ErrMonthNotFound) {
		t.Error("a missing link must not report as a missing month")
	}
}

func TestResolveIgnoresLinksOutsideSections(t *testing.T) {
	// The decoy before the first month heading and the footer link after
	// the last month section both carry the label.
	page := `
<html><body>
<p><a href="https://drive.google.com/file/d/DECOY/view">Lunch Menu archive</a></p>
<h2>August</h2>
<p>No menus posted yet.</p>
<h2>Links</h2>
<p><a href="https://drive.google.com/file/d/FOOTER/view">Lunch Menu questions</a></p>
</body></html>`
	doc := mustDoc(t, page)

	_, err := Resolve(doc, nil, "august", "lunch menu")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Errorf("Resolve error = %v, want ErrLinkNotFound", err)
	}
}

func TestResolveSectionSpansLowerHeadings(t *testing.T) {
	// An h3 inside the h2 section must not end it.
	page := `
<html><body>
<h2>August</h2>
<h3>Elementary Schools</h3>
<p><a href="https://drive.google.com/file/d/ELEM/view">Lunch Menu</a></p>
</body></html>`
	doc := mustDoc(t, page)

	got, err := Resolve(doc, nil, "august", "lunch menu")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(got, "id=ELEM") {
		t.Errorf("Resolve = %q, want the ELEM link", got)
	}
}

func TestResolveDirectSiblingAnchor(t *testing.T) {
	// The anchor is a direct sibling of the heading, not nested in a list.
	page := `
<html><body>
<h2>August</h2>
<a href="https://drive.google.com/file/d/SIBLING/view">Lunch Menu</a>
<h2>September</h2>
</body></html>`
	doc := mustDoc(t, page)

	got, err := Resolve(doc, nil, "august", "lunch menu")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.Contains(got, "id=SIBLING") {
		t.Errorf("Resolve = %q, want the SIBLING link", got)
	}
}

func TestResolveRelativeLink(t *testing.T) {
	page := `
<html><body>
<h2>August</h2>
<p><a href="/files/d/REL123/view">Lunch Menu</a></p>
</body></html>`
	doc := mustDoc(t, page)
	base := mustBase(t, "https://www.sfusd.edu/services/menus")

	got, err := Resolve(doc, base, "august", "lunch menu")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := "https://drive.google.com/uc?export=download&id=REL123"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveMalformedShareLink(t *testing.T) {
	page := `
<html><body>
<h2>August</h2>
<p><a href="https://example.com/menus/august.pdf">Lunch Menu</a></p>
</body></html>`
	doc := mustDoc(t, page)

	_, err := Resolve(doc, nil, "august", "lunch menu")
	if !errors.Is(err, ErrMalformedShareLink) {
		t.Errorf("Resolve error = %v, want ErrMalformedShareLink", err)
	}
}

func TestDirectURL(t *testing.T) {
	got, err := DirectURL("https://drive.google.com/file/d/1a2B_c-3d/view?usp=sharing")
	if err != nil {
		t.Fatalf("DirectURL failed: %v", err)
	}
	want := "https://drive.google.com/uc?export=download&id=1a2B_c-3d"
	if got != want {
		t.Errorf("DirectURL = %q, want %q", got, want)
	}

	if _, err := DirectURL("https://example.com/no-id-here"); !errors.Is(err, ErrMalformedShareLink) {
		t.Errorf("DirectURL error = %v, want ErrMalformedShareLink", err)
	}
}
