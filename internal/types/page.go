package types

import (
	"bytes"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a rendered snapshot of a display-board page, produced by a fetcher
// and consumed by the row extractor.
type Page struct {
	// URL is the board URL the snapshot came from.
	URL string

	// HTML is the fully rendered document markup.
	HTML []byte

	// FetchedAt is when the snapshot was taken.
	FetchedAt time.Time

	// Duration is how long the fetch took, including render waits.
	Duration time.Duration

	doc *goquery.Document
}

// NewPage creates a page snapshot.
func NewPage(url string, html []byte, duration time.Duration) *Page {
	return &Page{
		URL:       url,
		HTML:      html,
		FetchedAt: time.Now(),
		Duration:  duration,
	}
}

// Document parses the snapshot into a goquery document. The parse result is
// cached; a Page is only ever read by the single loop iteration that owns it.
func (p *Page) Document() (*goquery.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.HTML))
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc, nil
}
