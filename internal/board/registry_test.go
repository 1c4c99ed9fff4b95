package board

import (
	"errors"
	"sort"
	"testing"

	"github.com/courtlivestream/boardwatch/internal/types"
)

func TestLookup(t *testing.T) {
	site, err := Lookup("delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if site.Key != "delhi" {
		t.Errorf("got key %q", site.Key)
	}

	_, err = Lookup("atlantis")
	if !errors.Is(err, types.ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("no sites registered")
	}
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}
}

// Every registered site must be complete enough for the poller to run it
// blind: identity, URL, a fetcher, day-file columns, and an extractor.
func TestRegisteredSitesComplete(t *testing.T) {
	for _, site := range All() {
		if site.Bench == "" {
			t.Errorf("%s: missing bench", site.Key)
		}
		if site.URL == "" {
			t.Errorf("%s: missing URL", site.Key)
		}
		if site.FetcherType != "browser" && site.FetcherType != "http" {
			t.Errorf("%s: bad fetcher type %q", site.Key, site.FetcherType)
		}
		if len(site.Columns) == 0 {
			t.Errorf("%s: no day-file columns", site.Key)
		}
		if site.Rows == nil {
			t.Errorf("%s: no row extractor", site.Key)
		}
		if len(site.Payload.Fields) == 0 {
			t.Errorf("%s: no payload mapping", site.Key)
		}
	}
}
