package board

import (
	"sort"

	"github.com/courtlivestream/boardwatch/internal/types"
)

var registry = map[string]*Site{}

// register adds a site at package init. Duplicate keys are a programming
// error and panic immediately.
func register(s *Site) {
	if _, ok := registry[s.Key]; ok {
		panic("duplicate site key: " + s.Key)
	}
	if s.FetcherType == "" {
		s.FetcherType = "browser"
	}
	registry[s.Key] = s
}

// Lookup returns the site registered under key.
func Lookup(key string) (*Site, error) {
	s, ok := registry[key]
	if !ok {
		return nil, types.ErrUnknownSite
	}
	return s, nil
}

// Keys returns all registered site keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all registered sites in key order.
func All() []*Site {
	var sites []*Site
	for _, k := range Keys() {
		sites = append(sites, registry[k])
	}
	return sites
}
