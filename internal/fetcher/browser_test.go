package fetcher

import (
	"testing"

	"github.com/courtlivestream/boardwatch/internal/board"
)

func TestNeedsPrepare(t *testing.T) {
	cases := []struct {
		name        string
		prepareOnce bool
		prepared    bool
		want        bool
	}{
		{"default site first cycle", false, false, true},
		{"default site later cycles", false, true, true},
		{"prepare-once first cycle", true, false, true},
		{"prepare-once later cycles", true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			site := &board.Site{Key: "test", PrepareOnce: tc.prepareOnce}
			if got := needsPrepare(site, tc.prepared); got != tc.want {
				t.Errorf("needsPrepare(PrepareOnce=%v, prepared=%v) = %v, want %v",
					tc.prepareOnce, tc.prepared, got, tc.want)
			}
		})
	}
}
