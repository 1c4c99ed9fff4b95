package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecordRow(t *testing.T) {
	at := time.Date(2026, 8, 25, 14, 5, 9, 0, time.Local)
	rec := NewDisplayRecord("kerala", "Kochi", "3", at)
	rec.Set(FieldCourt, "2")
	rec.Set(FieldCase, "WP(C) 100/2026")

	row := rec.Row([]string{"bench", "sub_bench", FieldCourt, FieldCase, FieldJudge, FieldScrapeDateTime})
	want := []string{"Kochi", "3", "2", "WP(C) 100/2026", "", "2026-08-25 14:05:09"}
	if len(row) != len(want) {
		t.Fatalf("row length: got %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d: got %q, want %q", i, row[i], want[i])
		}
	}
}

func TestRecordClone(t *testing.T) {
	rec := NewDisplayRecord("portblair", "Port Blair", "", time.Now())
	rec.Set(FieldSerial, "27")

	clone := rec.Clone()
	clone.Set(FieldSerial, "28")

	if rec.Get(FieldSerial) != "27" {
		t.Error("clone mutation leaked into the original")
	}
	if clone.Bench != "Port Blair" {
		t.Errorf("clone bench: got %q", clone.Bench)
	}
}

func TestRecordToJSON(t *testing.T) {
	rec := NewDisplayRecord("delhi", "New Delhi", "", time.Now())
	rec.Set(FieldCourt, "1")

	raw, err := rec.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["site"] != "delhi" {
		t.Errorf("site: got %v", out["site"])
	}
	if _, ok := out["sub_bench"]; ok {
		t.Error("empty sub_bench must be omitted")
	}
}
