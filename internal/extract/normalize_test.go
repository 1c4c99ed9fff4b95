package extract

import (
	"testing"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  COURT NO. 1  ", "COURT NO. 1"},
		{"W.P.(C)\n  12345/2026", "W.P.(C) 12345/2026"},
		{"a\t\tb\n\nc", "a b c"},
	}
	for _, c := range cases {
		if got := CleanText(c.in); got != c.want {
			t.Errorf("CleanText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCaseNumberNumeric(t *testing.T) {
	if got := CaseNumberNumeric("LPA - 500 / 2025", DashSlash); got != "500" {
		t.Errorf("dash-slash: got %q, want 500", got)
	}
	if got := CaseNumberNumeric("MAT/67/2026", SlashSlash); got != "67" {
		t.Errorf("slash-slash: got %q, want 67", got)
	}
	if got := CaseNumberNumeric("CRMP / 3087 / 2025", SlashSlash); got != "3087" {
		t.Errorf("spaced slash-slash: got %q, want 3087", got)
	}
	if got := CaseNumberNumeric("WP.1083/2026", DotSlash); got != "1083" {
		t.Errorf("dot-slash: got %q, want 1083", got)
	}
	if got := CaseNumberNumeric("WPA/444", SlashSlash, Slash); got != "444" {
		t.Errorf("pattern fallthrough: got %q, want 444", got)
	}

	// No pattern matches: first bounded number wins.
	if got := CaseNumberNumeric("ITEM 77 OF LIST", DashSlash); got != "77" {
		t.Errorf("any-number fallback: got %q, want 77", got)
	}

	// No digits at all.
	if got := CaseNumberNumeric("NOT IN SESSION", DashSlash); got != "" {
		t.Errorf("digitless input: got %q, want empty", got)
	}
	if got := CaseNumberNumeric("", DashSlash); got != "" {
		t.Errorf("empty input: got %q, want empty", got)
	}
}

func TestItemNumberNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A23", "23"},
		{"O50", "50"},
		{" 12 ", "12"},
		{"*", ""},
		{"", ""},
		{"FRESH", ""},
	}
	for _, c := range cases {
		if got := ItemNumberNumeric(c.in); got != c.want {
			t.Errorf("ItemNumberNumeric(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLeadingNumber(t *testing.T) {
	if got := LeadingNumber("1 (FIRST COURT)"); got != "1" {
		t.Errorf("got %q, want 1", got)
	}
	if got := LeadingNumber("  23 "); got != "23" {
		t.Errorf("got %q, want 23", got)
	}
	if got := LeadingNumber("COURT 4"); got != "" {
		t.Errorf("non-leading digits: got %q, want empty", got)
	}
}

func TestSerialRange(t *testing.T) {
	got := SerialRange("AD 27-31")
	want := []int{27, 28, 29, 30, 31}
	if len(got) != len(want) {
		t.Fatalf("range length: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("range: got %v, want %v", got, want)
		}
	}

	single := SerialRange("AD 7")
	if len(single) != 1 || single[0] != 7 {
		t.Errorf("single serial: got %v, want [7]", single)
	}

	if got := SerialRange("31-27"); got != nil {
		t.Errorf("reversed range: got %v, want nil", got)
	}
	if got := SerialRange(""); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	if got := SerialRange("PASSED OVER"); got != nil {
		t.Errorf("digitless input: got %v, want nil", got)
	}
}

func TestSplitCauseTitle(t *testing.T) {
	p, r := SplitCauseTitle("RAM KUMAR Vs STATE OF NCT OF DELHI")
	if p != "RAM KUMAR" || r != "STATE OF NCT OF DELHI" {
		t.Errorf("got (%q, %q)", p, r)
	}

	p, r = SplitCauseTitle("A B vs. C D")
	if p != "A B" || r != "C D" {
		t.Errorf("lowercase separator: got (%q, %q)", p, r)
	}

	p, r = SplitCauseTitle("SUO MOTU PROCEEDINGS")
	if p != "SUO MOTU PROCEEDINGS" || r != "" {
		t.Errorf("no separator: got (%q, %q)", p, r)
	}

	// "VS" embedded in a word must not split.
	p, r = SplitCauseTitle("TRAVSCO LTD")
	if p != "TRAVSCO LTD" || r != "" {
		t.Errorf("embedded vs: got (%q, %q)", p, r)
	}
}
