package board

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/types"
)

func testBuilder(t *testing.T, key string) (*Site, *Builder) {
	t.Helper()
	site, err := Lookup(key)
	if err != nil {
		t.Fatalf("lookup %s: %v", key, err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	at := time.Date(2026, 8, 25, 11, 30, 0, 0, time.Local)
	return site, NewBuilder(site, at, logger)
}

func parseFixture(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestDelhiRows(t *testing.T) {
	site, b := testBuilder(t, "delhi")
	doc := parseFixture(t, `<table id="physical_display_board">
		<thead><tr><th>Court</th><th>Item No.</th><th>Judges</th><th>Case No.</th><th>Title</th><th>VC</th></tr></thead>
		<tbody>
			<tr><td>1</td><td>A15</td><td>HON'BLE THE CHIEF JUSTICE</td><td>LPA - 500 / 2025</td><td>RAM KUMAR Vs STATE</td><td></td></tr>
			<tr><td>2</td><td>*</td><td></td><td></td><td></td><td></td></tr>
			<tr><td>3</td><td>7</td><td>HON'BLE MR. JUSTICE X</td><td>W.P.(C) - 1083 / 2026</td><td>ACME LTD</td><td></td></tr>
		</tbody>
	</table>`)

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (empty slot skipped), got %d", len(records))
	}

	first := records[0]
	if first.Bench != "New Delhi" {
		t.Errorf("bench: got %q", first.Bench)
	}
	if got := first.Get(types.FieldCourt); got != "1" {
		t.Errorf("court: got %q", got)
	}
	if got := first.Get(types.FieldSerialNumeric); got != "15" {
		t.Errorf("serial numeric: got %q", got)
	}
	if got := first.Get(types.FieldCaseNumeric); got != "500" {
		t.Errorf("case numeric: got %q", got)
	}
	if got := first.Get(types.FieldPetitioner); got != "RAM KUMAR" {
		t.Errorf("petitioner: got %q", got)
	}
	if got := first.Get(types.FieldRespondent); got != "STATE" {
		t.Errorf("respondent: got %q", got)
	}

	second := records[1]
	if got := second.Get(types.FieldPetitioner); got != "ACME LTD" {
		t.Errorf("title without separator: got %q", got)
	}
	if got := second.Get(types.FieldRespondent); got != "" {
		t.Errorf("expected empty respondent, got %q", got)
	}
}

func TestDelhiRowsNoTable(t *testing.T) {
	site, b := testBuilder(t, "delhi")
	doc := parseFixture(t, `<div>maintenance page</div>`)

	_, err := site.Rows(doc, b)
	if err != types.ErrNoTable {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestAllahabadRows(t *testing.T) {
	site, b := testBuilder(t, "allahabad")
	doc := parseFixture(t, `<table><tbody>
		<tr><td>Court No.</td><td>Serial No.</td><td>List</td><td>Progress</td><td>Case Details</td><td>Info</td></tr>
		<tr><td>1</td><td>23</td><td>Fresh List</td><td>Hearing</td><td>Case Details - WRIA/5561/2026 RAM Vs STATE</td><td></td></tr>
		<tr><td>2</td><td>Court NOT in session</td><td></td><td></td><td></td><td>resumes at 2 PM</td></tr>
	</tbody></table>`)

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	sitting := records[0]
	if got := sitting.Get(types.FieldCase); got != "WRIA/5561/2026" {
		t.Errorf("case: got %q", got)
	}
	if got := sitting.Get(types.FieldSerial); got != "23" {
		t.Errorf("serial: got %q", got)
	}
	if got := sitting.Get(types.FieldStage); got != "Hearing" {
		t.Errorf("stage: got %q", got)
	}
	if sitting.SubBench != "1" {
		t.Errorf("sub bench: got %q", sitting.SubBench)
	}

	idle := records[1]
	if got := idle.Get(types.FieldStage); got != "Court NOT in session" {
		t.Errorf("idle stage: got %q", got)
	}
	if got := idle.Get(types.FieldImportantInfo); got != "resumes at 2 PM" {
		t.Errorf("idle info: got %q", got)
	}
}

func TestDharwadRowsPicksThirdTable(t *testing.T) {
	site, b := testBuilder(t, "dharwad")
	bench := func(rows string) string {
		return `<table><tr><th>CH No.</th><th>List No.</th><th>Sl. No.</th><th>Case No.</th><th>Stage</th></tr>` + rows + `</table>`
	}
	doc := parseFixture(t,
		bench(`<tr><td>1</td><td>1</td><td>5</td><td>WP 1/2026</td><td>Orders</td></tr>`)+
			bench(`<tr><td>1</td><td>1</td><td>9</td><td>WA 2/2026</td><td>Hearing</td></tr>`)+
			bench(`<tr><td>2</td><td>1</td><td>14</td><td>CRL.P 3/2026</td><td>Admission</td></tr>
			       <tr><td>3</td><td></td><td></td><td>No Session</td><td></td></tr>`))

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records from the third table, got %d", len(records))
	}
	if got := records[0].Get(types.FieldCase); got != "CRL.P 3/2026" {
		t.Errorf("case from wrong table: got %q", got)
	}
	if got := records[1].Get(types.FieldCase); got != "No Session" {
		t.Errorf("no-session row must be kept: got %q", got)
	}
}

func TestChattisgarhRows(t *testing.T) {
	site, b := testBuilder(t, "chattisgarh")
	doc := parseFixture(t, `<html><body><table id="tb1"><tbody>
		<tr><td colspan="6"><marquee>court notice</marquee></td></tr>
		<tr><td rowspan="2">Court No. 1</td><td>Daily</td><td>I</td><td>5</td><td>WPS / 1234 / 2025</td><td>MOTION / 99 / 2025</td></tr>
		<tr><td>Daily</td><td>I</td><td>6</td><td>CRA / 77 / 2024</td><td>HEARING</td></tr>
	</tbody></table></body></html>`)

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (marquee row dropped), got %d", len(records))
	}

	lead := records[0]
	if got := lead.Get(types.FieldCourt); got != "Court No. 1" {
		t.Errorf("court: got %q", got)
	}
	if got := lead.Get("case_type"); got != "WPS" {
		t.Errorf("case type: got %q", got)
	}
	if got := lead.Get("case_numeric"); got != "1234" {
		t.Errorf("case numeric: got %q", got)
	}
	if got := lead.Get("case_year"); got != "2025" {
		t.Errorf("case year: got %q", got)
	}
	if got := lead.Get("stage_numeric"); got != "99" {
		t.Errorf("stage numeric: got %q", got)
	}

	cont := records[1]
	if got := cont.Get(types.FieldCourt); got != "Court No. 1" {
		t.Errorf("continuation row must inherit the court: got %q", got)
	}
	if got := cont.Get(types.FieldCase); got != "CRA / 77 / 2024" {
		t.Errorf("continuation case: got %q", got)
	}
	if got := cont.Get(types.FieldSerial); got != "6" {
		t.Errorf("continuation serial: got %q", got)
	}
}

func TestChattisgarhRowsNoTable(t *testing.T) {
	site, b := testBuilder(t, "chattisgarh")
	doc := parseFixture(t, `<html><body><table id="other"><tr><td>1</td></tr></table></body></html>`)

	_, err := site.Rows(doc, b)
	if err != types.ErrNoTable {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestMadrasRows(t *testing.T) {
	site, b := testBuilder(t, "madras")
	doc := parseFixture(t, `<html><body>
		<div class="court-box">Court No : 1<br>Item No : 12<br>WP 123/2026</div>
		<div class="court-box">Court No : 2<br>Item No : 7<br>awaiting next item</div>
	</body></html>`)

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record (caseless court skipped), got %d", len(records))
	}

	rec := records[0]
	if got := rec.Get(types.FieldCourt); got != "1" {
		t.Errorf("court: got %q", got)
	}
	if got := rec.Get(types.FieldSerial); got != "12" {
		t.Errorf("serial: got %q", got)
	}
	if got := rec.Get(types.FieldCase); got != "WP123/2026" {
		t.Errorf("case: got %q", got)
	}
	if got := rec.Get(types.FieldCaseNumeric); got != "123" {
		t.Errorf("case numeric: got %q", got)
	}
	if got := b.Skipped(); got != 1 {
		t.Errorf("skipped rows: got %d, want 1", got)
	}
}

func TestPortBlairRows(t *testing.T) {
	site, b := testBuilder(t, "portblair")
	doc := parseFixture(t, `<html><body><table id="display-board-table"><tbody>
		<tr>
			<td>1 ℹ</td><td>HON'BLE JUSTICE A</td><td>AD 27-29</td>
			<td><span onclick="viewCases('1','WPA/101/2025, WPA/102/2025')">view</span></td>
		</tr>
		<tr><td>2</td><td>HON'BLE JUSTICE B</td><td></td><td></td></tr>
	</tbody></table></body></html>`)

	records, err := site.Rows(doc, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected the 27-29 range to fan out into 3 records, got %d", len(records))
	}

	wantSerial := []string{"27", "28", "29"}
	wantCase := []string{"WPA/101/2025", "WPA/102/2025", "WPA/102/2025"}
	wantNumeric := []string{"101", "102", "102"}
	for i, rec := range records {
		if got := rec.Get(types.FieldCourt); got != "1" {
			t.Errorf("record %d court: got %q", i, got)
		}
		if got := rec.Get(types.FieldJudge); got != "HON'BLE JUSTICE A" {
			t.Errorf("record %d judge: got %q", i, got)
		}
		if got := rec.Get(types.FieldSerial); got != wantSerial[i] {
			t.Errorf("record %d serial: got %q, want %q", i, got, wantSerial[i])
		}
		if got := rec.Get(types.FieldCase); got != wantCase[i] {
			t.Errorf("record %d case: got %q, want %q", i, got, wantCase[i])
		}
		if got := rec.Get(types.FieldCaseNumeric); got != wantNumeric[i] {
			t.Errorf("record %d case numeric: got %q, want %q", i, got, wantNumeric[i])
		}
	}
	if got := b.Skipped(); got != 1 {
		t.Errorf("serial-less row must be skipped: got %d skips, want 1", got)
	}
}

func TestDharwadRowsTooFewTables(t *testing.T) {
	site, b := testBuilder(t, "dharwad")
	doc := parseFixture(t, `<table><tr><th>CH No.</th></tr></table>`)

	_, err := site.Rows(doc, b)
	if err != types.ErrNoTable {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}
