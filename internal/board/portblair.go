package board

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Port Blair circuit bench of the Calcutta High Court. The page sits behind a
// CAPTCHA gate, so the session opens in a visible browser and waits for an
// operator to solve it. Each court row shows a serial display like "AD 27-31"
// that fans out into one record per serial, with the matching case numbers
// hidden in the eye button's onclick handler.

var portblairViewCasesRe = regexp.MustCompile(`viewCases\('([^']+)','([^']+)'\)`)

func init() {
	register(&Site{
		Key:          "portblair",
		Description:  "Calcutta High Court Port Blair bench display board",
		Bench:        "Port Blair",
		URL:          "https://display.calcuttahighcourt.gov.in/portblair.php",
		WaitSelector: "#display-board-table",
		SettleDelay:  2e9,
		PrepareOnce:  true,
		Setup: []Interaction{
			{Kind: InteractCaptchaWait, Selector: "#display-board-table"},
		},
		Columns: []string{
			"bench", types.FieldCourt, types.FieldJudge, types.FieldSerial,
			types.FieldCase, types.FieldCaseNumeric, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCaseNumeric,
				"serialNumber": types.FieldSerial,
				"stage":        types.FieldJudge,
				"listNumber":   "",
			},
		},
		Rows: portblairRows,
	})
}

func portblairRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "#display-board-table")
	if table == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for i, row := range extract.Rows(table) {
		cells := extract.Cells(row)
		if len(cells) < 3 {
			continue
		}

		courtNo := strings.TrimSpace(strings.ReplaceAll(extract.CellText(cells[0]), "ℹ", ""))
		judges := extract.CellText(cells[1])
		serials := extract.SerialRange(extract.CellText(cells[2]))

		var cases []string
		if onclick, ok := row.Find("span[onclick*='viewCases']").First().Attr("onclick"); ok {
			if m := portblairViewCasesRe.FindStringSubmatch(onclick); m != nil {
				for _, cn := range strings.Split(m[2], ",") {
					cases = append(cases, strings.TrimSpace(cn))
				}
			}
		}

		if len(serials) == 0 {
			b.SkipRow(i+1, "no serial numbers")
			continue
		}

		base := b.Record()
		base.Set(types.FieldCourt, courtNo)
		base.Set(types.FieldJudge, judges)

		// One record per serial. When the serial and case counts differ the
		// last case number is reused for the tail.
		n := len(serials)
		if len(cases) > n {
			n = len(cases)
		}
		for j := 0; j < n; j++ {
			serial := serials[len(serials)-1]
			if j < len(serials) {
				serial = serials[j]
			}
			caseFull := ""
			if len(cases) > 0 {
				caseFull = cases[len(cases)-1]
				if j < len(cases) {
					caseFull = cases[j]
				}
			}

			rec := base.Clone()
			rec.Set(types.FieldSerial, strconv.Itoa(serial))
			rec.Set(types.FieldCase, caseFull)
			rec.Set(types.FieldCaseNumeric, extract.CaseNumberNumeric(caseFull, extract.SlashSlash, extract.Slash))
			records = append(records, rec)
		}
	}
	return records, nil
}
