package board

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Orissa High Court display board. Three bordered tables side by side, each
// alternating a judge row (single cell spanning both columns) with a court
// row of Court No | case details. Case details read "WKL : 4. WP(C)
// 19033/2023": list tag, serial, case.

var orissaSlCaseRe = regexp.MustCompile(`:\s*(\d+)\.\s*(.+)`)

func init() {
	register(&Site{
		Key:          "orissa",
		Description:  "Orissa High Court display board",
		Bench:        "Cuttack",
		URL:          "http://www.ohcdb.in/",
		WaitSelector: "table",
		SettleDelay:  5e9,
		Columns: []string{
			types.FieldCourt, types.FieldJudge, types.FieldSerial,
			types.FieldCase, "case_details", types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCase,
				"serialNumber": types.FieldSerial,
			},
		},
		Rows: orissaRows,
	})
}

func orissaRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	tables := doc.Find(`table[border="1"]`)
	if tables.Length() == 0 {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	tables.Each(func(_ int, table *goquery.Selection) {
		rows := extract.Rows(table)
		for i := 1; i < len(rows); {
			cells := extract.Cells(rows[i])
			if len(cells) != 1 {
				i++
				continue
			}
			judgeName := extract.CellText(cells[0])

			if i+1 >= len(rows) {
				break
			}
			courtCells := extract.Cells(rows[i+1])
			if len(courtCells) >= 2 {
				courtNo := extract.CellText(courtCells[0])
				details := extract.CellText(courtCells[1])
				slNo, caseNo := orissaCaseInfo(details)

				if courtNo != "" {
					rec := b.Record()
					rec.Set(types.FieldCourt, courtNo)
					rec.Set(types.FieldJudge, judgeName)
					rec.Set(types.FieldSerial, slNo)
					rec.Set(types.FieldCase, caseNo)
					rec.Set("case_details", details)
					records = append(records, rec)
				}
			}
			i += 2
		}
	})
	return records, nil
}

func orissaCaseInfo(details string) (slNo, caseNo string) {
	if details == "" || strings.EqualFold(details, "not in session") {
		return "", details
	}
	if m := orissaSlCaseRe.FindStringSubmatch(details); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", details
}
