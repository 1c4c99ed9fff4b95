package board

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Allahabad High Court court view. Columns:
// Court No. | Serial No. | List | Progress | Case Details | Important Information.
// Courts that are not sitting collapse into a "Court NOT in session" row.

var allahabadCaseRe = regexp.MustCompile(`Case Details\s*-\s*([A-Z0-9/]+)`)

func init() {
	register(&Site{
		Key:          "allahabad",
		Description:  "Allahabad High Court display board",
		Bench:        "Allahabad(Prayagraj)",
		SubBench:     "1",
		URL:          "https://courtview2.allahabadhighcourt.in/courtview/CourtViewAllahabad.do",
		WaitSelector: "tbody",
		SettleDelay:  5e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldSerial,
			types.FieldList, types.FieldStage, types.FieldCase, "case_details",
			types.FieldImportantInfo, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCase,
				"serialNumber": types.FieldSerial,
				"stage":        types.FieldStage,
				"listNumber":   "",
			},
		},
		Rows: allahabadRows,
	})
}

func allahabadRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, types.ErrNoTable
	}

	rows := extract.Rows(tbody)
	var records []*types.DisplayRecord
	for i, row := range rows {
		if i == 0 {
			// Header row lives inside the tbody on this board.
			continue
		}
		cells := extract.Cells(row)
		if len(cells) < 5 {
			continue
		}

		courtNo := extract.CellText(cells[0])

		if strings.Contains(extract.CellText(cells[1]), "NOT in session") {
			rec := b.Record()
			rec.Set(types.FieldCourt, courtNo)
			rec.Set(types.FieldStage, "Court NOT in session")
			rec.Set("case_details", "Court NOT in session")
			if len(cells) > 5 {
				rec.Set(types.FieldImportantInfo, extract.CellText(cells[len(cells)-1]))
			}
			records = append(records, rec)
			continue
		}

		details := extract.CellText(cells[4])
		caseNo := ""
		if m := allahabadCaseRe.FindStringSubmatch(details); m != nil {
			caseNo = m[1]
		} else if m := extract.CaseToken.FindStringSubmatch(details); m != nil {
			caseNo = m[1]
		}

		rec := b.Record()
		rec.Set(types.FieldCourt, courtNo)
		rec.Set(types.FieldSerial, extract.CellText(cells[1]))
		rec.Set(types.FieldList, extract.CellText(cells[2]))
		rec.Set(types.FieldStage, extract.CellText(cells[3]))
		rec.Set(types.FieldCase, caseNo)
		rec.Set("case_details", details)
		if len(cells) > 5 {
			rec.Set(types.FieldImportantInfo, extract.CellText(cells[5]))
		}
		records = append(records, rec)
	}
	return records, nil
}
