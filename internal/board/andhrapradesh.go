package board

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Andhra Pradesh High Court display board. The tbody is filled by an AJAX
// call well after the table element exists, so the fetcher polls until a
// court link shows up. Each row packs up to four courts as groups of
// Court No | Coram | Item No | Kept Back; a court that is not sitting merges
// its three data cells into one status cell with colspan.

func init() {
	register(&Site{
		Key:          "andhrapradesh",
		Description:  "Andhra Pradesh High Court display board",
		Bench:        "Amaravati",
		SubBench:     "3",
		URL:          "https://aphc.gov.in/Hcdbs/displayboard.jsp",
		WaitSelector: "#tbody",
		PopulateJS: `() => {
			const tbody = document.getElementById('tbody');
			if (!tbody) return false;
			const rows = tbody.getElementsByTagName('tr');
			if (rows.length === 0) return false;
			const cells = rows[0].getElementsByTagName('td');
			if (cells.length === 0) return false;
			return cells[0].innerHTML.includes('getCourtCauseList');
		}`,
		SettleDelay: 2e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldJudge,
			types.FieldSerial, "kept_back", types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			CourtField: "court_numeric",
			Fields: map[string]string{
				"caseNumber":      "",
				"serialNumber":    types.FieldSerial,
				"passedOverCases": "kept_back",
				"listNumber":      "",
			},
		},
		Rows: andhraRows,
	})
}

func andhraRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	tbody := extract.TableBySelector(doc, "#tbody")
	if tbody == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for _, row := range extract.Rows(tbody) {
		cells := extract.Cells(row)
		if len(cells) < 4 {
			continue
		}

		for idx := 0; idx < len(cells); {
			if !strings.Contains(extract.CellHTML(cells[idx]), "getCourtCauseList") {
				idx++
				continue
			}

			courtNo := extract.CellText(cells[idx])
			if idx+1 >= len(cells) {
				break
			}

			rec := b.Record()
			rec.Set(types.FieldCourt, courtNo)
			rec.Set("court_numeric", extract.LeadingNumber(courtNo))

			if extract.SpanAttr(cells[idx+1], "colspan") >= 3 {
				// "Not in session" / "Session Started" status cell spanning
				// the coram, item and kept-back columns.
				rec.Set(types.FieldSerial, extract.CellText(cells[idx+1]))
				idx += 2
			} else {
				rec.Set(types.FieldJudge, extract.CellText(cells[idx+1]))
				if idx+2 < len(cells) {
					rec.Set(types.FieldSerial, extract.CellText(cells[idx+2]))
				}
				if idx+3 < len(cells) {
					rec.Set("kept_back", extract.CellText(cells[idx+3]))
				}
				idx += 4
			}
			records = append(records, rec)
		}
	}
	return records, nil
}
