package board

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Patna High Court online display board. A four-column flip-card table that
// holds two courts per row as Court Number | Case Number pairs. The live case
// value sometimes renders as an input button rather than text. Case cells
// read "13 - C.MISC./459/2016 (FOR ADMISSION)": item number, dash, case.

func init() {
	register(&Site{
		Key:          "patna",
		Description:  "Patna High Court display board",
		Bench:        "patna",
		SubBench:     "34",
		URL:          "https://patnahighcourt.gov.in/online_display_board",
		WaitSelector: ".CSSTableDisplayBoard",
		SettleDelay:  10e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldSerial,
			types.FieldCase, "case_details", types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCase,
				"serialNumber": types.FieldSerial,
			},
		},
		Rows: patnaRows,
	})
}

func patnaRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "table.CSSTableDisplayBoard")
	if table == nil {
		return nil, types.ErrNoTable
	}

	rows := extract.Rows(table)
	if len(rows) == 0 {
		return nil, types.ErrTableEmpty
	}

	// The header row is not necessarily first; find the one that labels the
	// court columns.
	headerIdx := 0
	for i, row := range rows {
		isHeader := false
		for _, cell := range extract.Cells(row) {
			if strings.Contains(strings.ToUpper(extract.CellValueOrText(cell)), "COURT NUMBER") {
				isHeader = true
				break
			}
		}
		if isHeader {
			headerIdx = i
			break
		}
	}

	var records []*types.DisplayRecord
	for _, row := range rows[headerIdx+1:] {
		cells := extract.Cells(row)
		if len(cells) < 2 {
			continue
		}
		records = appendPatnaCourt(records, b, cells[0], cells[1])
		if len(cells) >= 4 {
			records = appendPatnaCourt(records, b, cells[2], cells[3])
		}
	}
	return records, nil
}

func appendPatnaCourt(records []*types.DisplayRecord, b *Builder, courtCell, caseCell *goquery.Selection) []*types.DisplayRecord {
	courtNo := extract.CellValueOrText(courtCell)
	if courtNo == "" {
		return records
	}
	details := extract.CellValueOrText(caseCell)
	item, caseNo := patnaCaseInfo(details)

	rec := b.Record()
	rec.Set(types.FieldCourt, courtNo)
	rec.Set(types.FieldSerial, item)
	rec.Set(types.FieldCase, caseNo)
	rec.Set("case_details", details)
	return append(records, rec)
}

// patnaCaseInfo splits "13 - C.MISC./459/2016 (FOR ADMISSION)" into the item
// number and the case text. "NOT IN SESSION" and empty cells yield nothing.
func patnaCaseInfo(details string) (item, caseNo string) {
	if details == "" || details == "NOT IN SESSION" {
		return "", ""
	}
	if before, after, found := strings.Cut(details, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return "", details
}
