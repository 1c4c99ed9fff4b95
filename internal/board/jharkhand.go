package board

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Jharkhand High Court display board. Several tables on one page, each row a
// court: Court | Sl.No. | Case No. | Status. A two-cell row means the court
// is not in session and the second cell holds the status text.

func init() {
	register(&Site{
		Key:          "jharkhand",
		Description:  "Jharkhand High Court display board",
		Bench:        "Ranchi",
		SubBench:     "21",
		URL:          "https://jharkhandhighcourt.nic.in/dpboard.php",
		WaitSelector: "table",
		SettleDelay:  3e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldSerial,
			types.FieldCase, "status", types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCase,
				"serialNumber": types.FieldSerial,
				"status":       "status",
			},
		},
		Rows: jharkhandRows,
	})
}

func jharkhandRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	tables.Each(func(_ int, table *goquery.Selection) {
		rows := extract.Rows(table)
		if len(rows) <= 1 {
			return
		}
		for i, row := range rows[1:] {
			cells := extract.Cells(row)
			if len(cells) < 2 {
				continue
			}

			courtNo := extract.CellText(cells[0])
			if courtNo == "" {
				continue
			}

			rec := b.Record()
			rec.Set(types.FieldCourt, courtNo)
			switch {
			case len(cells) == 2:
				rec.Set("status", extract.CellText(cells[1]))
			case len(cells) >= 4:
				rec.Set(types.FieldSerial, extract.CellText(cells[1]))
				rec.Set(types.FieldCase, extract.CellText(cells[2]))
				rec.Set("status", extract.CellText(cells[3]))
			default:
				b.SkipRow(i+1, "unexpected cell count")
				continue
			}
			records = append(records, rec)
		}
	})
	return records, nil
}
