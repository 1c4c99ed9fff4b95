package board

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Kerala High Court smart TV board. A 9x8 grid where every row holds four
// courts as Court No | Item Number pairs, all rendered as th cells. Idle
// courts show "----" for the item.

func init() {
	register(&Site{
		Key:          "kerala",
		Description:  "Kerala High Court display board",
		Bench:        "Kochi",
		URL:          "https://ecourt.keralacourts.in/digicourt/Courtdisplay/smarttvdat",
		WaitSelector: "table.table.table-bordered",
		SettleDelay:  3e9,
		Columns: []string{
			types.FieldCourt, types.FieldSerial, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   "",
				"serialNumber": types.FieldSerial,
				"stage":        "",
				"listNumber":   "",
			},
		},
		Rows: keralaRows,
	})
}

func keralaRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "table.table.table-bordered")
	if table == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for i, row := range extract.Rows(table) {
		cells := extract.Cells(row)
		if len(cells) < 8 {
			b.SkipRow(i+1, "short row")
			continue
		}

		for court := 0; court < 4; court++ {
			courtNo := extract.CellText(cells[court*2])
			if courtNo == "" {
				continue
			}
			rec := b.Record()
			rec.Set(types.FieldCourt, courtNo)
			rec.Set(types.FieldSerial, extract.CellText(cells[court*2+1]))
			records = append(records, rec)
		}
	}
	return records, nil
}
