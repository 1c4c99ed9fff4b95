package board

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Karnataka High Court bench display board, Dharwad bench. The page stacks
// one data table per bench, all sharing the "CH No." header; Dharwad is the
// third. Every row is kept, including "No Session" and empty courts.
// Columns: CH No. | List No. | Sl. No. | Case No. | Stage.

func init() {
	register(&Site{
		Key:          "dharwad",
		Description:  "Karnataka High Court Dharwad bench display board",
		Bench:        "dharwad",
		SubBench:     "23",
		URL:          "https://judiciary.karnataka.gov.in/display_board_bench.php",
		WaitSelector: "table",
		SettleDelay:  5e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldList,
			types.FieldSerial, types.FieldCase, types.FieldStage,
			types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCase,
				"serialNumber": types.FieldSerial,
				"stage":        types.FieldStage,
				"listNumber":   types.FieldList,
			},
		},
		Rows: dharwadRows,
	})
}

func dharwadRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	tables := extract.TablesByMarker(doc, "CH No")
	if len(tables) < 3 {
		return nil, types.ErrNoTable
	}
	table := tables[2]

	rows := extract.Rows(table)
	if len(rows) == 0 {
		return nil, types.ErrTableEmpty
	}

	var records []*types.DisplayRecord
	for i, row := range rows[1:] {
		cells := extract.Cells(row)
		if len(cells) < 5 {
			b.SkipRow(i+1, "short row")
			continue
		}

		rec := b.Record()
		rec.Set(types.FieldCourt, extract.CellText(cells[0]))
		rec.Set(types.FieldList, extract.CellText(cells[1]))
		rec.Set(types.FieldSerial, extract.CellText(cells[2]))
		rec.Set(types.FieldCase, extract.CellText(cells[3]))
		rec.Set(types.FieldStage, extract.CellText(cells[4]))
		records = append(records, rec)
	}
	return records, nil
}
