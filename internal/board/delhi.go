package board

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Delhi High Court physical display board. One row per court:
// Court | Item No. | Hon'ble Judges | Case No. | Title | VC Link.
// Empty courtrooms carry "*" as the item number.

func init() {
	register(&Site{
		Key:          "delhi",
		Description:  "Delhi High Court physical display board",
		Bench:        "New Delhi",
		URL:          "https://delhihighcourt.nic.in/app/physical-display-board",
		WaitSelector: "#physical_display_board",
		SettleDelay:  3e9,
		Setup: []Interaction{
			// The DataTables widget defaults to 10 rows per page; every court
			// only fits at 100.
			{Kind: InteractSelect, Selector: `select[name="physical_display_board_length"]`, Value: "100"},
		},
		Columns: []string{
			types.FieldCourt, types.FieldSerialNumeric, types.FieldJudge,
			types.FieldCaseNumeric, types.FieldCase, "title",
			types.FieldPetitioner, types.FieldRespondent, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCaseNumeric,
				"serialNumber": types.FieldSerialNumeric,
				"judgeName":    types.FieldJudge,
				"petitioner":   types.FieldPetitioner,
				"respondent":   types.FieldRespondent,
				"stage":        "title",
				"listNumber":   "",
			},
		},
		Rows: delhiRows,
	})
}

func delhiRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "#physical_display_board")
	if table == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for i, row := range extract.Rows(table) {
		cells := extract.Cells(row)
		if len(cells) < 5 {
			continue
		}

		itemFull := extract.CellText(cells[1])
		caseFull := extract.CellText(cells[3])
		// "*" marks an empty slot, not a sitting court.
		if itemFull == "*" || caseFull == "" {
			b.SkipRow(i+1, "empty slot")
			continue
		}

		title := extract.CellText(cells[4])
		petitioner, respondent := extract.SplitCauseTitle(title)

		rec := b.Record()
		rec.Set(types.FieldCourt, extract.CellText(cells[0]))
		rec.Set(types.FieldSerial, itemFull)
		rec.Set(types.FieldSerialNumeric, extract.ItemNumberNumeric(itemFull))
		rec.Set(types.FieldJudge, extract.CellText(cells[2]))
		rec.Set(types.FieldCase, caseFull)
		rec.Set(types.FieldCaseNumeric, extract.CaseNumberNumeric(caseFull, extract.DashSlash))
		rec.Set("title", title)
		rec.Set(types.FieldPetitioner, petitioner)
		rec.Set(types.FieldRespondent, respondent)
		records = append(records, rec)
	}
	return records, nil
}
