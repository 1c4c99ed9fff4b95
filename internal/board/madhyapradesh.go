package board

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Madhya Pradesh High Court online display board, one registration per bench.
// The page starts empty; picking a bench in the city dropdown loads the
// board, so the fetcher polls until data rows exist. Data rows carry the
// "record" class and hold Court No. | ... | Sr. No. | Case No. | Petitioner |
// Respondent | Court Message, with the court number nested in a
// <strong><font> pair.

const mpPopulateJS = `() => document.querySelectorAll('table.board_id tr.record').length > 0`

func init() {
	register(&Site{
		Key:          "jabalpur",
		Description:  "Madhya Pradesh High Court Jabalpur bench display board",
		Bench:        "jabalpur",
		SubBench:     "26",
		URL:          "https://mphc.gov.in/online-display-board",
		WaitSelector: "#my_city",
		PopulateJS:   mpPopulateJS,
		SettleDelay:  3e9,
		Setup: []Interaction{
			{Kind: InteractSelect, Selector: "#my_city", Value: "01"},
		},
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldSerial,
			types.FieldCase, types.FieldPetitioner, types.FieldRespondent,
			"court_message", types.FieldScrapeDateTime,
		},
		Payload: mpPayload(),
		Rows:    mpRows,
	})

	register(&Site{
		Key:          "gwalior",
		Description:  "Madhya Pradesh High Court Gwalior bench display board",
		Bench:        "gwalior",
		URL:          "https://mphc.gov.in/online-display-board",
		WaitSelector: "#my_city",
		PopulateJS:   mpPopulateJS,
		SettleDelay:  3e9,
		Setup: []Interaction{
			{Kind: InteractSelect, Selector: "#my_city", Value: "03"},
		},
		Columns: []string{
			types.FieldCourt, types.FieldSerial, types.FieldCase,
			types.FieldPetitioner, types.FieldRespondent, "court_message",
			types.FieldScrapeDateTime,
		},
		Payload: mpPayload(),
		Rows:    mpRows,
	})
}

func mpPayload() PayloadMapping {
	return PayloadMapping{
		Fields: map[string]string{
			"caseNumber":   types.FieldCase,
			"serialNumber": types.FieldSerial,
			"petitioner":   types.FieldPetitioner,
			"respondent":   types.FieldRespondent,
		},
	}
}

func mpRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "table.board_id")
	if table == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for _, row := range extract.Rows(table) {
		if !row.HasClass("record") {
			continue
		}
		cells := extract.Cells(row)
		if len(cells) < 7 {
			continue
		}

		rec := b.Record()
		rec.Set(types.FieldCourt, mpCourtNumber(cells[0]))
		rec.Set(types.FieldSerial, extract.CellText(cells[3]))
		rec.Set(types.FieldCase, extract.CellText(cells[4]))
		rec.Set(types.FieldPetitioner, extract.CellText(cells[5]))
		rec.Set(types.FieldRespondent, extract.CellText(cells[6]))
		if len(cells) > 7 {
			rec.Set("court_message", extract.CellText(cells[7]))
		}
		records = append(records, rec)
	}
	return records, nil
}

// mpCourtNumber digs the bare court number out of the first cell, which
// renders it inside <strong><font> above the judge names.
func mpCourtNumber(cell *goquery.Selection) string {
	if nested := cell.Find("strong font").First(); nested.Length() > 0 {
		return extract.CleanText(nested.Text())
	}
	text := strings.TrimSpace(cell.Text())
	if line, _, found := strings.Cut(text, "\n"); found {
		return strings.TrimSpace(line)
	}
	return extract.CleanText(text)
}
