package board

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Chhattisgarh High Court display board. One court spans several rows via a
// rowspan on its Court cell, so later rows arrive shifted one column left and
// the court carries forward. Single-cell marquee rows are decoration.

var chattisgarhCaseRe = regexp.MustCompile(`^([A-Z]+(?:\([A-Z]+\))?)\s*/\s*(\d+)\s*/\s*(\d{4})`)

func init() {
	register(&Site{
		Key:          "chattisgarh",
		Description:  "Chhattisgarh High Court display board",
		Bench:        "Bilaspur",
		URL:          "https://highcourt.cg.gov.in/hcbspcourtview/court1.php",
		WaitSelector: "#tb1",
		SettleDelay:  5e9,
		Columns: []string{
			types.FieldCourt, types.FieldList, "round", types.FieldSerial,
			"case_numeric", "case_type", "case_year", types.FieldCase,
			types.FieldStage, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   "stage_numeric",
				"serialNumber": "case_serial",
				"stage":        types.FieldStage,
				"listNumber":   types.FieldList,
			},
		},
		Rows: chattisgarhRows,
	})
}

func chattisgarhRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableByXPath(doc, `//table[@id="tb1"]`)
	if table == nil {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	currentCourt := ""
	for _, row := range extract.Rows(table) {
		cells := extract.Cells(row)
		if len(cells) == 1 {
			// Marquee row.
			continue
		}
		if len(cells) < 5 {
			continue
		}

		var listType, round, sno, caseFull, purpose string
		if extract.HasAttr(cells[0], "rowspan") {
			currentCourt = extract.CellText(cells[0])
			listType = extract.CellText(cells[1])
			round = extract.CellText(cells[2])
			sno = extract.CellText(cells[3])
			caseFull = extract.CellText(cells[4])
			if len(cells) > 5 {
				purpose = extract.CellText(cells[5])
			}
		} else {
			// Continuation row, the court column was absorbed by a rowspan.
			listType = extract.CellText(cells[0])
			round = extract.CellText(cells[1])
			sno = extract.CellText(cells[2])
			caseFull = extract.CellText(cells[3])
			if len(cells) > 4 {
				purpose = extract.CellText(cells[4])
			}
		}

		caseNumber, caseType, caseYear := "", "", ""
		if m := chattisgarhCaseRe.FindStringSubmatch(caseFull); m != nil {
			caseType, caseNumber, caseYear = m[1], m[2], m[3]
		} else if m := extract.SlashSlash.FindStringSubmatch(caseFull); m != nil {
			caseNumber = m[1]
		}

		rec := b.Record()
		rec.Set(types.FieldCourt, currentCourt)
		rec.Set(types.FieldList, listType)
		rec.Set("round", round)
		rec.Set(types.FieldSerial, sno)
		rec.Set("case_numeric", caseNumber)
		rec.Set("case_type", caseType)
		rec.Set("case_year", caseYear)
		rec.Set(types.FieldCase, caseFull)
		rec.Set(types.FieldStage, purpose)
		rec.Set("stage_numeric", extract.CaseNumberNumeric(purpose, extract.SlashSlash))
		rec.Set("case_serial", extract.CaseNumberNumeric(caseFull))
		records = append(records, rec)
	}
	return records, nil
}
