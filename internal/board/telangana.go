package board

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Telangana High Court display board. Rows pack several courts as groups of
// Court No (a court-view link) | Running Item | Case No | Passed Over. A
// court whose session has ended merges the trailing cells into the running
// item column, so group decoding keys off the court link rather than fixed
// strides. All courts are kept, including "NS" and ended sessions.

var telanganaCourtLinkRe = regexp.MustCompile(`court=(\d+)`)

func init() {
	register(&Site{
		Key:          "telangana",
		Description:  "Telangana High Court display board",
		Bench:        "hyderabad",
		SubBench:     "39",
		URL:          "https://displayboard.tshc.gov.in/hcdbs/displayall",
		WaitSelector: "table",
		SettleDelay:  5e9,
		Columns: []string{
			"bench", "sub_bench", types.FieldCourt, types.FieldSerial,
			types.FieldCase, "passed_over", types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":      types.FieldCase,
				"serialNumber":    types.FieldSerial,
				"passedOverCases": "passed_over",
			},
		},
		Rows: telanganaRows,
	})
}

func telanganaRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	table := extract.TableBySelector(doc, "table")
	if table == nil {
		return nil, types.ErrNoTable
	}

	rows := extract.Rows(table)
	if len(rows) == 0 {
		return nil, types.ErrTableEmpty
	}

	var records []*types.DisplayRecord
	for _, row := range rows[1:] {
		cells := extract.Cells(row)
		if len(cells) < 4 {
			continue
		}

		for idx := 0; idx < len(cells); {
			lm := telanganaCourtLinkRe.FindStringSubmatch(extract.CellHTML(cells[idx]))
			if lm == nil {
				idx++
				continue
			}

			courtNo := extract.CellText(cells[idx])
			if courtNo == "" {
				courtNo = "Court " + lm[1]
			}

			runningItem, caseNo, passedOver := "", "", ""
			consumed := 1
			if idx+1 < len(cells) {
				runningItem = extract.CellText(cells[idx+1])
				consumed = 2
				if strings.Contains(runningItem, "Court Session Ended") {
					// The status may span the case and passed-over columns,
					// or they may still be present as separate cells.
					if idx+2 < len(cells) && telanganaCourtLinkRe.FindString(extract.CellHTML(cells[idx+2])) == "" {
						if idx+3 < len(cells) {
							caseNo = extract.CellText(cells[idx+2])
							passedOver = extract.CellText(cells[idx+3])
							consumed = 4
						}
					}
				} else {
					if idx+2 < len(cells) {
						caseNo = extract.CellText(cells[idx+2])
					}
					if idx+3 < len(cells) {
						passedOver = extract.CellText(cells[idx+3])
					}
					consumed = 4
				}
			}

			rec := b.Record()
			rec.Set(types.FieldCourt, courtNo)
			rec.Set(types.FieldSerial, runningItem)
			rec.Set(types.FieldCase, caseNo)
			rec.Set("passed_over", passedOver)
			records = append(records, rec)

			idx += consumed
		}
	}
	return records, nil
}
