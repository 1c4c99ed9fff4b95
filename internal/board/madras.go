package board

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/courtlivestream/boardwatch/internal/extract"
	"github.com/courtlivestream/boardwatch/internal/types"
)

// Madras High Court detailed display board. The page is a grid of court boxes
// rather than a table, so extraction splits the page text into per-court
// sections on the "Court No :" label and pattern-matches each section.

var (
	madrasCourtSplitRe = regexp.MustCompile(`Court No\s*:`)
	madrasCourtNoRe    = regexp.MustCompile(`^\s*(\d+)`)
	madrasItemRe       = regexp.MustCompile(`Item No\s*:\s*([\d/L]+)`)
	madrasCaseRe       = regexp.MustCompile(`(?i)((?:WP|CRL|SA|OP|WRIT|MA|CS|OSA|COC)[.\s]*\d+/\d+)`)
	madrasBareCaseRe   = regexp.MustCompile(`(\d+/\d+)`)
	madrasSpaceRe      = regexp.MustCompile(`\s+`)
)

func init() {
	register(&Site{
		Key:          "madras",
		Description:  "Madras High Court display board",
		Bench:        "Chennai",
		URL:          "https://hcmadras.tn.gov.in/display_board_mhc.php",
		WaitSelector: "body",
		SettleDelay:  5e9,
		Columns: []string{
			"bench", types.FieldCourt, types.FieldSerial,
			types.FieldCaseNumeric, types.FieldCase, types.FieldScrapeDateTime,
		},
		Payload: PayloadMapping{
			Fields: map[string]string{
				"caseNumber":   types.FieldCaseNumeric,
				"serialNumber": types.FieldSerial,
				"stage":        types.FieldCase,
				"listNumber":   "",
			},
		},
		Rows: madrasRows,
	})
}

func madrasRows(doc *goquery.Document, b *Builder) ([]*types.DisplayRecord, error) {
	if len(doc.Nodes) == 0 {
		return nil, types.ErrNoTable
	}
	pageText := extract.NodeText(doc.Nodes[0])
	sections := madrasCourtSplitRe.Split(pageText, -1)
	if len(sections) < 2 {
		return nil, types.ErrNoTable
	}

	var records []*types.DisplayRecord
	for i, section := range sections[1:] {
		m := madrasCourtNoRe.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		courtNo := m[1]

		im := madrasItemRe.FindStringSubmatch(section)
		if im == nil {
			b.SkipRow(i+1, "no item number")
			continue
		}
		itemFull := strings.TrimSpace(im[1])

		cm := madrasCaseRe.FindStringSubmatch(section)
		if cm == nil {
			cm = madrasBareCaseRe.FindStringSubmatch(section)
		}
		if cm == nil {
			b.SkipRow(i+1, "no case number")
			continue
		}
		caseFull := madrasSpaceRe.ReplaceAllString(cm[1], "")

		rec := b.Record()
		rec.Set(types.FieldCourt, courtNo)
		rec.Set(types.FieldSerial, extract.LeadingNumber(itemFull))
		rec.Set(types.FieldCase, caseFull)
		rec.Set(types.FieldCaseNumeric, extract.CaseNumberNumeric(caseFull, extract.DotSlash))
		records = append(records, rec)
	}
	return records, nil
}
