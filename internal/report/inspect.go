package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ════════════════════════════════════════════════════════════════════
// Report Inspector — Verifies an emitted report document
// ════════════════════════════════════════════════════════════════════

var recordCountRE = regexp.MustCompile(`([\d,]+) synthetic return records`)

// Inspection is what the inspector recovered from a report document.
type Inspection struct {
	Title         string   // page <title>
	Charts        []string // chart element ids found, in display order
	MissingCharts []string // expected chart ids not found
	HasSummary    bool     // summary-card grid present
	RecordCount   int      // record count parsed from the subtitle, 0 if absent
}

// Complete returns true if every expected chart element is present.
func (in *Inspection) Complete() bool {
	return len(in.MissingCharts) == 0
}

// Inspect parses a report document and checks it for the expected
// structure. It inspects markup only; whether the charts actually
// render is up to a browser.
func Inspect(r io.Reader) (*Inspection, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}

	in := &Inspection{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	for _, id := range []string{TreemapChartID, FacetChartID, HeatmapChartID} {
		if doc.Find("#"+id).Length() > 0 {
			in.Charts = append(in.Charts, id)
		} else {
			in.MissingCharts = append(in.MissingCharts, id)
		}
	}

	in.HasSummary = doc.Find(".summary-grid").Length() > 0

	subtitle := strings.TrimSpace(doc.Find(".subtitle").First().Text())
	if m := recordCountRE.FindStringSubmatch(subtitle); m != nil {
		raw := strings.ReplaceAll(m[1], ",", "")
		if n, err := strconv.Atoi(raw); err == nil {
			in.RecordCount = n
		}
	}

	return in, nil
}

// InspectFile reads a report from disk and inspects it.
func InspectFile(path string) (*Inspection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return Inspect(bytes.NewReader(data))
}
