package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/retailmetrics/returnsight/pkg/models"
	"github.com/retailmetrics/returnsight/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator — Orchestrates chart + template rendering
// ════════════════════════════════════════════════════════════════════

// ReportSection identifies a section to include/exclude.
type ReportSection string

const (
	SectionSummary ReportSection = "summary"
	SectionTreemap ReportSection = "treemap"
	SectionFacets  ReportSection = "facets"
	SectionHeatmap ReportSection = "heatmap"
)

// AllSections returns all report sections in display order.
func AllSections() []ReportSection {
	return []ReportSection{
		SectionSummary,
		SectionTreemap,
		SectionFacets,
		SectionHeatmap,
	}
}

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Title    string          // report title (default: "E-Commerce Returns Analysis")
	Sections []ReportSection // sections to include (default: all)
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Title:    "E-Commerce Returns Analysis",
		Sections: AllSections(),
	}
}

// hasSection returns true if the section is included in the config.
func (rc ReportConfig) hasSection(s ReportSection) bool {
	for _, sec := range rc.Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// ════════════════════════════════════════════════════════════════════
// Report Data — Flattened for template rendering
// ════════════════════════════════════════════════════════════════════

// ReportData is the template model passed to the HTML template.
// Everything a template touches is pre-formatted here; the template
// itself does no arithmetic.
type ReportData struct {
	// Header
	Title       string
	RecordCount string // formatted with thousands separators
	ColumnCount int
	DateRange   string // "Jan 1, 2023 to Mar 4, 2023"

	// Summary cards
	TotalRefund   string
	TopCategory   string
	PeakHour      string
	AvgProcessing string

	// Charts
	Treemap Fragment
	Facets  Fragment
	Heatmap Fragment
	Legend  []LegendEntry

	// Section visibility flags
	HasSummary bool
	HasTreemap bool
	HasFacets  bool
	HasHeatmap bool

	// Breakdown tables (text preview only)
	CategoryRows []BreakdownRow
	ReasonRows   []BreakdownRow
	RegionRows   []BreakdownRow
}

// LegendEntry pairs a category label with its chart color for the
// HTML legend chips.
type LegendEntry struct {
	Label string
	Color string
}

// BreakdownRow is a flattened, formatted breakdown line.
type BreakdownRow struct {
	Label  string
	Count  string
	Share  string
	Refund string
}

// ════════════════════════════════════════════════════════════════════
// Generate Report
// ════════════════════════════════════════════════════════════════════

// Generate renders the full HTML report for a return table.
// Output is a complete, self-contained document; rendering the same
// table twice yields byte-identical HTML.
func Generate(t *models.ReturnTable, cfg ReportConfig) (string, error) {
	if t == nil || t.Len() == 0 {
		return "", fmt.Errorf("return table is empty")
	}

	data, err := buildReportData(t, cfg)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// GenerateText renders a plain-text preview (terminal / CLI friendly).
// Unlike the HTML report this carries a generation timestamp; it is
// console output, not a reproducible artifact.
func GenerateText(t *models.ReturnTable, cfg ReportConfig) (string, error) {
	if t == nil || t.Len() == 0 {
		return "", fmt.Errorf("return table is empty")
	}

	data, err := buildReportData(t, cfg)
	if err != nil {
		return "", err
	}
	return renderTextReport(data), nil
}

// ════════════════════════════════════════════════════════════════════
// Internal — Build template data
// ════════════════════════════════════════════════════════════════════

func buildReportData(t *models.ReturnTable, cfg ReportConfig) (ReportData, error) {
	if cfg.Title == "" {
		cfg.Title = DefaultReportConfig().Title
	}
	if cfg.Sections == nil {
		cfg.Sections = AllSections()
	}

	first := t.Records[0].ReturnedAt
	last := t.Records[t.Len()-1].ReturnedAt

	data := ReportData{
		Title:       cfg.Title,
		RecordCount: utils.FormatCount(t.Len()),
		ColumnCount: len(t.Columns()),
		DateRange:   fmt.Sprintf("%s to %s", first.Format("Jan 2, 2006"), last.Format("Jan 2, 2006")),

		HasSummary: cfg.hasSection(SectionSummary),
		HasTreemap: cfg.hasSection(SectionTreemap),
		HasFacets:  cfg.hasSection(SectionFacets),
		HasHeatmap: cfg.hasSection(SectionHeatmap),
	}

	// Summary cards
	if data.HasSummary {
		s := ComputeSummary(t)
		data.TotalRefund = utils.FormatUSD(s.TotalRefund)
		data.TopCategory = s.TopCategory
		data.PeakHour = utils.FormatHour(s.PeakHour)
		data.AvgProcessing = utils.FormatDays(s.AvgProcessingDays)
	}

	// The chart builders are independent of each other; run them
	// concurrently. Each writes its own field, so no locking is needed.
	var g errgroup.Group
	if data.HasTreemap {
		g.Go(func() error {
			f, err := TreemapFragment(t)
			if err != nil {
				return fmt.Errorf("building treemap: %w", err)
			}
			data.Treemap = f
			return nil
		})
	}
	if data.HasFacets {
		data.Legend = buildLegend()
		g.Go(func() error {
			f, err := FacetGridFragment(t)
			if err != nil {
				return fmt.Errorf("building facet grid: %w", err)
			}
			data.Facets = f
			return nil
		})
	}
	if data.HasHeatmap {
		g.Go(func() error {
			f, err := HeatmapFragment(t)
			if err != nil {
				return fmt.Errorf("building heatmap: %w", err)
			}
			data.Heatmap = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReportData{}, err
	}

	// Breakdown tables for the text preview
	data.CategoryRows = flattenBreakdown(CategoryBreakdown(t))
	data.ReasonRows = flattenBreakdown(ReasonBreakdown(t))
	data.RegionRows = flattenBreakdown(RegionBreakdown(t))

	return data, nil
}

// buildLegend pairs each category with its facet-grid color, in enum
// order so the chips match the chart palette assignment.
func buildLegend() []LegendEntry {
	entries := make([]LegendEntry, len(models.Categories))
	for i, c := range models.Categories {
		entries[i] = LegendEntry{
			Label: c.Value,
			Color: categoryPalette[i%len(categoryPalette)],
		}
	}
	return entries
}

func flattenBreakdown(bs []Breakdown) []BreakdownRow {
	rows := make([]BreakdownRow, len(bs))
	for i, b := range bs {
		rows[i] = BreakdownRow{
			Label:  b.Label,
			Count:  utils.FormatCount(b.Count),
			Share:  utils.FormatPct(b.Share),
			Refund: utils.FormatUSDCompact(b.Refund),
		}
	}
	return rows
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Generated: %s\n", ReportTimestamp()))
	sb.WriteString(line + "\n\n")

	// Dataset overview
	sb.WriteString(fmt.Sprintf("  Records: %s | Columns: %d\n", d.RecordCount, d.ColumnCount))
	sb.WriteString(fmt.Sprintf("  Range: %s\n", d.DateRange))
	sb.WriteString(thinLine + "\n")

	// Summary stats
	if d.HasSummary {
		sb.WriteString("\n  ★ SUMMARY\n")
		sb.WriteString(fmt.Sprintf("  Total Refund Value:  %s\n", d.TotalRefund))
		sb.WriteString(fmt.Sprintf("  Top Return Category: %s\n", d.TopCategory))
		sb.WriteString(fmt.Sprintf("  Peak Return Hour:    %s\n", d.PeakHour))
		sb.WriteString(fmt.Sprintf("  Avg Processing Time: %s\n", d.AvgProcessing))
		sb.WriteString(thinLine + "\n")
	}

	// Breakdown tables
	writeBreakdown := func(title string, rows []BreakdownRow) {
		if len(rows) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n  ■ %s\n", title))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("    %-22s %8s  %7s  %10s\n", r.Label, r.Count, r.Share, r.Refund))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeBreakdown("BY CATEGORY", d.CategoryRows)
	writeBreakdown("BY REASON", d.ReasonRows)
	writeBreakdown("BY REGION", d.RegionRows)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  All records are synthetically generated for demonstration.\n")
	sb.WriteString("  They do not describe real orders, customers or merchants.\n")
	sb.WriteString(line + "\n")

	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Utility: Timestamp
// ════════════════════════════════════════════════════════════════════

// ReportTimestamp returns the current UTC time formatted for the text
// preview header. The saved HTML never includes it.
func ReportTimestamp() string {
	return time.Now().UTC().Format("02 Jan 2006, 15:04 MST")
}
