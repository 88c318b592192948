package report

// EChartsCDN is the script source the report loads its renderer from.
// The emitted document is otherwise self-contained.
const EChartsCDN = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ReportTemplate is the HTML template for the returns report.
// It is embedded as a Go constant — no external file dependencies.
// The document deliberately carries no generation timestamp so repeated
// runs stay byte-identical.
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<script src="` + EChartsCDN + `"></script>
<style>
  :root {
    --bg: #f6f7f9;
    --text: #1f2430;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #4575b4;
    --section-bg: #ffffff;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 1080px;
    margin: 0 auto;
    padding: 24px;
  }
  h1, h2 { font-weight: 600; }
  h1 { font-size: 1.6rem; margin-bottom: 4px; color: var(--accent); }
  h2 { font-size: 1.2rem; margin-bottom: 4px; }
  p { margin: 4px 0; }
  .muted { color: var(--muted); font-size: 0.85rem; }

  /* Header */
  .header {
    border-bottom: 3px solid var(--accent);
    padding-bottom: 14px;
    margin-bottom: 20px;
  }

  /* Summary cards */
  .summary-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 14px;
    margin-bottom: 24px;
  }
  .summary-card {
    background: var(--section-bg);
    border: 1px solid var(--border);
    border-radius: 8px;
    padding: 16px 18px;
  }
  .summary-card .label { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; letter-spacing: 0.04em; }
  .summary-card .value { font-size: 1.45rem; font-weight: 600; margin-top: 2px; }

  /* Chart sections */
  .section {
    background: var(--section-bg);
    border: 1px solid var(--border);
    border-radius: 8px;
    padding: 18px 20px;
    margin-bottom: 24px;
  }
  .chart { width: 100%; }
  #returns-treemap { height: 480px; }
  #returns-facets { height: 780px; }
  #returns-heatmap { height: 400px; }

  /* Category legend for the facet grid */
  .legend { display: flex; flex-wrap: wrap; gap: 14px; margin: 8px 0 4px; font-size: 0.85rem; }
  .legend-item { display: inline-flex; align-items: center; gap: 6px; color: var(--muted); }
  .legend-item .dot { width: 10px; height: 10px; border-radius: 50%; display: inline-block; }

  /* Footer */
  .footer {
    margin-top: 8px;
    padding-top: 14px;
    border-top: 2px solid var(--border);
    font-size: 0.8rem;
    color: var(--muted);
    text-align: center;
  }

  @media print {
    body { max-width: 100%; padding: 10px; }
    .section { page-break-inside: avoid; }
  }
</style>
</head>
<body>

<!-- ═══════ HEADER ═══════ -->
<div class="header">
  <h1>{{.Title}}</h1>
  <p class="subtitle muted">{{.RecordCount}} synthetic return records · {{.ColumnCount}} columns · {{.DateRange}}</p>
</div>

<!-- ═══════ SUMMARY ═══════ -->
{{if .HasSummary}}
<div class="summary-grid">
  <div class="summary-card">
    <div class="label">Total Refund Value</div>
    <div class="value">{{.TotalRefund}}</div>
  </div>
  <div class="summary-card">
    <div class="label">Top Return Category</div>
    <div class="value">{{.TopCategory}}</div>
  </div>
  <div class="summary-card">
    <div class="label">Peak Return Hour</div>
    <div class="value">{{.PeakHour}}</div>
  </div>
  <div class="summary-card">
    <div class="label">Avg Processing Time</div>
    <div class="value">{{.AvgProcessing}}</div>
  </div>
</div>
{{end}}

<!-- ═══════ TREEMAP ═══════ -->
{{if .HasTreemap}}
<div class="section">
  <h2>{{.Treemap.Title}}</h2>
  <p class="muted">Tile area is proportional to refund value. Click a category to drill into reasons and regions.</p>
  <div id="returns-treemap" class="chart"></div>
</div>
{{end}}

<!-- ═══════ FACET GRID ═══════ -->
{{if .HasFacets}}
<div class="section">
  <h2>{{.Facets.Title}}</h2>
  <p class="muted">Each cell plots processing days (x) against refund amount (y). Point size encodes the customer rating.</p>
  <div class="legend">
    {{range .Legend}}<span class="legend-item"><span class="dot" style="background: {{.Color}}"></span>{{.Label}}</span>{{end}}
  </div>
  <div id="returns-facets" class="chart"></div>
</div>
{{end}}

<!-- ═══════ HEATMAP ═══════ -->
{{if .HasHeatmap}}
<div class="section">
  <h2>{{.Heatmap.Title}}</h2>
  <p class="muted">Returns counted per weekday and hour of day across the full date range.</p>
  <div id="returns-heatmap" class="chart"></div>
</div>
{{end}}

<!-- ═══════ FOOTER ═══════ -->
<div class="footer">
  <p><strong>Note:</strong> All records in this report are synthetically generated for demonstration purposes.
  They do not describe real orders, customers or merchants.</p>
  <p>ReturnSight · seeded synthetic dataset · charts rendered with Apache ECharts</p>
</div>

<script>
var charts = [];
{{if .HasTreemap}}
var treemap = echarts.init(document.getElementById('returns-treemap'));
treemap.setOption({{.Treemap.Option}});
charts.push(treemap);
{{end}}
{{if .HasFacets}}
var facets = echarts.init(document.getElementById('returns-facets'));
facets.setOption({{.Facets.Option}});
charts.push(facets);
{{end}}
{{if .HasHeatmap}}
var heatmap = echarts.init(document.getElementById('returns-heatmap'));
heatmap.setOption({{.Heatmap.Option}});
charts.push(heatmap);
{{end}}
window.addEventListener('resize', function () {
  for (var i = 0; i < charts.length; i++) charts[i].resize();
});
</script>

</body>
</html>`
