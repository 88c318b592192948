// Package report assembles the returns analysis report: chart option
// documents, summary statistics, a styled self-contained HTML document,
// and a plain-text preview for the console.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"strconv"

	"github.com/retailmetrics/returnsight/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Chart Fragments — option documents for the browser-side renderer
// ════════════════════════════════════════════════════════════════════

// Fixed DOM element ids. The HTML template, the init script and the
// inspector all key on these.
const (
	TreemapChartID = "returns-treemap"
	FacetChartID   = "returns-facets"
	HeatmapChartID = "returns-heatmap"
)

// Fragment is one chart ready for embedding: a DOM element id, a section
// title, and the marshaled option document the renderer consumes.
type Fragment struct {
	ID     string
	Title  string
	Option template.JS
}

// categoryPalette colors scatter points and legend chips, indexed by
// vocabulary order.
var categoryPalette = []string{
	"#5470c6", // Electronics
	"#91cc75", // Clothing
	"#fac858", // Home & Garden
	"#ee6666", // Beauty
	"#73c0de", // Sports
	"#3ba272", // Books
}

// heatScale is the shared blue ramp used by the treemap and the heatmap.
var heatScale = []string{"#e0f3f8", "#74add1", "#4575b4"}

// weekdayOrder fixes the heatmap row order, Monday first.
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

type itemStyle struct {
	Color string `json:"color,omitempty"`
}

// ════════════════════════════════════════════════════════════════════
// Treemap — refund value by category, reason and region
// ════════════════════════════════════════════════════════════════════

// treeNode is one treemap node. Value carries the summed refund dollars.
type treeNode struct {
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	ItemStyle *itemStyle `json:"itemStyle,omitempty"`
	Children  []treeNode `json:"children,omitempty"`
}

// TreemapFragment groups refund value by category, then reason, then
// region. Node order follows vocabulary order at every depth; every
// node is shaded on the shared blue scale by its share of the largest
// category total.
func TreemapFragment(t *models.ReturnTable) (Fragment, error) {
	option := map[string]any{
		"tooltip": map[string]any{"formatter": "{b}: ${c}"},
		"series": []any{
			map[string]any{
				"type":       "treemap",
				"name":       "All Returns",
				"data":       treemapData(t),
				"roam":       false,
				"breadcrumb": map[string]any{"show": true},
				"label":      map[string]any{"show": true, "formatter": "{b}"},
				"upperLabel": map[string]any{"show": true, "height": 22},
				"levels": []any{
					map[string]any{"itemStyle": map[string]any{"borderColor": "#ffffff", "borderWidth": 2, "gapWidth": 2}},
					map[string]any{"itemStyle": map[string]any{"borderColor": "#f3f4f6", "borderWidth": 1, "gapWidth": 1}},
					map[string]any{"itemStyle": map[string]any{"gapWidth": 1}},
				},
			},
		},
	}
	return buildFragment(TreemapChartID, "Refund Value by Category, Reason and Region", option)
}

func treemapData(t *models.ReturnTable) []treeNode {
	cats := models.Categories.Values()
	reasons := models.Reasons.Values()
	regions := models.Regions

	catIdx := indexOf(cats)
	reasonIdx := indexOf(reasons)
	regionIdx := indexOf(regions)

	sums := make([][][]float64, len(cats))
	for ci := range sums {
		sums[ci] = make([][]float64, len(reasons))
		for ri := range sums[ci] {
			sums[ci][ri] = make([]float64, len(regions))
		}
	}
	for _, r := range t.Records {
		sums[catIdx[r.Category]][reasonIdx[r.Reason]][regionIdx[r.Region]] += r.RefundAmount
	}

	catTotals := make([]float64, len(cats))
	maxTotal := 0.0
	for ci := range cats {
		for ri := range reasons {
			for gi := range regions {
				catTotals[ci] += sums[ci][ri][gi]
			}
		}
		if catTotals[ci] > maxTotal {
			maxTotal = catTotals[ci]
		}
	}
	if maxTotal == 0 {
		return nil
	}

	nodes := make([]treeNode, 0, len(cats))
	for ci, cat := range cats {
		if catTotals[ci] == 0 {
			continue
		}
		node := treeNode{
			Name:      cat,
			Value:     round2(catTotals[ci]),
			ItemStyle: &itemStyle{Color: scaleColor(catTotals[ci] / maxTotal)},
		}
		for ri, reason := range reasons {
			reasonTotal := 0.0
			for gi := range regions {
				reasonTotal += sums[ci][ri][gi]
			}
			if reasonTotal == 0 {
				continue
			}
			child := treeNode{
				Name:      reason,
				Value:     round2(reasonTotal),
				ItemStyle: &itemStyle{Color: scaleColor(reasonTotal / maxTotal)},
			}
			for gi, region := range regions {
				if s := sums[ci][ri][gi]; s > 0 {
					child.Children = append(child.Children, treeNode{
						Name:      region,
						Value:     round2(s),
						ItemStyle: &itemStyle{Color: scaleColor(s / maxTotal)},
					})
				}
			}
			node.Children = append(node.Children, child)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ════════════════════════════════════════════════════════════════════
// Facet Grid — refund vs processing time, region columns × reason rows
// ════════════════════════════════════════════════════════════════════

// Facet grid layout in percent of the chart element.
const (
	facetLeft   = 5.0
	facetRight  = 13.0 // row labels live in the right margin
	facetTop    = 7.0
	facetBottom = 7.0
	facetHGap   = 1.6
	facetVGap   = 2.2
)

// scatterPoint is one return: x processing days, y refund dollars.
// Size encodes the rating, color the category.
type scatterPoint struct {
	Value      [2]float64 `json:"value"`
	SymbolSize int        `json:"symbolSize"`
	ItemStyle  itemStyle  `json:"itemStyle"`
}

// FacetGridFragment lays out one sub-plot per (region, reason) pair in a
// single chart element: region columns, reason rows, shared axis ranges.
// Pairs with no records contribute no series and their cell stays empty.
func FacetGridFragment(t *models.ReturnTable) (Fragment, error) {
	reasons := models.Reasons.Values()
	regions := models.Regions
	cols := len(regions)
	rows := len(reasons)

	catIdx := indexOf(models.Categories.Values())
	reasonIdx := indexOf(reasons)
	regionIdx := indexOf(regions)

	// Shared y range across every cell, rounded up to the next $50.
	maxRefund := 0.0
	for _, r := range t.Records {
		if r.RefundAmount > maxRefund {
			maxRefund = r.RefundAmount
		}
	}
	yMax := math.Ceil(maxRefund/50) * 50
	if yMax == 0 {
		yMax = 50
	}

	cellPoints := make([][]scatterPoint, rows*cols)
	for _, r := range t.Records {
		cell := reasonIdx[r.Reason]*cols + regionIdx[r.Region]
		cellPoints[cell] = append(cellPoints[cell], scatterPoint{
			Value:      [2]float64{float64(r.ProcessingDays), r.RefundAmount},
			SymbolSize: 4 + 2*r.Rating,
			ItemStyle:  itemStyle{Color: categoryPalette[catIdx[r.Category]]},
		})
	}

	colW := (100 - facetLeft - facetRight - facetHGap*float64(cols-1)) / float64(cols)
	rowH := (100 - facetTop - facetBottom - facetVGap*float64(rows-1)) / float64(rows)

	titles := make([]any, 0, cols+rows)
	for c, region := range regions {
		left := facetLeft + float64(c)*(colW+facetHGap)
		titles = append(titles, map[string]any{
			"text":      region,
			"left":      pct(left + colW/2),
			"top":       "2.8%",
			"textAlign": "center",
			"textStyle": map[string]any{"fontSize": 12, "fontWeight": "bold", "color": "#374151"},
		})
	}
	for r, reason := range reasons {
		top := facetTop + float64(r)*(rowH+facetVGap)
		titles = append(titles, map[string]any{
			"text":      reason,
			"left":      pct(100 - facetRight + 0.8),
			"top":       pct(top + rowH/2 - 1.2),
			"textStyle": map[string]any{"fontSize": 10, "fontWeight": "normal", "color": "#6b7280"},
		})
	}

	grids := make([]any, 0, rows*cols)
	xAxes := make([]any, 0, rows*cols)
	yAxes := make([]any, 0, rows*cols)
	series := make([]any, 0, rows*cols)
	for r, reason := range reasons {
		for c, region := range regions {
			cell := r*cols + c
			grids = append(grids, map[string]any{
				"left":   pct(facetLeft + float64(c)*(colW+facetHGap)),
				"top":    pct(facetTop + float64(r)*(rowH+facetVGap)),
				"width":  pct(colW),
				"height": pct(rowH),
			})
			xAxes = append(xAxes, map[string]any{
				"type":      "value",
				"gridIndex": cell,
				"min":       0,
				"max":       21,
				"axisLabel": map[string]any{"show": r == rows-1, "fontSize": 9},
				"axisTick":  map[string]any{"show": false},
				"splitLine": map[string]any{"show": false},
				"axisLine":  map[string]any{"lineStyle": map[string]any{"color": "#cbd5e1"}},
			})
			yAxes = append(yAxes, map[string]any{
				"type":      "value",
				"gridIndex": cell,
				"min":       0,
				"max":       yMax,
				"axisLabel": map[string]any{"show": c == 0, "fontSize": 9},
				"axisTick":  map[string]any{"show": false},
				"splitLine": map[string]any{"show": false},
				"axisLine":  map[string]any{"lineStyle": map[string]any{"color": "#cbd5e1"}},
			})
			if points := cellPoints[cell]; len(points) > 0 {
				series = append(series, map[string]any{
					"type":       "scatter",
					"name":       region + " · " + reason,
					"xAxisIndex": cell,
					"yAxisIndex": cell,
					"data":       points,
				})
			}
		}
	}

	option := map[string]any{
		"tooltip": map[string]any{"trigger": "item"},
		"title":   titles,
		"grid":    grids,
		"xAxis":   xAxes,
		"yAxis":   yAxes,
		"series":  series,
	}
	return buildFragment(FacetChartID, "Refund vs Processing Time by Region and Reason", option)
}

// ════════════════════════════════════════════════════════════════════
// Heatmap — return volume by weekday and hour
// ════════════════════════════════════════════════════════════════════

// HeatmapFragment counts returns per (weekday, hour) cell. Rows run
// Monday to Sunday top-down, columns hour 0 to 23. Every cell appears,
// including zero-count ones.
func HeatmapFragment(t *models.ReturnTable) (Fragment, error) {
	var counts [7][24]int
	for _, r := range t.Records {
		day := (int(r.ReturnedAt.Weekday()) + 6) % 7 // Monday first
		counts[day][r.Hour()]++
	}

	maxCount := 0
	data := make([]any, 0, 7*24)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			c := counts[day][hour]
			if c > maxCount {
				maxCount = c
			}
			data = append(data, []int{hour, day, c})
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	hours := make([]string, 24)
	for h := range hours {
		hours[h] = strconv.Itoa(h)
	}

	option := map[string]any{
		"tooltip": map[string]any{"position": "top"},
		"grid":    map[string]any{"left": "10%", "right": "4%", "top": "4%", "bottom": "18%"},
		"xAxis": map[string]any{
			"type":         "category",
			"data":         hours,
			"name":         "hour of day",
			"nameLocation": "middle",
			"nameGap":      28,
			"splitArea":    map[string]any{"show": true},
		},
		"yAxis": map[string]any{
			"type":      "category",
			"data":      weekdayOrder,
			"inverse":   true,
			"splitArea": map[string]any{"show": true},
		},
		"visualMap": map[string]any{
			"min":        0,
			"max":        maxCount,
			"calculable": true,
			"orient":     "horizontal",
			"left":       "center",
			"bottom":     "0%",
			"inRange":    map[string]any{"color": heatScale},
		},
		"series": []any{
			map[string]any{
				"type":  "heatmap",
				"name":  "Returns",
				"data":  data,
				"label": map[string]any{"show": true, "fontSize": 9},
				"emphasis": map[string]any{
					"itemStyle": map[string]any{"shadowBlur": 6, "shadowColor": "rgba(0, 0, 0, 0.4)"},
				},
			},
		},
	}
	return buildFragment(HeatmapChartID, "Return Volume by Weekday and Hour", option)
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

// buildFragment marshals an option document for direct embedding in the
// report's script block. Options are built from structs and maps only,
// so equal tables always marshal to equal bytes.
func buildFragment(id, title string, option any) (Fragment, error) {
	b, err := json.Marshal(option)
	if err != nil {
		return Fragment{}, fmt.Errorf("marshal %s option: %w", id, err)
	}
	return Fragment{ID: id, Title: title, Option: template.JS(b)}, nil
}

// scaleColor interpolates across the blue ramp. t is clamped to [0, 1].
func scaleColor(t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if t <= 0.5 {
		return lerpColor(heatScale[0], heatScale[1], t*2)
	}
	return lerpColor(heatScale[1], heatScale[2], (t-0.5)*2)
}

func lerpColor(from, to string, t float64) string {
	fr, fg, fb := hexRGB(from)
	tr, tg, tb := hexRGB(to)
	lerp := func(a, b int) int {
		return a + int(math.Round(t*float64(b-a)))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(fr, tr), lerp(fg, tg), lerp(fb, tb))
}

func hexRGB(hex string) (r, g, b int) {
	if len(hex) != 7 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseInt(hex[1:3], 16, 32)
	gv, _ := strconv.ParseInt(hex[3:5], 16, 32)
	bv, _ := strconv.ParseInt(hex[5:7], 16, 32)
	return int(rv), int(gv), int(bv)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func indexOf(values []string) map[string]int {
	m := make(map[string]int, len(values))
	for i, v := range values {
		m[v] = i
	}
	return m
}
