package report

import (
	"math"

	"github.com/retailmetrics/returnsight/pkg/models"
)

// ComputeSummary aggregates the headline statistics directly from the
// table. Ties resolve to the first category in vocabulary order and to
// the smallest hour.
func ComputeSummary(t *models.ReturnTable) models.Summary {
	if t.Len() == 0 {
		return models.Summary{}
	}

	var total float64
	var daysSum int
	catCounts := make(map[string]int, len(models.Categories))
	var hourCounts [24]int

	for _, r := range t.Records {
		total += r.RefundAmount
		daysSum += r.ProcessingDays
		catCounts[r.Category]++
		hourCounts[r.Hour()]++
	}

	top := ""
	best := -1
	for _, w := range models.Categories {
		if c := catCounts[w.Value]; c > best {
			top = w.Value
			best = c
		}
	}

	peak := 0
	for h := 1; h < 24; h++ {
		if hourCounts[h] > hourCounts[peak] {
			peak = h
		}
	}

	return models.Summary{
		TotalRefund:       math.Round(total*100) / 100,
		TopCategory:       top,
		PeakHour:          peak,
		AvgProcessingDays: float64(daysSum) / float64(t.Len()),
	}
}

// Breakdown is one vocabulary slice of the table.
type Breakdown struct {
	Label  string
	Count  int
	Share  float64 // fraction of all records
	Refund float64 // summed refund value
}

// CategoryBreakdown tallies records per category in vocabulary order.
func CategoryBreakdown(t *models.ReturnTable) []Breakdown {
	return breakdownBy(t, models.Categories.Values(), func(r models.ReturnRecord) string {
		return r.Category
	})
}

// ReasonBreakdown tallies records per return reason in vocabulary order.
func ReasonBreakdown(t *models.ReturnTable) []Breakdown {
	return breakdownBy(t, models.Reasons.Values(), func(r models.ReturnRecord) string {
		return r.Reason
	})
}

// RegionBreakdown tallies records per region in vocabulary order.
func RegionBreakdown(t *models.ReturnTable) []Breakdown {
	return breakdownBy(t, models.Regions, func(r models.ReturnRecord) string {
		return r.Region
	})
}

func breakdownBy(t *models.ReturnTable, labels []string, key func(models.ReturnRecord) string) []Breakdown {
	index := make(map[string]int, len(labels))
	out := make([]Breakdown, len(labels))
	for i, label := range labels {
		index[label] = i
		out[i].Label = label
	}

	for _, r := range t.Records {
		i := index[key(r)]
		out[i].Count++
		out[i].Refund += r.RefundAmount
	}

	n := t.Len()
	for i := range out {
		if n > 0 {
			out[i].Share = float64(out[i].Count) / float64(n)
		}
		out[i].Refund = math.Round(out[i].Refund*100) / 100
	}
	return out
}
