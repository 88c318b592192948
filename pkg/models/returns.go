// Package models defines the core data structures used throughout ReturnSight.
package models

import "time"

// ReturnRecord represents a single returned order in the synthetic dataset.
type ReturnRecord struct {
	OrderID        string    `json:"order_id"`        // e.g., "ORD-00042"
	Category       string    `json:"category"`        // e.g., "Electronics"
	Reason         string    `json:"reason"`          // e.g., "Wrong Size"
	ReturnedAt     time.Time `json:"returned_at"`     // UTC, hourly cadence from the start date
	Region         string    `json:"region"`          // e.g., "Asia Pacific"
	RefundAmount   float64   `json:"refund_amount"`   // USD, rounded to cents, always > 0
	CustomerAge    int       `json:"customer_age"`    // nearest-integer normal draw, not clamped
	Rating         int       `json:"rating"`          // 1 (worst) to 5 (best)
	ProcessingDays int       `json:"processing_days"` // days from receipt to refund, 1-20
}

// Month returns the full month name ("January") derived from ReturnedAt.
func (r ReturnRecord) Month() string {
	return r.ReturnedAt.Month().String()
}

// Weekday returns the full weekday name ("Monday") derived from ReturnedAt.
func (r ReturnRecord) Weekday() string {
	return r.ReturnedAt.Weekday().String()
}

// Hour returns the hour of day (0-23) derived from ReturnedAt.
func (r ReturnRecord) Hour() int {
	return r.ReturnedAt.Hour()
}

// WeightedValue pairs a vocabulary entry with its draw probability.
type WeightedValue struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// Vocabulary is an ordered list of weighted draw values. Declaration order
// is the display order everywhere a vocabulary is iterated.
type Vocabulary []WeightedValue

// Values returns the vocabulary entries in declaration order.
func (v Vocabulary) Values() []string {
	out := make([]string, len(v))
	for i, w := range v {
		out[i] = w.Value
	}
	return out
}

// Categories lists the product categories. Weights sum to 1.
var Categories = Vocabulary{
	{Value: "Electronics", Weight: 0.30},
	{Value: "Clothing", Weight: 0.25},
	{Value: "Home & Garden", Weight: 0.15},
	{Value: "Beauty", Weight: 0.12},
	{Value: "Sports", Weight: 0.10},
	{Value: "Books", Weight: 0.08},
}

// Reasons lists the return reasons. Weights sum to 1.
var Reasons = Vocabulary{
	{Value: "Defective", Weight: 0.25},
	{Value: "Wrong Size", Weight: 0.20},
	{Value: "Not as Described", Weight: 0.15},
	{Value: "Changed Mind", Weight: 0.15},
	{Value: "Damaged in Shipping", Weight: 0.10},
	{Value: "Wrong Item", Weight: 0.08},
	{Value: "Quality Issues", Weight: 0.07},
}

// Regions lists the shipping regions. Draws are uniform.
var Regions = []string{
	"North America",
	"Europe",
	"Asia Pacific",
	"South America",
	"Middle East",
	"Africa",
}

// TableColumns names the dataset columns in export order. The last three
// are derived from the return timestamp rather than stored.
var TableColumns = []string{
	"order_id",
	"category",
	"reason",
	"return_ts",
	"region",
	"refund_amount",
	"customer_age",
	"rating",
	"processing_days",
	"return_month",
	"return_weekday",
	"return_hour",
}

// ReturnTable is the generated dataset. It is never modified once built.
type ReturnTable struct {
	Records []ReturnRecord `json:"records"`
}

// Len returns the number of records in the table.
func (t *ReturnTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Columns returns the column names in export order.
func (t *ReturnTable) Columns() []string {
	return TableColumns
}

// Summary holds the headline statistics computed from a return table.
type Summary struct {
	TotalRefund       float64 `json:"total_refund"`        // sum of all refund amounts
	TopCategory       string  `json:"top_category"`        // most frequent category
	PeakHour          int     `json:"peak_hour"`           // hour of day with the most returns
	AvgProcessingDays float64 `json:"avg_processing_days"` // mean processing time
}
