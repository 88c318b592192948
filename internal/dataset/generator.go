// Package dataset synthesizes the returns table that every downstream
// stage consumes. Generation is fully deterministic: the same options
// always produce the same table, byte for byte.
package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/retailmetrics/returnsight/pkg/models"
)

// Distribution parameters for the numeric columns.
const (
	refundLogMean  = 4.0 // log-normal location, ~$55 median refund
	refundLogSigma = 0.8
	ageMean        = 40.0
	ageStdDev      = 12.0
)

// Options control dataset generation.
type Options struct {
	Records int       // number of return records
	Seed    int64     // RNG seed
	Start   time.Time // timestamp of the first return; record i is Start + i hours
}

// DefaultOptions returns the canonical pipeline constants.
func DefaultOptions() Options {
	return Options{
		Records: 1500,
		Seed:    42,
		Start:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Generator produces synthetic return tables.
type Generator struct {
	opts Options
}

// New returns a generator for the given options. Zero-value fields fall
// back to the canonical constants, so New(Options{}) reproduces the
// reference dataset.
func New(opts Options) *Generator {
	def := DefaultOptions()
	if opts.Records <= 0 {
		opts.Records = def.Records
	}
	if opts.Seed == 0 {
		opts.Seed = def.Seed
	}
	if opts.Start.IsZero() {
		opts.Start = def.Start
	}
	return &Generator{opts: opts}
}

// Options returns the effective options after default substitution.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate builds the full return table. Each call re-seeds its own RNG,
// so repeated calls on one generator produce identical tables and
// concurrent generators never share state.
func (g *Generator) Generate() *models.ReturnTable {
	rng := rand.New(rand.NewSource(g.opts.Seed))
	records := make([]models.ReturnRecord, g.opts.Records)
	for i := range records {
		records[i] = g.draw(rng, i)
	}
	return &models.ReturnTable{Records: records}
}

// draw produces record i. The draw order below is fixed; reordering it
// changes every dataset.
func (g *Generator) draw(rng *rand.Rand, i int) models.ReturnRecord {
	rec := models.ReturnRecord{
		OrderID:    fmt.Sprintf("ORD-%05d", i+1),
		ReturnedAt: g.opts.Start.Add(time.Duration(i) * time.Hour),
	}
	rec.Category = pickWeighted(rng, models.Categories)
	rec.Reason = pickWeighted(rng, models.Reasons)
	rec.Region = models.Regions[rng.Intn(len(models.Regions))]
	rec.RefundAmount = drawRefund(rng)
	rec.CustomerAge = int(math.Round(rng.NormFloat64()*ageStdDev + ageMean))
	rec.Rating = rng.Intn(5) + 1
	rec.ProcessingDays = rng.Intn(20) + 1
	return rec
}

// pickWeighted draws one value from a weighted vocabulary.
func pickWeighted(rng *rand.Rand, vocab models.Vocabulary) string {
	r := rng.Float64()
	acc := 0.0
	for _, w := range vocab {
		acc += w.Weight
		if r < acc {
			return w.Value
		}
	}
	// Float accumulation can land r a hair past the final boundary.
	return vocab[len(vocab)-1].Value
}

// drawRefund draws a log-normal refund amount rounded to cents.
func drawRefund(rng *rand.Rand) float64 {
	amount := math.Exp(rng.NormFloat64()*refundLogSigma + refundLogMean)
	amount = math.Round(amount*100) / 100
	if amount < 0.01 {
		// cent rounding must not produce a zero refund
		amount = 0.01
	}
	return amount
}
