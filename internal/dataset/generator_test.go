package dataset

import (
	"math"
	"reflect"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/retailmetrics/returnsight/pkg/models"
)

func testTable(t *testing.T) *models.ReturnTable {
	t.Helper()
	return New(DefaultOptions()).Generate()
}

// ── Determinism ──

func TestGenerateDeterministic(t *testing.T) {
	a := New(DefaultOptions()).Generate()
	b := New(DefaultOptions()).Generate()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two generations with equal options should be identical")
	}
}

func TestGenerateRepeatableOnSameGenerator(t *testing.T) {
	g := New(Options{Records: 100, Seed: 7, Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	a := g.Generate()
	b := g.Generate()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated Generate calls on one generator should be identical")
	}
}

func TestGenerateConcurrentDeterministic(t *testing.T) {
	// Each generator owns its RNG, so parallel runs with the same seed
	// must not diverge.
	tables := make([]*models.ReturnTable, 4)
	var eg errgroup.Group
	for i := range tables {
		i := i // pre-1.22 toolchain: pin the per-iteration value the closure expects
		eg.Go(func() error {
			tables[i] = New(DefaultOptions()).Generate()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatalf("errgroup: %v", err)
	}
	for i := 1; i < len(tables); i++ {
		if !reflect.DeepEqual(tables[0], tables[i]) {
			t.Fatalf("concurrent generation %d diverged", i)
		}
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	a := New(Options{Records: 100, Seed: 42}).Generate()
	b := New(Options{Records: 100, Seed: 43}).Generate()
	if reflect.DeepEqual(a, b) {
		t.Fatal("different seeds should produce different tables")
	}
}

// ── Options ──

func TestNewFillsDefaults(t *testing.T) {
	g := New(Options{})
	opts := g.Options()
	if opts.Records != 1500 {
		t.Errorf("Records: got %d, want 1500", opts.Records)
	}
	if opts.Seed != 42 {
		t.Errorf("Seed: got %d, want 42", opts.Seed)
	}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if !opts.Start.Equal(want) {
		t.Errorf("Start: got %v, want %v", opts.Start, want)
	}
}

func TestRecordCountHonored(t *testing.T) {
	for _, n := range []int{1, 10, 500, 1500} {
		table := New(Options{Records: n, Seed: 42}).Generate()
		if table.Len() != n {
			t.Errorf("Records=%d: got %d rows", n, table.Len())
		}
	}
}

// ── Field domains ──

func TestFieldDomains(t *testing.T) {
	categories := toSet(models.Categories.Values())
	reasons := toSet(models.Reasons.Values())
	regions := toSet(models.Regions)

	for _, r := range testTable(t).Records {
		if !categories[r.Category] {
			t.Fatalf("%s: unknown category %q", r.OrderID, r.Category)
		}
		if !reasons[r.Reason] {
			t.Fatalf("%s: unknown reason %q", r.OrderID, r.Reason)
		}
		if !regions[r.Region] {
			t.Fatalf("%s: unknown region %q", r.OrderID, r.Region)
		}
		if r.RefundAmount <= 0 {
			t.Fatalf("%s: refund %f not positive", r.OrderID, r.RefundAmount)
		}
		if cents := r.RefundAmount * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
			t.Fatalf("%s: refund %f not rounded to cents", r.OrderID, r.RefundAmount)
		}
		if r.Rating < 1 || r.Rating > 5 {
			t.Fatalf("%s: rating %d out of range", r.OrderID, r.Rating)
		}
		if r.ProcessingDays < 1 || r.ProcessingDays > 20 {
			t.Fatalf("%s: processing days %d out of range", r.OrderID, r.ProcessingDays)
		}
	}
}

func TestAgesAreNotClamped(t *testing.T) {
	// The age draw keeps its normal tails. With 1500 records the table
	// always contains ages well away from the mean on both sides.
	var under30, over50 int
	sum := 0
	table := testTable(t)
	for _, r := range table.Records {
		sum += r.CustomerAge
		if r.CustomerAge < 30 {
			under30++
		}
		if r.CustomerAge > 50 {
			over50++
		}
	}
	if under30 == 0 || over50 == 0 {
		t.Errorf("expected ages in both tails, got %d under 30 and %d over 50", under30, over50)
	}
	mean := float64(sum) / float64(table.Len())
	if mean < 36 || mean > 44 {
		t.Errorf("mean age %f too far from 40", mean)
	}
}

func TestWeightedDrawsMatchWeights(t *testing.T) {
	table := testTable(t)
	counts := map[string]int{}
	for _, r := range table.Records {
		counts[r.Category]++
	}
	n := float64(table.Len())
	for _, w := range models.Categories {
		share := float64(counts[w.Value]) / n
		if math.Abs(share-w.Weight) > 0.06 {
			t.Errorf("category %q: share %f too far from weight %f", w.Value, share, w.Weight)
		}
	}
}

func TestUniformRegionDraws(t *testing.T) {
	table := testTable(t)
	counts := map[string]int{}
	for _, r := range table.Records {
		counts[r.Region]++
	}
	n := float64(table.Len())
	for _, region := range models.Regions {
		share := float64(counts[region]) / n
		if math.Abs(share-1.0/6.0) > 0.05 {
			t.Errorf("region %q: share %f too far from uniform", region, share)
		}
	}
}

// ── Timestamps and ids ──

func TestHourlyCadence(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	table := testTable(t)
	for i, r := range table.Records {
		want := start.Add(time.Duration(i) * time.Hour)
		if !r.ReturnedAt.Equal(want) {
			t.Fatalf("record %d: ReturnedAt %v, want %v", i, r.ReturnedAt, want)
		}
	}
	// 1499 hours past midnight Jan 1 lands on March 4, 11:00.
	last := table.Records[table.Len()-1].ReturnedAt
	want := time.Date(2023, 3, 4, 11, 0, 0, 0, time.UTC)
	if !last.Equal(want) {
		t.Errorf("last timestamp: got %v, want %v", last, want)
	}
}

func TestOrderIDsSequential(t *testing.T) {
	table := testTable(t)
	if got := table.Records[0].OrderID; got != "ORD-00001" {
		t.Errorf("first id: got %q, want %q", got, "ORD-00001")
	}
	if got := table.Records[1499].OrderID; got != "ORD-01500" {
		t.Errorf("last id: got %q, want %q", got, "ORD-01500")
	}
	seen := make(map[string]bool, table.Len())
	for _, r := range table.Records {
		if seen[r.OrderID] {
			t.Fatalf("duplicate order id %q", r.OrderID)
		}
		seen[r.OrderID] = true
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
