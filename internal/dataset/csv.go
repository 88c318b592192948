package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/retailmetrics/returnsight/pkg/models"
)

// WriteCSV writes the table in export column order, derived columns last.
// Timestamps are RFC 3339 and refund amounts keep two decimals.
func WriteCSV(w io.Writer, t *models.ReturnTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range t.Records {
		row := []string{
			r.OrderID,
			r.Category,
			r.Reason,
			r.ReturnedAt.Format(time.RFC3339),
			r.Region,
			strconv.FormatFloat(r.RefundAmount, 'f', 2, 64),
			strconv.Itoa(r.CustomerAge),
			strconv.Itoa(r.Rating),
			strconv.Itoa(r.ProcessingDays),
			r.Month(),
			r.Weekday(),
			strconv.Itoa(r.Hour()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.OrderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to path, creating parent directories as
// needed and overwriting any existing file.
func WriteCSVFile(path string, t *models.ReturnTable) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
