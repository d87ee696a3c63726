package recorder

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"TrendSentinel/internal/model"
)

// DatetimeLayout is the snapshot datetime format.
const DatetimeLayout = "2006-01-02 15:04:05"

// CSVRecorder writes one {symbol}.csv per symbol, overwriting any previous
// snapshot. Null cells are written empty.
type CSVRecorder struct {
	dir string
	mu  sync.Mutex
}

// NewCSVRecorder creates the snapshot directory if needed.
func NewCSVRecorder(dir string) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	log.Printf("[INFO] csv recorder opened: %s", dir)
	return &CSVRecorder{dir: dir}, nil
}

// Path returns the snapshot file for symbol.
func (r *CSVRecorder) Path(symbol string) string {
	return filepath.Join(r.dir, symbol+".csv")
}

func (r *CSVRecorder) RecordSnapshot(symbol string, series model.EnrichedSeries) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.Path(symbol)
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := writeSeries(file, series); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	log.Printf("[INFO] snapshot written: %s (%d rows)", path, len(series))
	return nil
}

func writeSeries(file *os.File, series model.EnrichedSeries) error {
	w := csv.NewWriter(file)

	header := make([]string, 0, len(model.EnrichedColumns)+1)
	header = append(header, model.ColDatetime)
	for _, c := range model.EnrichedColumns {
		header = append(header, c.Name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for i := range series {
		row := &series[i]
		record[0] = row.Datetime.Format(DatetimeLayout)
		for j, c := range model.EnrichedColumns {
			v := c.Get(row)
			if v.Valid {
				record[j+1] = strconv.FormatFloat(v.Float64, 'f', -1, 64)
			} else {
				record[j+1] = ""
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (r *CSVRecorder) Close() error { return nil }
