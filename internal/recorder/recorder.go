package recorder

import "TrendSentinel/internal/model"

// Recorder persists enriched-series snapshots for later inspection.
type Recorder interface {
	RecordSnapshot(symbol string, series model.EnrichedSeries) error
	Close() error
}
