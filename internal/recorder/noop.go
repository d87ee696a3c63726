package recorder

import "TrendSentinel/internal/model"

// NoopRecorder is a no-op implementation used when snapshots are disabled.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ string, _ model.EnrichedSeries) error { return nil }
func (n *NoopRecorder) Close() error                                          { return nil }
