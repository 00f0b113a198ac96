package recorder

import "NavSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordUpdate(_ *model.UpdateReport) error { return nil }
func (n *NoopRecorder) RecordDelta(_ *model.DeltaReport) error   { return nil }
func (n *NoopRecorder) Close() error                             { return nil }
