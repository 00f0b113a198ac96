package recorder

import "NavSentinel/internal/model"

// Recorder persists the history of accepted observations and delta reports
// for later analysis. It is separate from the single-record state file.
type Recorder interface {
	RecordUpdate(r *model.UpdateReport) error
	RecordDelta(r *model.DeltaReport) error
	Close() error
}
