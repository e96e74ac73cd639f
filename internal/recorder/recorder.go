package recorder

// Outcome values stored in the journal.
const (
	OutcomeLoaded = "LOADED"
	OutcomeEmpty  = "EMPTY"
	OutcomeFailed = "FAILED"
	OutcomeStale  = "STALE"
)

// SnapshotEvent records one ranked-snapshot fetch.
type SnapshotEvent struct {
	RequestID string
	Source    string
	Limit     int
	Count     int
	Outcome   string
	Error     string
}

// HistoryEvent records one price-history load for a selection.
type HistoryEvent struct {
	RequestID  string
	CurrencyID string
	Days       int
	Samples    int
	Outcome    string
	Error      string
}

// Recorder journals fetch activity for later analysis. Nothing is read back
// into the pipeline.
type Recorder interface {
	RecordSnapshot(evt *SnapshotEvent) error
	RecordHistory(evt *HistoryEvent) error
	Close() error
}

// OutcomeCounter is implemented by recorders that can summarize the journal.
type OutcomeCounter interface {
	CountOutcomes() (map[string]int, error)
}
