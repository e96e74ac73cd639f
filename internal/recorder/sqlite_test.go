package recorder

import (
	"path/filepath"
	"testing"
)

func TestSQLiteRecorder_RecordsEvents(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	if err := r.RecordSnapshot(&SnapshotEvent{RequestID: "a", Source: "mock", Limit: 10, Count: 3, Outcome: OutcomeLoaded}); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}
	events := []*HistoryEvent{
		{RequestID: "b", CurrencyID: "bitcoin", Days: 7, Samples: 168, Outcome: OutcomeLoaded},
		{RequestID: "c", CurrencyID: "ethereum", Days: 7, Outcome: OutcomeEmpty},
		{RequestID: "d", CurrencyID: "tether", Days: 7, Samples: 3, Outcome: OutcomeFailed, Error: "invalid price sample"},
		{RequestID: "e", CurrencyID: "bitcoin", Days: 7, Samples: 168, Outcome: OutcomeLoaded},
	}
	for _, evt := range events {
		if err := r.RecordHistory(evt); err != nil {
			t.Fatalf("record history: %v", err)
		}
	}

	counts, err := r.CountOutcomes()
	if err != nil {
		t.Fatalf("count outcomes: %v", err)
	}
	want := map[string]int{OutcomeLoaded: 2, OutcomeEmpty: 1, OutcomeFailed: 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("outcome %s: expected %d, got %d", k, v, counts[k])
		}
	}

	var snapshots int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM snapshot_fetches`).Scan(&snapshots); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if snapshots != 1 {
		t.Errorf("expected 1 snapshot row, got %d", snapshots)
	}
}

func TestSQLiteRecorder_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	r.Close()

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen recorder: %v", err)
	}
	defer r2.Close()
	if err := r2.RecordHistory(&HistoryEvent{RequestID: "x", CurrencyID: "bitcoin", Outcome: OutcomeStale}); err != nil {
		t.Errorf("record after reopen: %v", err)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordSnapshot(&SnapshotEvent{}); err != nil {
		t.Error(err)
	}
	if err := r.RecordHistory(&HistoryEvent{}); err != nil {
		t.Error(err)
	}
	if err := r.Close(); err != nil {
		t.Error(err)
	}
}
