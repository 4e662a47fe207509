package recorder

import (
	"path/filepath"
	"testing"

	"github.com/ywen250/finsim-backend/internal/catalog"
	"github.com/ywen250/finsim-backend/internal/engine"
)

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	events := []*engine.CommittedEvent{
		{
			ID: "ev_1", Day: 1, ScenarioID: "scn_paycheck", Name: "Paycheck",
			Category: catalog.CategoryIncome, Deterministic: true,
			ProposedAmount: 2200, Amount: 2200, ChosenOption: "accept",
		},
		{
			ID: "ev_2", Day: 1, ScenarioID: "scn_rent", Name: "Rent",
			Category: catalog.CategoryBill, ProposedAmount: -1200, Amount: -1200,
			ChosenOption: "pay_now", Probability: 0,
		},
	}
	ledger := engine.Ledger{Checking: 2500, Health: 68, LastDayNet: 1000, PositiveStreak: 1}

	if err := rec.RecordCommit("sess-1", 1, events, ledger); err != nil {
		t.Fatal(err)
	}

	var eventCount, ledgerCount int
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM events WHERE session_id = ?", "sess-1").Scan(&eventCount); err != nil {
		t.Fatal(err)
	}
	if eventCount != 2 {
		t.Fatalf("event rows: %d", eventCount)
	}
	if err := rec.db.QueryRow("SELECT COUNT(*) FROM day_ledgers WHERE session_id = ?", "sess-1").Scan(&ledgerCount); err != nil {
		t.Fatal(err)
	}
	if ledgerCount != 1 {
		t.Fatalf("ledger rows: %d", ledgerCount)
	}

	var amount float64
	var option string
	err = rec.db.QueryRow(
		"SELECT amount, chosen_option FROM events WHERE event_id = ?", "ev_2",
	).Scan(&amount, &option)
	if err != nil {
		t.Fatal(err)
	}
	if amount != -1200 || option != "pay_now" {
		t.Fatalf("stored event: amount=%v option=%q", amount, option)
	}
}

func TestSQLiteRecorderReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	// Migrations are idempotent.
	rec, err = NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()
	if err := rec.RecordCommit("sess-2", 1, nil, engine.Ledger{}); err != nil {
		t.Fatal(err)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = Noop{}
	if err := r.RecordCommit("x", 1, nil, engine.Ledger{}); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
