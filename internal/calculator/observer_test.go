package calculator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"

	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/logging"
	"github.com/agbru/deccalc/internal/operation"
	"github.com/agbru/deccalc/internal/persistence"
)

func decMust(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// recordingObserver collects the records it is notified with.
type recordingObserver struct {
	name string
	seen *[]string
	err  error
}

func (o *recordingObserver) OnRecord(record history.Record) error {
	*o.seen = append(*o.seen, o.name+":"+record.Op)
	return o.err
}

// panickyObserver always panics.
type panickyObserver struct{}

func (panickyObserver) OnRecord(history.Record) error { panic("observer exploded") }

func TestObservers_NotifiedInSubscriptionOrder(t *testing.T) {
	calc := newTestCalculator()

	var seen []string
	calc.Subscribe(&recordingObserver{name: "first", seen: &seen})
	calc.Subscribe(&recordingObserver{name: "second", seen: &seen})

	if _, err := calc.Perform("add", "2", "3"); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	want := []string{"first:add", "second:add"}
	if len(seen) != len(want) {
		t.Fatalf("observed %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestObservers_NotNotifiedOnFailure(t *testing.T) {
	calc := newTestCalculator()

	var seen []string
	calc.Subscribe(&recordingObserver{name: "only", seen: &seen})

	if _, err := calc.Perform("divide", "1", "0"); err == nil {
		t.Fatal("Perform should fail")
	}
	if len(seen) != 0 {
		t.Errorf("observers notified on failed operation: %v", seen)
	}
}

func TestObservers_FailuresAreContained(t *testing.T) {
	var logBuf bytes.Buffer
	log := logging.NewLogger(&logBuf, "test")

	calc := New(Options{MaxHistory: 10, Rounding: operation.DefaultRounding()}, nil, log)

	var seen []string
	calc.Subscribe(&recordingObserver{name: "failing", seen: &seen, err: errors.New("disk full")})
	calc.Subscribe(&panickyObserver{})
	calc.Subscribe(&recordingObserver{name: "last", seen: &seen})

	record, err := calc.Perform("add", "2", "2")
	if err != nil {
		t.Fatalf("Perform should succeed despite observer failures: %v", err)
	}
	if record.Result.String() != "4" {
		t.Errorf("Result = %s, want 4", record.Result)
	}

	// Later observers still ran.
	if len(seen) != 2 || seen[1] != "last:add" {
		t.Errorf("observed %v, want failing then last", seen)
	}

	// Both failures were logged as warnings.
	logged := logBuf.String()
	if !strings.Contains(logged, "disk full") {
		t.Errorf("log should mention the observer error, got: %s", logged)
	}
	if !strings.Contains(logged, "observer exploded") {
		t.Errorf("log should mention the observer panic, got: %s", logged)
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	observer := NewLoggingObserver(logging.NewLogger(&buf, "audit"))

	record := history.NewRecord("percentage",
		decMust("25"), decMust("200"), decMust("12.5"))
	if err := observer.OnRecord(record); err != nil {
		t.Fatalf("OnRecord failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"percentage", "25", "200", "12.5", "audit"} {
		if !strings.Contains(out, want) {
			t.Errorf("audit entry should contain %q, got: %s", want, out)
		}
	}
}

func TestAutoSaveObserver(t *testing.T) {
	store := persistence.NewStore(afero.NewMemMapFs())
	calc := New(Options{MaxHistory: 10, Rounding: operation.DefaultRounding()}, store, nil)
	calc.Subscribe(NewAutoSaveObserver(calc, "auto.json"))

	if _, err := calc.Perform("add", "2", "3"); err != nil {
		t.Fatalf("Perform failed: %v", err)
	}

	doc, err := store.Read("auto.json")
	if err != nil {
		t.Fatalf("auto-saved file should be readable: %v", err)
	}
	if len(doc.Records) != 1 || doc.Records[0].Operation != "add" {
		t.Errorf("auto-saved document = %+v, want one add record", doc)
	}
}
