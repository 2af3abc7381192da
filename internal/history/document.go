package history

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/deccalc/internal/errors"
)

// Document is the structured, persistable form of a ledger: the full record
// sequence (active and redo-only) plus the cursor position. All numeric
// fields are strings for lossless decimal round-trips.
type Document struct {
	Records []DocumentRecord `json:"records"`
	Cursor  int              `json:"cursor"`
	SavedAt string           `json:"savedAt"`
}

// DocumentRecord is the serialized form of a single Record.
type DocumentRecord struct {
	Operation string `json:"operation"`
	OperandA  string `json:"operandA"`
	OperandB  string `json:"operandB"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

// timestampLayout is the wire format for record timestamps.
const timestampLayout = time.RFC3339Nano

// toDocument converts a record to its serialized form.
func (r Record) toDocument() DocumentRecord {
	return DocumentRecord{
		Operation: r.Op,
		OperandA:  r.OperandA.String(),
		OperandB:  r.OperandB.String(),
		Result:    r.Result.String(),
		Timestamp: r.Timestamp.Format(timestampLayout),
	}
}

// recordFromDocument parses a serialized record, reporting which field of
// which entry failed on error.
func recordFromDocument(index int, dr DocumentRecord) (Record, error) {
	parse := func(field, raw string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("record %d: field %s: cannot parse %q as a decimal", index, field, raw)
		}
		return d, nil
	}

	a, err := parse("operandA", dr.OperandA)
	if err != nil {
		return Record{}, err
	}
	b, err := parse("operandB", dr.OperandB)
	if err != nil {
		return Record{}, err
	}
	result, err := parse("result", dr.Result)
	if err != nil {
		return Record{}, err
	}
	ts, err := time.Parse(timestampLayout, dr.Timestamp)
	if err != nil {
		return Record{}, fmt.Errorf("record %d: field timestamp: %v", index, err)
	}
	if dr.Operation == "" {
		return Record{}, fmt.Errorf("record %d: field operation: empty", index)
	}

	return Record{Op: dr.Operation, OperandA: a, OperandB: b, Result: result, Timestamp: ts}, nil
}

// Document returns the serialized form of the ledger, including redo-only
// records and the cursor, so a round-trip reproduces the exact state.
func (l *Ledger) Document() Document {
	doc := Document{
		Records: make([]DocumentRecord, 0, len(l.records)),
		Cursor:  l.cursor,
		SavedAt: time.Now().UTC().Format(timestampLayout),
	}
	for _, r := range l.records {
		doc.Records = append(doc.Records, r.toDocument())
	}
	return doc
}

// FromDocument reconstructs a ledger from its serialized form, bounded by
// maxSize. Validation is all-or-nothing: a cursor outside the record range
// or any unparsable field fails with CorruptHistoryError and no ledger is
// produced. When the document holds more records than maxSize, the oldest
// are evicted and the cursor clamped, mirroring Append's eviction rule.
func FromDocument(doc Document, maxSize int) (*Ledger, error) {
	if doc.Cursor < 0 || doc.Cursor > len(doc.Records) {
		return nil, apperrors.NewCorruptHistoryError("",
			fmt.Errorf("cursor %d outside record range [0, %d]", doc.Cursor, len(doc.Records)))
	}

	records := make([]Record, 0, len(doc.Records))
	for i, dr := range doc.Records {
		record, err := recordFromDocument(i, dr)
		if err != nil {
			return nil, apperrors.NewCorruptHistoryError("", err)
		}
		records = append(records, record)
	}

	ledger := NewLedger(maxSize)
	ledger.records = records
	ledger.cursor = doc.Cursor

	if evicted := len(ledger.records) - ledger.maxSize; evicted > 0 {
		ledger.records = ledger.records[evicted:]
		ledger.cursor -= evicted
		if ledger.cursor < 0 {
			ledger.cursor = 0
		}
	}
	return ledger, nil
}
