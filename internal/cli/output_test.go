package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/operation"
	"github.com/agbru/deccalc/internal/ui"
)

func noColor(t *testing.T) {
	t.Helper()
	ui.SetTheme("none")
	t.Cleanup(func() { ui.SetTheme("dark") })
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testRecord(op, a, b, result string) history.Record {
	return history.Record{
		Op:        op,
		OperandA:  dec(a),
		OperandB:  dec(b),
		Result:    dec(result),
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestFormatRecord(t *testing.T) {
	registry := operation.NewRegistry(operation.DefaultRounding())

	tests := []struct {
		name   string
		record history.Record
		want   string
	}{
		{"symbol operation", testRecord("add", "2", "3", "5"), "2 + 3 = 5"},
		{"word operation", testRecord("modulus", "10", "3", "1"), "10 mod 3 = 1"},
		{"integer division", testRecord("intdiv", "-10", "3", "-3"), "-10 // 3 = -3"},
		{"unregistered falls back to identifier", testRecord("hyperop", "1", "2", "3"), "1 hyperop 2 = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecord(registry, tt.record); got != tt.want {
				t.Errorf("FormatRecord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayHistory(t *testing.T) {
	noColor(t)
	registry := operation.NewRegistry(operation.DefaultRounding())

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayHistory(&buf, registry, nil)
		if !strings.Contains(buf.String(), "History is empty.") {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("numbered entries", func(t *testing.T) {
		var buf bytes.Buffer
		DisplayHistory(&buf, registry, []history.Record{
			testRecord("add", "1", "2", "3"),
			testRecord("divide", "1", "3", "0.3333333333"),
		})
		out := buf.String()
		if !strings.Contains(out, "1. 1 + 2 = 3") {
			t.Errorf("missing first entry: %q", out)
		}
		if !strings.Contains(out, "2. 1 / 3 = 0.3333333333") {
			t.Errorf("missing second entry: %q", out)
		}
	})
}

func TestDisplayError(t *testing.T) {
	noColor(t)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", apperrors.NewValidationError("operandA", "invalid decimal"), "Error:"},
		{"division by zero", apperrors.DivisionByZeroError{Operation: "division"}, "Error: division by zero is not allowed"},
		{"undo no-op is informational", apperrors.UndoUnavailableError{}, "Nothing to undo"},
		{"redo no-op is informational", apperrors.RedoUnavailableError{}, "Nothing to redo"},
		{"corrupt history keeps state notice", apperrors.NewCorruptHistoryError("h.json", nil), "kept unchanged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayError(&buf, tt.err)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("DisplayError(%v) = %q, want substring %q", tt.err, buf.String(), tt.want)
			}
		})
	}
}

func TestDisplayErrorNoOpIsNotAnError(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	DisplayError(&buf, apperrors.UndoUnavailableError{})
	if strings.Contains(buf.String(), "Error") {
		t.Errorf("history no-ops must not render as errors: %q", buf.String())
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{3 * time.Second, "3s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
