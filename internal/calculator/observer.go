package calculator

import (
	"fmt"

	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/logging"
)

// Observer is notified after each successful command execution. An observer
// that fails must not prevent other observers from running or abort the
// user-visible result; failures are caught at the bus boundary, logged as
// warnings, and swallowed.
type Observer interface {
	OnRecord(record history.Record) error
}

// Subscribe registers an observer. Observers are notified in subscription
// order. The collection is owned by this calculator instance; there is no
// process-wide registry.
func (c *Calculator) Subscribe(observer Observer) {
	c.observers = append(c.observers, observer)
}

// notify runs every observer against record. Errors and panics are
// contained per observer.
func (c *Calculator) notify(record history.Record) {
	for _, observer := range c.observers {
		if err := c.safeNotify(observer, record); err != nil {
			c.log.Warn("observer failed",
				logging.String("op", record.Op), logging.Err(err))
		}
	}
}

// safeNotify invokes a single observer, converting a panic into an error so
// the remaining observers still run.
func (c *Calculator) safeNotify(observer Observer, record history.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
		}
	}()
	return observer.OnRecord(record)
}

// LoggingObserver writes an audit log entry for each record.
type LoggingObserver struct {
	log logging.Logger
}

// NewLoggingObserver creates an audit observer writing through log.
func NewLoggingObserver(log logging.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

// OnRecord logs the executed calculation.
func (o *LoggingObserver) OnRecord(record history.Record) error {
	o.log.Info("calculation",
		logging.String("op", record.Op),
		logging.String("operand_a", record.OperandA.String()),
		logging.String("operand_b", record.OperandB.String()),
		logging.String("result", record.Result.String()))
	return nil
}

// AutoSaveObserver persists the ledger after every calculation.
type AutoSaveObserver struct {
	calc *Calculator
	path string
}

// NewAutoSaveObserver creates an observer that saves calc's history to path
// on every record.
func NewAutoSaveObserver(calc *Calculator, path string) *AutoSaveObserver {
	return &AutoSaveObserver{calc: calc, path: path}
}

// OnRecord saves the history. A failed save is reported to the bus, which
// logs it without disturbing the calculation result.
func (o *AutoSaveObserver) OnRecord(history.Record) error {
	return o.calc.SaveHistory(o.path)
}
