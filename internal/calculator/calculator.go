// Package calculator provides the facade composing the operation registry,
// command execution, the history ledger, and observer notification behind a
// single entry point. The facade owns the active ledger and is its sole
// mutator; one calculator serves exactly one interactive session.
package calculator

import (
	"errors"

	"github.com/agbru/deccalc/internal/command"
	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/history"
	"github.com/agbru/deccalc/internal/logging"
	"github.com/agbru/deccalc/internal/operation"
)

// HistoryStore is the persistence collaborator contract: it moves ledger
// documents to and from storage without knowing anything about ledger
// internals.
type HistoryStore interface {
	Write(doc history.Document, path string) error
	Read(path string) (history.Document, error)
}

// Options configures a calculator instance. The core receives the resolved
// values; reading environment variables is the config layer's job.
type Options struct {
	// MaxHistory bounds the ledger. Non-positive falls back to the
	// ledger's default.
	MaxHistory int
	// Rounding is the scale and mode applied to every result. The zero
	// value falls back to the default half-up rounding.
	Rounding operation.Rounding
}

// Calculator is the facade. Not safe for concurrent use.
type Calculator struct {
	registry  *operation.Registry
	ledger    *history.Ledger
	observers []Observer
	store     HistoryStore
	log       logging.Logger
	options   Options
}

// New creates a calculator with an empty ledger. store may be nil when
// persistence is not used (tests, ephemeral sessions); log may be nil.
func New(options Options, store HistoryStore, log logging.Logger) *Calculator {
	if log == nil {
		log = logging.Nop()
	}
	if options.Rounding == (operation.Rounding{}) {
		options.Rounding = operation.DefaultRounding()
	}
	return &Calculator{
		registry: operation.NewRegistry(options.Rounding),
		ledger:   history.NewLedger(options.MaxHistory),
		store:    store,
		log:      log,
		options:  options,
	}
}

// Registry exposes the operation registry for help generation and command
// completion. The registry is immutable.
func (c *Calculator) Registry() *operation.Registry { return c.registry }

// Perform resolves the operation, executes it against the raw operands,
// appends the resulting record to the ledger, and notifies observers. All
// errors come back as typed values from the taxonomy; nothing here
// terminates the session.
func (c *Calculator) Perform(identifier, rawA, rawB string) (history.Record, error) {
	descriptor, err := c.registry.Resolve(identifier)
	if err != nil {
		return history.Record{}, err
	}

	cmd := command.New(descriptor, rawA, rawB)
	record, err := cmd.Execute()
	if err != nil {
		c.log.Debug("command rejected",
			logging.String("command", cmd.Describe()), logging.Err(err))
		return history.Record{}, err
	}

	index := c.ledger.Append(record)
	c.log.Debug("record appended",
		logging.String("op", record.Op),
		logging.String("result", record.Result.String()),
		logging.Int("index", index))

	c.notify(record)
	return record, nil
}

// Undo deactivates the newest calculation and returns it.
func (c *Calculator) Undo() (history.Record, error) { return c.ledger.Undo() }

// Redo reactivates the most recently undone calculation and returns it.
func (c *Calculator) Redo() (history.Record, error) { return c.ledger.Redo() }

// History returns the active records, oldest first.
func (c *Calculator) History() []history.Record { return c.ledger.Snapshot() }

// CanUndo reports whether an undo would succeed.
func (c *Calculator) CanUndo() bool { return c.ledger.CanUndo() }

// CanRedo reports whether a redo would succeed.
func (c *Calculator) CanRedo() bool { return c.ledger.CanRedo() }

// ClearHistory empties the ledger. Irreversible.
func (c *Calculator) ClearHistory() { c.ledger.Clear() }

// SaveHistory writes the full ledger state to path via the store.
func (c *Calculator) SaveHistory(path string) error {
	if c.store == nil {
		return apperrors.NewConfigError("no history store configured")
	}
	if err := c.store.Write(c.ledger.Document(), path); err != nil {
		return err
	}
	c.log.Debug("history saved",
		logging.String("path", path), logging.Int("records", c.ledger.Len()))
	return nil
}

// LoadHistory replaces the ledger with the state stored at path. The load
// is all-or-nothing: on any failure the in-memory ledger is left untouched.
func (c *Calculator) LoadHistory(path string) error {
	if c.store == nil {
		return apperrors.NewConfigError("no history store configured")
	}

	doc, err := c.store.Read(path)
	if err != nil {
		return err
	}

	ledger, err := history.FromDocument(doc, c.options.MaxHistory)
	if err != nil {
		var corrupt apperrors.CorruptHistoryError
		if errors.As(err, &corrupt) && corrupt.Path == "" {
			return apperrors.CorruptHistoryError{Path: path, Cause: corrupt.Cause}
		}
		return err
	}

	c.ledger = ledger
	c.log.Debug("history loaded",
		logging.String("path", path), logging.Int("records", ledger.Len()))
	return nil
}
