package tx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// InvariantChecker validates the net effect of an operation before commit.
// view reflects the state after the operation.
type InvariantChecker interface {
	Check(view Reader, changes []Change) error
}

// Observer is notified after every operation the engine processes,
// whether or not it succeeded.
type Observer interface {
	OperationApplied(ctx context.Context, res *ApplyResult)
}

// Envelope pairs an operation with the account that submitted it.
type Envelope struct {
	Source    sle.AccountID
	Operation Operation
}

// ApplyResult contains the result of applying an operation
type ApplyResult struct {
	Type   OperationType
	Source sle.AccountID

	// Result is the operation result code
	Result Result

	// Applied indicates whether the operation's writes were committed
	Applied bool

	// Metadata contains the changes made by the operation
	Metadata *Metadata

	// LedgerSequence is the ledger the operation was applied in
	LedgerSequence uint32

	// Duration is the wall time spent applying the operation
	Duration time.Duration
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithInvariants adds invariant checkers run before every commit.
func WithInvariants(checkers ...InvariantChecker) EngineOption {
	return func(e *Engine) { e.invariants = append(e.invariants, checkers...) }
}

// WithObservers adds observers notified after every operation.
func WithObservers(observers ...Observer) EngineOption {
	return func(e *Engine) { e.observers = append(e.observers, observers...) }
}

// Engine applies operations to an entry store one at a time.
type Engine struct {
	mu         sync.Mutex
	store      LedgerEntryStore
	config     Config
	log        logrus.FieldLogger
	invariants []InvariantChecker
	observers  []Observer
}

// NewEngine creates an engine over store.
func NewEngine(store LedgerEntryStore, config Config, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		config: config,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// SetBaseReserve changes the base reserve for subsequent operations.
// Existing preauthorizations keep the reserve they were created with.
func (e *Engine) SetBaseReserve(reserve int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.BaseReserve = reserve
}

// Apply applies a single operation submitted by source. Failure result codes
// are reported in the ApplyResult; a non-nil error means the operation could
// not be evaluated or committed, and the store is unchanged.
func (e *Engine) Apply(ctx context.Context, source sle.AccountID, op Operation) (*ApplyResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res, err := e.apply(ctx, source, op)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"op":     op.Type().String(),
			"source": source.String(),
		}).WithError(err).Error("operation aborted")
		return nil, err
	}
	res.Duration = time.Since(start)

	e.log.WithFields(logrus.Fields{
		"op":      res.Type.String(),
		"source":  source.String(),
		"result":  res.Result.String(),
		"changes": len(res.Metadata.AffectedNodes),
	}).Debug("operation applied")

	for _, o := range e.observers {
		o.OperationApplied(ctx, res)
	}
	return res, nil
}

// ApplyLedger applies envelopes in order. It stops at the first error and
// returns the results gathered so far.
func (e *Engine) ApplyLedger(ctx context.Context, envelopes []Envelope) ([]*ApplyResult, error) {
	results := make([]*ApplyResult, 0, len(envelopes))
	for i, env := range envelopes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := e.Apply(ctx, env.Source, env.Operation)
		if err != nil {
			return results, fmt.Errorf("operation %d (%s): %w", i, env.Operation.Type(), err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Engine) apply(ctx context.Context, source sle.AccountID, op Operation) (*ApplyResult, error) {
	res := &ApplyResult{
		Type:           op.Type(),
		Source:         source,
		Metadata:       NewMetadata(nil),
		LedgerSequence: e.config.LedgerSequence,
	}

	// Step 1: Preflight checks (no state)
	if res.Result = op.Preflight(); !res.Result.IsSuccess() {
		return res, nil
	}

	// Step 2: Apply through a write-tracking table
	table := NewApplyStateTable(storeView{ctx: ctx, store: e.store})
	actx := &ApplyContext{
		View:     table,
		Reserves: NewReserveLedger(table, e.config),
		SourceID: source,
		Config:   e.config,
	}
	if _, err := actx.SourceAccount(); err != nil {
		return nil, err
	}

	result, err := op.Apply(actx)
	if err != nil {
		return nil, err
	}
	res.Result = result
	if !result.IsSuccess() {
		return res, nil
	}

	// Step 3: Invariants, then commit as one batch
	changes := table.Changes()
	for _, checker := range e.invariants {
		if err := checker.Check(table, changes); err != nil {
			return nil, err
		}
	}
	if err := e.store.Apply(ctx, changes); err != nil {
		return nil, fmt.Errorf("commit %s: %w", op.Type(), err)
	}

	res.Applied = true
	res.Metadata = NewMetadata(changes)
	return res, nil
}

