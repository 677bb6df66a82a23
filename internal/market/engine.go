// Package market implements the transaction engine: construction and
// execution of buy/sell operations against a ledger, with a
// Pending -> {Completed, Failed, Canceled} lifecycle per transaction.
package market

import (
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"

	"github.com/trumall/market/internal/ledger"
	"github.com/trumall/market/internal/models"
)

var (
	// ErrAlreadyFinalized guards against double execution: a transaction
	// whose status is terminal is refused.
	ErrAlreadyFinalized = errors.New("transaction already finalized")

	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidFee      = errors.New("fee must not be negative")
	ErrExcessiveFee    = errors.New("fee exceeds sale amount")
	ErrKindMismatch    = errors.New("transaction kind does not match operation")
)

// Engine builds and executes transactions. It holds no per-account state;
// all balance effects go through the ledger passed to each Execute call.
type Engine struct {
	currency string
	journal  Journal
}

// NewEngine creates an engine that denominates transactions in currency and
// reports every terminal transition to journal.
func NewEngine(currency string, journal Journal) *Engine {
	if journal == nil {
		journal = NopJournal{}
	}
	return &Engine{currency: currency, journal: journal}
}

// BeginBuy constructs a Pending buy of quantity units of item with the given
// fee. No ledger side effect happens until ExecuteBuy.
func (e *Engine) BeginBuy(userID string, item *models.Item, quantity, fee int64) (*models.Transaction, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if fee < 0 {
		return nil, ErrInvalidFee
	}
	return models.NewTransaction(models.KindBuy, userID, item.ID, item.Price, quantity, fee, e.currency), nil
}

// ExecuteBuy debits amount+fee from l. The debit is the single point of
// truth for the balance invariant: it is checked and applied as one step, so
// a failed buy leaves balance and history exactly as they were. Failed buys
// are not appended to the ledger history; only the journal sees them.
func (e *Engine) ExecuteBuy(tx *models.Transaction, l *ledger.Ledger) error {
	if tx.Status.Terminal() {
		return ErrAlreadyFinalized
	}
	if tx.Kind != models.KindBuy {
		return fmt.Errorf("%w: %s", ErrKindMismatch, tx.Kind)
	}

	total := money.New(tx.Amount+tx.Fee, tx.Currency)
	if err := l.Debit(total); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			tx.Status = models.StatusFailed
			e.journal.Record(tx)
			return err
		}
		return fmt.Errorf("buy debit failed: %w", err)
	}

	tx.Status = models.StatusCompleted
	l.Append(tx.Record(-total.Amount()))
	e.journal.Record(tx)
	return nil
}

// BeginSell constructs a Pending sell of quantity units of item. Listing the
// item in the catalog is the caller's concern; the engine only owns the
// ledger effect.
func (e *Engine) BeginSell(userID string, item *models.Item, quantity, fee int64) (*models.Transaction, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if fee < 0 {
		return nil, ErrInvalidFee
	}
	if fee > item.Price*quantity {
		return nil, ErrExcessiveFee
	}
	return models.NewTransaction(models.KindSell, userID, item.ID, item.Price, quantity, fee, e.currency), nil
}

// ExecuteSell credits amount-fee to l (the fee is retained by the
// marketplace). There is no failure path for a well-formed sell: no
// existing-quantity check is performed.
func (e *Engine) ExecuteSell(tx *models.Transaction, l *ledger.Ledger) error {
	if tx.Status.Terminal() {
		return ErrAlreadyFinalized
	}
	if tx.Kind != models.KindSell {
		return fmt.Errorf("%w: %s", ErrKindMismatch, tx.Kind)
	}

	net := money.New(tx.Amount-tx.Fee, tx.Currency)
	if err := l.Credit(net); err != nil {
		return fmt.Errorf("sell credit failed: %w", err)
	}

	tx.Status = models.StatusCompleted
	l.Append(tx.Record(net.Amount()))
	e.journal.Record(tx)
	return nil
}

// Cancel moves a Pending transaction to Canceled. Reserved for callers that
// abandon a transaction before execution; buy/sell flows never take it.
func (e *Engine) Cancel(tx *models.Transaction) error {
	if tx.Status.Terminal() {
		return ErrAlreadyFinalized
	}
	tx.Status = models.StatusCanceled
	e.journal.Record(tx)
	return nil
}
