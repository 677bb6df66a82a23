package market

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trumall/market/internal/models"
)

var transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "market_transactions_total",
	Help: "Terminal transaction outcomes, labeled by kind and status",
}, []string{"kind", "status"})

// Journal observes terminal transaction transitions. It replaces ad-hoc
// console audit output with a structured record an operator can consume.
type Journal interface {
	Record(tx *models.Transaction)
}

// SlogJournal writes each terminal transaction as a structured log event and
// counts it in the transaction outcome metric.
type SlogJournal struct {
	logger *slog.Logger
}

// NewSlogJournal creates a journal writing through logger.
func NewSlogJournal(logger *slog.Logger) *SlogJournal {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogJournal{logger: logger}
}

// Record logs the transaction outcome. Failures log at warn so they stand
// out in an operator's feed.
func (j *SlogJournal) Record(tx *models.Transaction) {
	transactionsTotal.WithLabelValues(string(tx.Kind), string(tx.Status)).Inc()

	attrs := []any{
		"transaction_id", tx.ID,
		"user_id", tx.UserID,
		"kind", tx.Kind,
		"item_id", tx.ItemID,
		"amount", tx.Amount,
		"fee", tx.Fee,
		"currency", tx.Currency,
		"status", tx.Status,
	}
	if tx.Status == models.StatusFailed {
		j.logger.Warn("Transaction failed", attrs...)
		return
	}
	j.logger.Info("Transaction recorded", attrs...)
}

// NopJournal discards all records. Used when no observer is wired.
type NopJournal struct{}

func (NopJournal) Record(*models.Transaction) {}
