package submission

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
)

// AccumulatedReader sums the totals of a worker's submission headers on a
// calendar day.
type AccumulatedReader interface {
	AccumulatedTotal(ctx context.Context, workerID string, date time.Time) (decimal.Decimal, error)
}

// CapEnforcer decides whether a new claim fits under the daily cap. It reads
// through whatever reader it is handed, so the check runs inside the caller's
// transaction.
type CapEnforcer struct {
	limit decimal.Decimal
}

func NewCapEnforcer(limit decimal.Decimal) *CapEnforcer {
	return &CapEnforcer{limit: amount.Round(limit)}
}

func (c *CapEnforcer) Cap() decimal.Decimal {
	return c.limit
}

func (c *CapEnforcer) AccumulatedTotal(ctx context.Context, r AccumulatedReader, workerID string, date time.Time) (decimal.Decimal, error) {
	total, err := r.AccumulatedTotal(ctx, workerID, date)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Round(total), nil
}

// WouldExceed reports whether accumulated + candidate goes over the cap and
// returns the accumulated amount it compared against. All figures are exact
// cents, so no tolerance is needed.
func (c *CapEnforcer) WouldExceed(ctx context.Context, r AccumulatedReader, workerID string, date time.Time, candidate decimal.Decimal) (bool, decimal.Decimal, error) {
	accumulated, err := c.AccumulatedTotal(ctx, r, workerID, date)
	if err != nil {
		return false, decimal.Zero, err
	}

	return accumulated.Add(candidate).GreaterThan(c.limit), accumulated, nil
}
