package submission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
	"github.com/MrJamesThe3rd/movilidad/internal/voucher"
)

// Submission is one accepted claim. Total is the only spend figure; line
// items carry amounts but are never summed for the daily cap.
type Submission struct {
	ID         uuid.UUID
	WorkerID   string
	Email      string
	EmployerID string
	Date       time.Time
	Serie      string
	Number     int64
	Total      decimal.Decimal
	Items      []LineItem // Loaded by Get only
	CreatedAt  time.Time
}

// Code returns the display voucher, e.g. "AB00001".
func (s *Submission) Code() string {
	return voucher.Code(s.Serie, s.Number)
}

type LineItem struct {
	ID          uuid.UUID
	Destination string
	Reason      string
	Project     string
	CostCenter  string
	Amount      decimal.Decimal
}

// ItemInput is an expense as typed by the worker. Amount is free-form text
// and is normalized by the ledger.
type ItemInput struct {
	Destination string
	Reason      string
	Project     string
	CostCenter  string
	Amount      string
}

type SubmitParams struct {
	WorkerID string
	Email    string
	Date     string // YYYY-MM-DD
	Items    []ItemInput
}

// Result is what the caller needs to render a receipt.
type Result struct {
	SubmissionID  uuid.UUID
	VoucherSerie  string
	VoucherNumber string
	VoucherCode   string
	Sequence      int64
	WorkerName    string
	Total         decimal.Decimal
	Date          time.Time
	Items         []LineItem
	Company       *company.Company
}

// DailyUsage reports how much of the cap a worker has used on a day.
type DailyUsage struct {
	WorkerID  string
	Date      time.Time
	Used      decimal.Decimal
	Cap       decimal.Decimal
	Remaining decimal.Decimal
}

type ListFilter struct {
	WorkerID string
	Date     *time.Time
}

// ParseDate parses a calendar day in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
