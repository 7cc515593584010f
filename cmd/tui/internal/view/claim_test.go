package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

func TestRenderReceipt(t *testing.T) {
	out := renderReceipt(&submission.Result{
		VoucherCode: "AB00001",
		WorkerName:  "Ana Bravo",
		Total:       decimal.RequireFromString("30"),
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Items:       []submission.LineItem{{Destination: "Cliente Lima", Project: "PRJ-01", Amount: decimal.RequireFromString("30")}},
		Company:     &company.Company{LegalName: "ACME S.A.C.", TaxID: "20100047218"},
	})

	assert.Contains(t, out, "AB00001")
	assert.Contains(t, out, "Worker: Ana Bravo")
	assert.Contains(t, out, "Total: 30.00")
	assert.Contains(t, out, "ACME S.A.C. (20100047218)")
	assert.Contains(t, out, "Cliente Lima")
}

func TestDescribeError_Cap(t *testing.T) {
	err := &submission.CapExceededError{
		Accumulated: decimal.RequireFromString("30"),
		Attempted:   decimal.RequireFromString("20"),
		Cap:         decimal.RequireFromString("45"),
	}

	assert.Equal(t, "Daily cap of 45.00 reached: 30.00 already claimed, 15.00 remaining.", describeError(err))
}
