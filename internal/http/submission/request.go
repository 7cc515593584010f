package submission

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type submitRequest struct {
	WorkerID string        `json:"worker_id"`
	Email    string        `json:"email"`
	Date     string        `json:"date"`
	Items    []itemRequest `json:"items"`
}

type itemRequest struct {
	Destination string     `json:"destination"`
	Reason      string     `json:"reason"`
	Project     string     `json:"project"`
	CostCenter  string     `json:"cost_center"`
	Amount      flexAmount `json:"amount"`
}

// flexAmount accepts 12.5, 4.5e1, "S/ 12,50" and null alike. Numbers are
// rewritten in plain decimal form; strings are kept raw for the ledger to
// normalize.
type flexAmount string

func (a *flexAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*a = flexAmount(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("amount must be a number or a string: %w", err)
		}

		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return fmt.Errorf("amount must be a number or a string: %w", err)
		}

		*a = flexAmount(d.String())
	}

	return nil
}

func (req submitRequest) params() submission.SubmitParams {
	items := make([]submission.ItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = submission.ItemInput{
			Destination: it.Destination,
			Reason:      it.Reason,
			Project:     it.Project,
			CostCenter:  it.CostCenter,
			Amount:      string(it.Amount),
		}
	}

	return submission.SubmitParams{
		WorkerID: req.WorkerID,
		Email:    req.Email,
		Date:     req.Date,
		Items:    items,
	}
}
