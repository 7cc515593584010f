package submission

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/company"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type itemResponse struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	Reason      string    `json:"reason"`
	Project     string    `json:"project"`
	CostCenter  string    `json:"cost_center"`
	Amount      string    `json:"amount"`
}

type receiptResponse struct {
	SubmissionID  uuid.UUID        `json:"submission_id"`
	VoucherSerie  string           `json:"voucher_serie"`
	VoucherNumber string           `json:"voucher_number"`
	Voucher       string           `json:"voucher"`
	Sequence      int64            `json:"sequence"`
	Worker        string           `json:"worker"`
	Date          string           `json:"date"`
	Total         string           `json:"total"`
	Items         []itemResponse   `json:"items"`
	Company       *company.Company `json:"company"`
}

type submissionResponse struct {
	ID         uuid.UUID      `json:"id"`
	WorkerID   string         `json:"worker_id"`
	Email      string         `json:"email"`
	EmployerID string         `json:"employer_id"`
	Date       string         `json:"date"`
	Voucher    string         `json:"voucher"`
	Sequence   int64          `json:"sequence"`
	Total      string         `json:"total"`
	Items      []itemResponse `json:"items,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type usageResponse struct {
	WorkerID  string `json:"worker_id"`
	Date      string `json:"date"`
	Used      string `json:"used"`
	Cap       string `json:"cap"`
	Remaining string `json:"remaining"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`

	// Set on cap rejections only.
	Accumulated string `json:"accumulated,omitempty"`
	Attempted   string `json:"attempted,omitempty"`
	Cap         string `json:"cap,omitempty"`
	Remaining   string `json:"remaining,omitempty"`
}

func toItems(items []submission.LineItem) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = itemResponse{
			ID:          it.ID,
			Destination: it.Destination,
			Reason:      it.Reason,
			Project:     it.Project,
			CostCenter:  it.CostCenter,
			Amount:      amount.Format(it.Amount),
		}
	}

	return resp
}

func toReceipt(res *submission.Result) receiptResponse {
	return receiptResponse{
		SubmissionID:  res.SubmissionID,
		VoucherSerie:  res.VoucherSerie,
		VoucherNumber: res.VoucherNumber,
		Voucher:       res.VoucherCode,
		Sequence:      res.Sequence,
		Worker:        res.WorkerName,
		Date:          res.Date.Format(time.DateOnly),
		Total:         amount.Format(res.Total),
		Items:         toItems(res.Items),
		Company:       res.Company,
	}
}

func toResponse(s *submission.Submission) submissionResponse {
	return submissionResponse{
		ID:         s.ID,
		WorkerID:   s.WorkerID,
		Email:      s.Email,
		EmployerID: s.EmployerID,
		Date:       s.Date.Format(time.DateOnly),
		Voucher:    s.Code(),
		Sequence:   s.Number,
		Total:      amount.Format(s.Total),
		Items:      toItems(s.Items),
		CreatedAt:  s.CreatedAt,
	}
}

func toResponseList(subs []*submission.Submission) []submissionResponse {
	resp := make([]submissionResponse, len(subs))
	for i, s := range subs {
		resp[i] = toResponse(s)
	}

	return resp
}

func toUsage(u *submission.DailyUsage) usageResponse {
	return usageResponse{
		WorkerID:  u.WorkerID,
		Date:      u.Date.Format(time.DateOnly),
		Used:      amount.Format(u.Used),
		Cap:       amount.Format(u.Cap),
		Remaining: amount.Format(u.Remaining),
	}
}
