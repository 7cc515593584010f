package submission_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/MrJamesThe3rd/movilidad/internal/http/submission"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type fakeLedger struct {
	submit      func(submission.SubmitParams) (*submission.Result, error)
	accumulated func(workerID, date string) (*submission.DailyUsage, error)
	list        func(submission.ListFilter) ([]*submission.Submission, error)
	get         func(uuid.UUID) (*submission.Submission, error)
}

func (f *fakeLedger) Submit(_ context.Context, p submission.SubmitParams) (*submission.Result, error) {
	return f.submit(p)
}

func (f *fakeLedger) Accumulated(_ context.Context, workerID, date string) (*submission.DailyUsage, error) {
	return f.accumulated(workerID, date)
}

func (f *fakeLedger) List(_ context.Context, filter submission.ListFilter) ([]*submission.Submission, error) {
	return f.list(filter)
}

func (f *fakeLedger) Get(_ context.Context, id uuid.UUID) (*submission.Submission, error) {
	return f.get(id)
}

func newServer(f *fakeLedger) http.Handler {
	h := handler.NewHandler(f, nil)

	r := chi.NewRouter()
	r.Route("/submissions", h.Routes)
	r.Route("/workers", h.WorkerRoutes)

	return r
}

func do(t *testing.T, srv http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec, out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var day = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func TestHandler_Submit(t *testing.T) {
	var got submission.SubmitParams

	f := &fakeLedger{
		submit: func(p submission.SubmitParams) (*submission.Result, error) {
			got = p

			return &submission.Result{
				SubmissionID:  uuid.New(),
				VoucherSerie:  "AB",
				VoucherNumber: "00001",
				VoucherCode:   "AB00001",
				Sequence:      1,
				WorkerName:    "Ana Bravo",
				Total:         dec("30"),
				Date:          day,
				Items:         []submission.LineItem{{Destination: "Cliente", Amount: dec("20")}, {Amount: dec("10")}},
			}, nil
		},
	}

	body := `{"worker_id":"W1","email":"ana@acme.pe","date":"2024-01-10","items":[
		{"destination":"Cliente","amount":"S/ 20,00"},
		{"destination":"Oficina","amount":10},
		{"destination":"Nada","amount":null}
	]}`

	rec, out := do(t, newServer(f), http.MethodPost, "/submissions/", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "AB00001", out["voucher"])
	assert.Equal(t, "Ana Bravo", out["worker"])
	assert.Equal(t, "30.00", out["total"])
	assert.Equal(t, "2024-01-10", out["date"])
	assert.Nil(t, out["company"])

	require.Len(t, got.Items, 3)
	assert.Equal(t, "S/ 20,00", got.Items[0].Amount)
	assert.Equal(t, "10", got.Items[1].Amount)
	assert.Empty(t, got.Items[2].Amount)
}

func TestHandler_SubmitExponentAmounts(t *testing.T) {
	var got submission.SubmitParams

	f := &fakeLedger{
		submit: func(p submission.SubmitParams) (*submission.Result, error) {
			got = p

			return &submission.Result{SubmissionID: uuid.New(), VoucherCode: "AB00001", Total: dec("145"), Date: day}, nil
		},
	}

	body := `{"worker_id":"W1","date":"2024-01-10","items":[{"amount":4.5e1},{"amount":1e2},{"amount":12.50}]}`

	rec, _ := do(t, newServer(f), http.MethodPost, "/submissions/", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, got.Items, 3)
	assert.Equal(t, "45", got.Items[0].Amount)
	assert.Equal(t, "100", got.Items[1].Amount)
	assert.Equal(t, "12.5", got.Items[2].Amount)
}

func TestHandler_SubmitErrors(t *testing.T) {
	capErr := &submission.CapExceededError{
		WorkerID:    "W1",
		Date:        day,
		Accumulated: dec("30"),
		Attempted:   dec("20"),
		Cap:         dec("45"),
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "Validation", err: fmt.Errorf("%w: date", submission.ErrValidation), wantStatus: http.StatusBadRequest, wantKind: "validation"},
		{name: "WorkerNotFound", err: submission.ErrWorkerNotFound, wantStatus: http.StatusNotFound, wantKind: "worker_not_found"},
		{name: "WorkerInactive", err: submission.ErrWorkerInactive, wantStatus: http.StatusForbidden, wantKind: "worker_inactive"},
		{name: "Empty", err: submission.ErrEmptySubmission, wantStatus: http.StatusUnprocessableEntity, wantKind: "empty_submission"},
		{name: "CapExceeded", err: capErr, wantStatus: http.StatusConflict, wantKind: "cap_exceeded"},
		{name: "Persistence", err: fmt.Errorf("%w: commit: conn reset", submission.ErrPersistence), wantStatus: http.StatusServiceUnavailable, wantKind: "persistence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeLedger{
				submit: func(submission.SubmitParams) (*submission.Result, error) { return nil, tt.err },
			}

			rec, out := do(t, newServer(f), http.MethodPost, "/submissions/", `{"worker_id":"W1","items":[]}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, out["error"])
		})
	}
}

func TestHandler_SubmitCapFigures(t *testing.T) {
	f := &fakeLedger{
		submit: func(submission.SubmitParams) (*submission.Result, error) {
			return nil, &submission.CapExceededError{Date: day, Accumulated: dec("30"), Attempted: dec("20"), Cap: dec("45")}
		},
	}

	rec, out := do(t, newServer(f), http.MethodPost, "/submissions/", `{}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "30.00", out["accumulated"])
	assert.Equal(t, "20.00", out["attempted"])
	assert.Equal(t, "45.00", out["cap"])
	assert.Equal(t, "15.00", out["remaining"])
}

func TestHandler_SubmitHidesStorageDetails(t *testing.T) {
	f := &fakeLedger{
		submit: func(submission.SubmitParams) (*submission.Result, error) {
			return nil, fmt.Errorf("%w: commit: password authentication failed", submission.ErrPersistence)
		},
	}

	_, out := do(t, newServer(f), http.MethodPost, "/submissions/", `{}`)

	assert.NotContains(t, out["message"], "password")
}

func TestHandler_SubmitBadBody(t *testing.T) {
	f := &fakeLedger{}

	rec, out := do(t, newServer(f), http.MethodPost, "/submissions/", `{"items":[{"amount":true}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", out["error"])
}

func TestHandler_SubmitRequiresJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/submissions/", strings.NewReader("worker_id=W1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	newServer(&fakeLedger{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandler_List(t *testing.T) {
	var got submission.ListFilter

	f := &fakeLedger{
		list: func(filter submission.ListFilter) ([]*submission.Submission, error) {
			got = filter

			return []*submission.Submission{
				{ID: uuid.New(), WorkerID: "W1", Date: day, Serie: "AB", Number: 3, Total: dec("12.5")},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newServer(f).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submissions/?worker_id=W1&date=2024-01-10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "W1", got.WorkerID)
	require.NotNil(t, got.Date)
	assert.True(t, got.Date.Equal(day))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "AB00003", out[0]["voucher"])
	assert.Equal(t, "12.50", out[0]["total"])
}

func TestHandler_ListBadDate(t *testing.T) {
	rec, _ := do(t, newServer(&fakeLedger{}), http.MethodGet, "/submissions/?date=10/01/2024", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	f := &fakeLedger{
		get: func(got uuid.UUID) (*submission.Submission, error) {
			if got != id {
				return nil, submission.ErrNotFound
			}

			return &submission.Submission{
				ID: id, WorkerID: "W1", Date: day, Serie: "AB", Number: 1, Total: dec("3"),
				Items: []submission.LineItem{{Destination: "Surco", Amount: dec("3")}},
			}, nil
		},
	}

	srv := newServer(f)

	rec, out := do(t, srv, http.MethodGet, "/submissions/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AB00001", out["voucher"])
	assert.Len(t, out["items"], 1)

	rec, out = do(t, srv, http.MethodGet, "/submissions/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])

	rec, _ = do(t, srv, http.MethodGet, "/submissions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Accumulated(t *testing.T) {
	f := &fakeLedger{
		accumulated: func(workerID, date string) (*submission.DailyUsage, error) {
			assert.Equal(t, "W1", workerID)
			assert.Equal(t, "2024-01-10", date)

			return &submission.DailyUsage{
				WorkerID:  workerID,
				Date:      day,
				Used:      dec("30"),
				Cap:       dec("45"),
				Remaining: dec("15"),
			}, nil
		},
	}

	rec, out := do(t, newServer(f), http.MethodGet, "/workers/W1/accumulated?date=2024-01-10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30.00", out["used"])
	assert.Equal(t, "45.00", out["cap"])
	assert.Equal(t, "15.00", out["remaining"])
}
