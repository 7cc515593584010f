package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

func TestObserveSubmission(t *testing.T) {
	m := New()

	m.ObserveSubmission("", decimal.RequireFromString("30.00"))
	m.ObserveSubmission("", decimal.RequireFromString("12.50"))
	m.ObserveSubmission(submission.KindCapExceeded, decimal.RequireFromString("20.00"))
	m.ObserveSubmission(submission.KindValidation, decimal.Zero)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(string(submission.KindCapExceeded))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(string(submission.KindValidation))))
	assert.InDelta(t, 42.5, testutil.ToFloat64(m.accepted), 1e-9)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSubmission("", decimal.RequireFromString("5.00"))
	m.ObserveSubmission(submission.KindCapExceeded, decimal.RequireFromString("50.00"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `movilidad_submissions_total{outcome="accepted"} 1`)
	assert.Contains(t, rec.Body.String(), `movilidad_submission_total_amount_count 2`)
	assert.Contains(t, rec.Body.String(), `movilidad_accepted_amount_total 5`)
}
