//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
	companyStore "github.com/MrJamesThe3rd/movilidad/internal/company/store"
	"github.com/MrJamesThe3rd/movilidad/internal/database"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
	"github.com/MrJamesThe3rd/movilidad/internal/submission/store"
	"github.com/MrJamesThe3rd/movilidad/internal/worker"
	workerStore "github.com/MrJamesThe3rd/movilidad/internal/worker/store"
)

// Run with: MOVILIDAD_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/submission/store/
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("MOVILIDAD_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MOVILIDAD_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, database.Options{DSN: dsn, MaxOpenConns: 30, MaxIdleConns: 5, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))

	return db
}

// seedWorker inserts a fresh company and worker so reruns never collide.
func seedWorker(t *testing.T, db *sql.DB) (workerID, email string) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	employerID := "E-" + suffix
	workerID = "W-" + suffix
	email = workerID + "@acme.pe"

	_, err := db.Exec(`INSERT INTO companies (employer_id, legal_name, tax_id) VALUES ($1, 'ACME S.A.C.', $1)`, employerID)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO workers (worker_id, email, first_name, last_name, employer_id, default_project, active)
		VALUES ($1, $2, 'Ana', 'Bravo', $3, 'PRJ-01', 'true')
	`, workerID, email, employerID)
	require.NoError(t, err)

	return workerID, email
}

func newService(db *sql.DB) *submission.Service {
	return submission.NewService(
		store.New(db),
		worker.NewService(workerStore.New(db)),
		company.NewService(companyStore.New(db)),
		submission.NewCapEnforcer(decimal.RequireFromString("45.00")),
	)
}

func TestStore_ConcurrentSubmitsSerializePerWorker(t *testing.T) {
	db := openTestDB(t)
	workerID, email := seedWorker(t, db)
	svc := newService(db)
	ctx := context.Background()

	const callers = 20

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		other    []error
	)

	for range callers {
		wg.Go(func() {
			_, err := svc.Submit(ctx, submission.SubmitParams{
				WorkerID: workerID,
				Email:    email,
				Date:     "2024-01-10",
				Items:    []submission.ItemInput{{Destination: "Cliente", Amount: "5.00"}},
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				accepted++
			case !errors.Is(err, submission.ErrCapExceeded):
				other = append(other, err)
			}
		})
	}

	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 9, accepted)

	usage, err := svc.Accumulated(ctx, workerID, "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "45.00", usage.Used.StringFixed(2))

	subs, err := svc.List(ctx, submission.ListFilter{WorkerID: workerID})
	require.NoError(t, err)

	numbers := make([]int64, len(subs))
	for i, s := range subs {
		numbers[i] = s.Number
	}

	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })

	require.Len(t, numbers, 9)

	for i, n := range numbers {
		assert.Equal(t, int64(i+1), n)
	}

	var counter int64
	require.NoError(t, db.QueryRow(`SELECT n FROM sequence_counters WHERE worker_id = $1`, workerID).Scan(&counter))
	assert.Equal(t, int64(9), counter)
}

func TestStore_RollbackReleasesSequence(t *testing.T) {
	db := openTestDB(t)
	workerID, _ := seedWorker(t, db)
	st := store.New(db)
	ctx := context.Background()

	stx, err := st.BeginSubmit(ctx, workerID)
	require.NoError(t, err)

	n, err := stx.AllocateNext(ctx, workerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, stx.Rollback())

	stx, err = st.BeginSubmit(ctx, workerID)
	require.NoError(t, err)

	defer stx.Rollback()

	n, err = stx.AllocateNext(ctx, workerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	sub := &submission.Submission{
		ID:       uuid.New(),
		WorkerID: workerID,
		Email:    workerID + "@acme.pe",
		Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Serie:    "AB",
		Number:   n,
		Total:    decimal.RequireFromString("12.50"),
		Items: []submission.LineItem{
			{Destination: "Surco", Amount: decimal.RequireFromString("7.50")},
			{Destination: "Lince", Amount: decimal.RequireFromString("5.00")},
		},
	}
	require.NoError(t, stx.CreateSubmission(ctx, sub))
	require.NoError(t, stx.Commit())

	got, err := st.GetSubmission(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.50", got.Total.StringFixed(2))
	assert.Len(t, got.Items, 2)
}
