package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectSubmissionColumns = `
	s.id, s.worker_id, s.email, s.employer_id, s.date, s.serie, s.number, s.total, s.created_at
`

// scanSubmission expects the columns of selectSubmissionColumns in order.
func scanSubmission(s scanner) (*submission.Submission, error) {
	var sub submission.Submission

	if err := s.Scan(
		&sub.ID, &sub.WorkerID, &sub.Email, &sub.EmployerID, &sub.Date,
		&sub.Serie, &sub.Number, &sub.Total, &sub.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &sub, nil
}

// accumulatedTotal sums submission headers only. Line items are never part
// of the daily figure.
func accumulatedTotal(ctx context.Context, q querier, workerID string, date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total), 0)
		FROM submissions
		WHERE worker_id = $1 AND date = $2
	`

	var total decimal.Decimal
	if err := q.QueryRowContext(ctx, query, workerID, date.Format(time.DateOnly)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing submissions: %w", err)
	}

	return total, nil
}

func (s *Store) AccumulatedTotal(ctx context.Context, workerID string, date time.Time) (decimal.Decimal, error) {
	return accumulatedTotal(ctx, s.db, workerID, date)
}

func (s *Store) ListSubmissions(ctx context.Context, filter submission.ListFilter) ([]*submission.Submission, error) {
	query := `SELECT ` + selectSubmissionColumns + ` FROM submissions s WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.WorkerID != "" {
		query += fmt.Sprintf(" AND s.worker_id = $%d", argIdx)

		args = append(args, filter.WorkerID)
		argIdx++
	}

	if filter.Date != nil {
		query += fmt.Sprintf(" AND s.date = $%d", argIdx)

		args = append(args, filter.Date.Format(time.DateOnly))
		argIdx++
	}

	query += " ORDER BY s.date ASC, s.worker_id ASC, s.number ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var subs []*submission.Submission

	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}

	return subs, nil
}

func (s *Store) GetSubmission(ctx context.Context, id uuid.UUID) (*submission.Submission, error) {
	query := `SELECT ` + selectSubmissionColumns + ` FROM submissions s WHERE s.id = $1`

	sub, err := scanSubmission(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, submission.ErrNotFound
		}

		return nil, fmt.Errorf("getting submission: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	sub.Items = items

	return sub, nil
}

func (s *Store) listItems(ctx context.Context, submissionID uuid.UUID) ([]submission.LineItem, error) {
	query := `
		SELECT id, destination, reason, project, cost_center, amount
		FROM line_items
		WHERE submission_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("listing line items: %w", err)
	}
	defer rows.Close()

	var items []submission.LineItem

	for rows.Next() {
		var item submission.LineItem
		if err := rows.Scan(&item.ID, &item.Destination, &item.Reason, &item.Project, &item.CostCenter, &item.Amount); err != nil {
			return nil, fmt.Errorf("scanning line item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating line items: %w", err)
	}

	return items, nil
}

func workerLockKey(workerID string) int64 {
	h := fnv.New64a()
	h.Write([]byte("submission"))
	h.Write([]byte{0})
	h.Write([]byte(workerID))

	return int64(h.Sum64())
}

type submitTx struct {
	tx *sql.Tx
}

// BeginSubmit takes a transaction-scoped advisory lock on the worker so the
// cap check, the sequence bump and the inserts of concurrent claims for the
// same worker run one after another. Other workers hash to other keys.
func (s *Store) BeginSubmit(ctx context.Context, workerID string) (submission.SubmitTx, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("beginning submit tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", workerLockKey(workerID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring submit lock: %w", err)
	}

	return &submitTx{tx: dbTx}, nil
}

func (stx *submitTx) Commit() error   { return stx.tx.Commit() }
func (stx *submitTx) Rollback() error { return stx.tx.Rollback() }

func (stx *submitTx) AccumulatedTotal(ctx context.Context, workerID string, date time.Time) (decimal.Decimal, error) {
	return accumulatedTotal(ctx, stx.tx, workerID, date)
}

// AllocateNext creates the counter at 1 or bumps it in a single statement;
// the row lock it takes is held until the transaction ends.
func (stx *submitTx) AllocateNext(ctx context.Context, workerID string) (int64, error) {
	query := `
		INSERT INTO sequence_counters (worker_id, n)
		VALUES ($1, 1)
		ON CONFLICT (worker_id) DO UPDATE SET n = sequence_counters.n + 1
		RETURNING n
	`

	var n int64
	if err := stx.tx.QueryRowContext(ctx, query, workerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("allocating sequence: %w", err)
	}

	return n, nil
}

func (stx *submitTx) CreateSubmission(ctx context.Context, sub *submission.Submission) error {
	headerQuery := `
		INSERT INTO submissions (id, worker_id, email, employer_id, date, serie, number, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := stx.tx.QueryRowContext(ctx, headerQuery,
		sub.ID,
		sub.WorkerID,
		sub.Email,
		sub.EmployerID,
		sub.Date.Format(time.DateOnly),
		sub.Serie,
		sub.Number,
		sub.Total,
	).Scan(&sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating submission: %w", err)
	}

	itemQuery := `
		INSERT INTO line_items (id, submission_id, position, destination, reason, project, cost_center, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i := range sub.Items {
		item := &sub.Items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}

		if _, err := stx.tx.ExecContext(ctx, itemQuery,
			item.ID,
			sub.ID,
			i+1,
			item.Destination,
			item.Reason,
			item.Project,
			item.CostCenter,
			item.Amount,
		); err != nil {
			return fmt.Errorf("creating line item %d: %w", i+1, err)
		}
	}

	return nil
}
