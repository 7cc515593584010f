package submission_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/company"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
	"github.com/MrJamesThe3rd/movilidad/internal/worker"
)

var errTxDone = errors.New("transaction already committed or rolled back")

// memStore mirrors the Postgres store: one lock per worker held for the life
// of a submit transaction, writes applied only on Commit.
type memStore struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	counters map[string]int64
	subs     []*submission.Submission

	failCreate error
}

func newMemStore() *memStore {
	return &memStore{
		locks:    make(map[string]*sync.Mutex),
		counters: make(map[string]int64),
	}
}

func (m *memStore) workerLock(workerID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[workerID]
	if !ok {
		l = &sync.Mutex{}
		m.locks[workerID] = l
	}

	return l
}

func (m *memStore) BeginSubmit(_ context.Context, workerID string) (submission.SubmitTx, error) {
	l := m.workerLock(workerID)
	l.Lock()

	return &memTx{store: m, lock: l, counters: make(map[string]int64)}, nil
}

func (m *memStore) AccumulatedTotal(_ context.Context, workerID string, date time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return sumHeaders(m.subs, workerID, date), nil
}

func (m *memStore) ListSubmissions(_ context.Context, filter submission.ListFilter) ([]*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*submission.Submission

	for _, s := range m.subs {
		if filter.WorkerID != "" && s.WorkerID != filter.WorkerID {
			continue
		}

		if filter.Date != nil && !s.Date.Equal(*filter.Date) {
			continue
		}

		out = append(out, s)
	}

	return out, nil
}

func (m *memStore) GetSubmission(_ context.Context, id uuid.UUID) (*submission.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.subs {
		if s.ID == id {
			return s, nil
		}
	}

	return nil, submission.ErrNotFound
}

func (m *memStore) counter(workerID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.counters[workerID]
}

// numbers returns the committed voucher numbers of a worker in ascending order.
func (m *memStore) numbers(workerID string) []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []int64

	for _, s := range m.subs {
		if s.WorkerID == workerID {
			out = append(out, s.Number)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

func (m *memStore) rowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.subs)
}

func sumHeaders(subs []*submission.Submission, workerID string, date time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, s := range subs {
		if s.WorkerID == workerID && s.Date.Equal(date) {
			total = total.Add(s.Total)
		}
	}

	return total
}

type memTx struct {
	store    *memStore
	lock     *sync.Mutex
	counters map[string]int64
	pending  []*submission.Submission
	done     bool
}

func (tx *memTx) AccumulatedTotal(ctx context.Context, workerID string, date time.Time) (decimal.Decimal, error) {
	committed, _ := tx.store.AccumulatedTotal(ctx, workerID, date)
	return committed.Add(sumHeaders(tx.pending, workerID, date)), nil
}

func (tx *memTx) AllocateNext(_ context.Context, workerID string) (int64, error) {
	n, ok := tx.counters[workerID]
	if !ok {
		n = tx.store.counter(workerID)
	}

	tx.counters[workerID] = n + 1

	return n + 1, nil
}

func (tx *memTx) CreateSubmission(_ context.Context, s *submission.Submission) error {
	if tx.store.failCreate != nil {
		return tx.store.failCreate
	}

	cp := *s
	cp.CreatedAt = time.Now()
	s.CreatedAt = cp.CreatedAt
	tx.pending = append(tx.pending, &cp)

	return nil
}

func (tx *memTx) Commit() error {
	if tx.done {
		return errTxDone
	}

	tx.store.mu.Lock()
	for w, n := range tx.counters {
		tx.store.counters[w] = n
	}
	tx.store.subs = append(tx.store.subs, tx.pending...)
	tx.store.mu.Unlock()

	tx.done = true
	tx.lock.Unlock()

	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return errTxDone
	}

	tx.done = true
	tx.lock.Unlock()

	return nil
}

type memWorkers map[string]*worker.Worker

func (m memWorkers) FindByIdentifier(_ context.Context, idOrEmail string) (*worker.Worker, error) {
	for _, w := range m {
		if w.ID == idOrEmail || strings.EqualFold(w.Email, idOrEmail) {
			return w, nil
		}
	}

	return nil, worker.ErrNotFound
}

type memCompanies map[string]*company.Company

func (m memCompanies) FindByID(_ context.Context, employerID string) (*company.Company, error) {
	if c, ok := m[employerID]; ok {
		return c, nil
	}

	return nil, company.ErrNotFound
}
