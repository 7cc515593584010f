package submission

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/company"
	"github.com/MrJamesThe3rd/movilidad/internal/voucher"
	"github.com/MrJamesThe3rd/movilidad/internal/worker"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=submission
type Repository interface {
	// BeginSubmit opens a transaction that holds the worker's submit lock
	// until Commit or Rollback.
	BeginSubmit(ctx context.Context, workerID string) (SubmitTx, error)

	AccumulatedTotal(ctx context.Context, workerID string, date time.Time) (decimal.Decimal, error)
	ListSubmissions(ctx context.Context, filter ListFilter) ([]*Submission, error)
	GetSubmission(ctx context.Context, id uuid.UUID) (*Submission, error)
}

type SubmitTx interface {
	AccumulatedReader
	SequenceAllocator

	CreateSubmission(ctx context.Context, s *Submission) error
	Commit() error
	Rollback() error
}

type WorkerDirectory interface {
	FindByIdentifier(ctx context.Context, idOrEmail string) (*worker.Worker, error)
}

type CompanyDirectory interface {
	FindByID(ctx context.Context, employerID string) (*company.Company, error)
}

// Recorder observes the outcome of every Submit call. kind is "" on success.
type Recorder interface {
	ObserveSubmission(kind Kind, total decimal.Decimal)
}

type Service struct {
	repo      Repository
	workers   WorkerDirectory
	companies CompanyDirectory
	limit     *CapEnforcer
	log       *zap.Logger
	recorder  Recorder
}

type Option func(*Service)

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(repo Repository, workers WorkerDirectory, companies CompanyDirectory, limit *CapEnforcer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		workers:   workers,
		companies: companies,
		limit:     limit,
		log:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Cap returns the configured daily cap.
func (s *Service) Cap() decimal.Decimal {
	return s.limit.Cap()
}

// Submit validates and records one claim. Nothing is written unless every
// step succeeds.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Result, error) {
	var total decimal.Decimal

	res, err := s.submit(ctx, params, &total)

	if s.recorder != nil {
		s.recorder.ObserveSubmission(KindOf(err), total)
	}

	if err != nil {
		s.logFailure(params, total, err)
		return nil, err
	}

	s.log.Info("submission accepted",
		zap.String("worker_id", params.WorkerID),
		zap.String("date", params.Date),
		zap.String("voucher", res.VoucherCode),
		zap.String("total", amount.Format(res.Total)),
	)

	return res, nil
}

func (s *Service) submit(ctx context.Context, params SubmitParams, total *decimal.Decimal) (*Result, error) {
	workerID := strings.TrimSpace(params.WorkerID)
	email := strings.TrimSpace(params.Email)

	if workerID == "" {
		return nil, validationError("worker id is required")
	}

	if email == "" {
		return nil, validationError("email is required")
	}

	date, err := ParseDate(strings.TrimSpace(params.Date))
	if err != nil {
		return nil, validationError("date %q must be YYYY-MM-DD", params.Date)
	}

	if len(params.Items) == 0 {
		return nil, validationError("at least one item is required")
	}

	w, err := s.findWorker(ctx, workerID, email)
	if err != nil {
		return nil, err
	}

	if !w.Active {
		return nil, ErrWorkerInactive
	}

	items, sum := cleanItems(params.Items, w.DefaultProject)
	*total = sum

	if len(items) == 0 {
		return nil, ErrEmptySubmission
	}

	snapshot, err := s.findCompany(ctx, w.EmployerID)
	if err != nil {
		return nil, err
	}

	sub := &Submission{
		ID:         uuid.New(),
		WorkerID:   w.ID,
		Email:      email,
		EmployerID: w.EmployerID,
		Date:       date,
		Serie:      voucher.Serie(w.FirstName, w.LastName),
		Total:      sum,
		Items:      items,
	}

	if err := s.persist(ctx, sub); err != nil {
		return nil, err
	}

	return &Result{
		SubmissionID:  sub.ID,
		VoucherSerie:  sub.Serie,
		VoucherNumber: voucher.Number(sub.Number),
		VoucherCode:   sub.Code(),
		Sequence:      sub.Number,
		WorkerName:    w.FullName(),
		Total:         sub.Total,
		Date:          sub.Date,
		Items:         sub.Items,
		Company:       snapshot,
	}, nil
}

// persist runs the cap check, the sequence allocation and the inserts in one
// transaction. sub.Number and sub.CreatedAt are set on success.
func (s *Service) persist(ctx context.Context, sub *Submission) error {
	stx, err := s.repo.BeginSubmit(ctx, sub.WorkerID)
	if err != nil {
		return persistenceError("begin submit", err)
	}
	defer stx.Rollback()

	exceeded, accumulated, err := s.limit.WouldExceed(ctx, stx, sub.WorkerID, sub.Date, sub.Total)
	if err != nil {
		return persistenceError("accumulated total", err)
	}

	if exceeded {
		return &CapExceededError{
			WorkerID:    sub.WorkerID,
			Date:        sub.Date,
			Accumulated: accumulated,
			Attempted:   sub.Total,
			Cap:         s.limit.Cap(),
		}
	}

	n, err := stx.AllocateNext(ctx, sub.WorkerID)
	if err != nil {
		return persistenceError("allocate sequence", err)
	}

	sub.Number = n

	if err := stx.CreateSubmission(ctx, sub); err != nil {
		return persistenceError("create submission", err)
	}

	if err := stx.Commit(); err != nil {
		return persistenceError("commit submission", err)
	}

	return nil
}

// findWorker tries the worker id first and falls back to the email.
func (s *Service) findWorker(ctx context.Context, workerID, email string) (*worker.Worker, error) {
	for _, key := range []string{workerID, email} {
		w, err := s.workers.FindByIdentifier(ctx, key)
		if err == nil {
			return w, nil
		}

		if !errors.Is(err, worker.ErrNotFound) {
			return nil, persistenceError("find worker", err)
		}
	}

	return nil, ErrWorkerNotFound
}

// findCompany returns nil when the employer is unknown; the snapshot is
// receipt metadata and never blocks a claim.
func (s *Service) findCompany(ctx context.Context, employerID string) (*company.Company, error) {
	if employerID == "" {
		return nil, nil
	}

	c, err := s.companies.FindByID(ctx, employerID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			s.log.Warn("employer missing from company directory", zap.String("employer_id", employerID))
			return nil, nil
		}

		return nil, persistenceError("find company", err)
	}

	return c, nil
}

// Accumulated reports the worker's usage of the cap on date.
func (s *Service) Accumulated(ctx context.Context, workerID, date string) (*DailyUsage, error) {
	workerID = strings.TrimSpace(workerID)
	if workerID == "" {
		return nil, validationError("worker id is required")
	}

	day, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, validationError("date %q must be YYYY-MM-DD", date)
	}

	used, err := s.limit.AccumulatedTotal(ctx, s.repo, workerID, day)
	if err != nil {
		return nil, persistenceError("accumulated total", err)
	}

	return &DailyUsage{
		WorkerID:  workerID,
		Date:      day,
		Used:      used,
		Cap:       s.limit.Cap(),
		Remaining: decimal.Max(s.limit.Cap().Sub(used), decimal.Zero),
	}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	subs, err := s.repo.ListSubmissions(ctx, filter)
	if err != nil {
		return nil, persistenceError("list submissions", err)
	}

	return subs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	sub, err := s.repo.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		return nil, persistenceError("get submission", err)
	}

	return sub, nil
}

func (s *Service) logFailure(params SubmitParams, total decimal.Decimal, err error) {
	fields := []zap.Field{
		zap.String("worker_id", params.WorkerID),
		zap.String("date", params.Date),
		zap.String("kind", string(KindOf(err))),
		zap.String("total", amount.Format(total)),
		zap.Error(err),
	}

	if Retryable(err) {
		s.log.Error("submission failed", fields...)
		return
	}

	s.log.Info("submission rejected", fields...)
}

// cleanItems normalizes amounts, drops items that are not strictly positive
// and returns the survivors with their rounded sum.
func cleanItems(inputs []ItemInput, defaultProject string) ([]LineItem, decimal.Decimal) {
	items := make([]LineItem, 0, len(inputs))
	total := decimal.Zero

	for _, in := range inputs {
		amt := amount.Parse(in.Amount)
		if !amt.IsPositive() {
			continue
		}

		project := strings.TrimSpace(in.Project)
		if project == "" {
			project = defaultProject
		}

		items = append(items, LineItem{
			ID:          uuid.New(),
			Destination: strings.TrimSpace(in.Destination),
			Reason:      strings.TrimSpace(in.Reason),
			Project:     project,
			CostCenter:  strings.TrimSpace(in.CostCenter),
			Amount:      amt,
		})
		total = total.Add(amt)
	}

	return items, amount.Round(total)
}
