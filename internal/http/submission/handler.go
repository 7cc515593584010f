package submission

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

// maxBodyBytes bounds a claim body.
const maxBodyBytes = 1 << 20

type Ledger interface {
	Submit(ctx context.Context, params submission.SubmitParams) (*submission.Result, error)
	Accumulated(ctx context.Context, workerID, date string) (*submission.DailyUsage, error)
	List(ctx context.Context, filter submission.ListFilter) ([]*submission.Submission, error)
	Get(ctx context.Context, id uuid.UUID) (*submission.Submission, error)
}

type Handler struct {
	svc Ledger
	log *zap.Logger
}

func NewHandler(svc Ledger, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/", h.submit)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

func (h *Handler) WorkerRoutes(r chi.Router) {
	r.Get("/{id}/accumulated", h.accumulated)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(submission.KindValidation),
			Message: "invalid request body: " + err.Error(),
		})

		return
	}

	res, err := h.svc.Submit(r.Context(), req.params())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toReceipt(res))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := submission.ListFilter{
		WorkerID: strings.TrimSpace(r.URL.Query().Get("worker_id")),
	}

	if s := r.URL.Query().Get("date"); s != "" {
		d, err := submission.ParseDate(s)
		if err != nil {
			h.writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   string(submission.KindValidation),
				Message: "date must be YYYY-MM-DD",
			})

			return
		}

		filter.Date = &d
	}

	subs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toResponseList(subs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   string(submission.KindValidation),
			Message: "invalid id",
		})

		return
	}

	sub, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toResponse(sub))
}

func (h *Handler) accumulated(w http.ResponseWriter, r *http.Request) {
	usage, err := h.svc.Accumulated(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUsage(usage))
}

var statusByKind = map[submission.Kind]int{
	submission.KindValidation:      http.StatusBadRequest,
	submission.KindWorkerNotFound:  http.StatusNotFound,
	submission.KindNotFound:        http.StatusNotFound,
	submission.KindWorkerInactive:  http.StatusForbidden,
	submission.KindEmptySubmission: http.StatusUnprocessableEntity,
	submission.KindCapExceeded:     http.StatusConflict,
	submission.KindPersistence:     http.StatusServiceUnavailable,
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	kind := submission.KindOf(err)
	status := statusByKind[kind]

	resp := errorResponse{Error: string(kind), Message: err.Error()}

	var capErr *submission.CapExceededError
	if errors.As(err, &capErr) {
		resp.Accumulated = amount.Format(capErr.Accumulated)
		resp.Attempted = amount.Format(capErr.Attempted)
		resp.Cap = amount.Format(capErr.Cap)
		resp.Remaining = amount.Format(capErr.Remaining())
	}

	// Storage details stay in the logs.
	if kind == submission.KindPersistence {
		h.log.Error("ledger unavailable", zap.Error(err))
		resp.Message = "ledger temporarily unavailable, retry later"
	}

	h.writeJSON(w, status, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}
