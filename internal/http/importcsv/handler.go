package importcsv

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
	"github.com/MrJamesThe3rd/movilidad/internal/importer"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

const maxUploadBytes = 10 << 20

type Parser interface {
	Parse(r io.Reader) (*importer.Result, error)
}

// Handler turns an uploaded spreadsheet into a preview of line items. Nothing
// is recorded; the client reviews the rows and posts them as a claim.
type Handler struct {
	parser Parser
	log    *zap.Logger
}

func NewHandler(parser Parser, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return &Handler{parser: parser, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type itemPreview struct {
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
	Project     string `json:"project"`
	CostCenter  string `json:"cost_center"`
	Amount      string `json:"amount"`
	Parsed      string `json:"parsed_amount"`
	// Kept is false when the ledger would drop the row for a non-positive amount.
	Kept bool `json:"kept"`
}

type previewResponse struct {
	Charset   string        `json:"charset"`
	Separator string        `json:"separator"`
	Skipped   int           `json:"skipped"`
	Dropped   int           `json:"dropped"`
	Total     string        `json:"total"`
	Items     []itemPreview `json:"items"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.parser.Parse(file)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, importer.ErrNoHeader) || errors.Is(err, importer.ErrTooManyRows) {
			status = http.StatusUnprocessableEntity
		}

		http.Error(w, err.Error(), status)

		return
	}

	h.log.Info("items imported",
		zap.Int("items", len(res.Items)),
		zap.Int("skipped", res.Skipped),
		zap.String("charset", res.Charset),
	)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPreview(res)); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

func toPreview(res *importer.Result) previewResponse {
	resp := previewResponse{
		Charset:   res.Charset,
		Separator: string(res.Separator),
		Skipped:   res.Skipped,
		Items:     make([]itemPreview, 0, len(res.Items)),
	}

	total := decimal.Zero

	for _, it := range res.Items {
		resp.Items = append(resp.Items, preview(it))

		parsed := amount.Parse(it.Amount)
		if !parsed.IsPositive() {
			resp.Dropped++
			continue
		}

		total = total.Add(parsed)
	}

	resp.Total = amount.Format(amount.Round(total))

	return resp
}

func preview(it submission.ItemInput) itemPreview {
	parsed := amount.Parse(it.Amount)

	return itemPreview{
		Destination: it.Destination,
		Reason:      it.Reason,
		Project:     it.Project,
		CostCenter:  it.CostCenter,
		Amount:      it.Amount,
		Parsed:      amount.Format(parsed),
		Kept:        parsed.IsPositive(),
	}
}
