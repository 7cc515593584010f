// Package importer reads line items out of spreadsheet exports so a claim can
// be filled in from a file instead of typed row by row.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/movilidad/internal/encoding"
	"github.com/MrJamesThe3rd/movilidad/internal/submission"
)

// MaxRows bounds a single import.
const MaxRows = 500

var (
	ErrNoHeader    = errors.New("no header with Destino and Monto columns found")
	ErrTooManyRows = fmt.Errorf("more than %d item rows", MaxRows)
)

// separators are tried in order. Spanish-locale exports use ';' because ','
// is the decimal separator.
var separators = []rune{';', ',', '\t'}

type Result struct {
	Items     []submission.ItemInput
	Charset   string
	Separator rune
	Skipped   int // blank or amount-less rows
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r, detects the separator and the header row and returns one
// ItemInput per data row. Amounts are passed through as typed; the ledger
// normalizes them.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	utf8r, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	for _, sep := range separators {
		rows, err := readRows(raw, sep)
		if err != nil {
			continue
		}

		cols, headerIdx, ok := detectHeader(rows)
		if !ok {
			continue
		}

		res, err := parseRows(cols, rows[headerIdx+1:])
		if err != nil {
			return nil, err
		}

		res.Charset = charset
		res.Separator = sep

		return res, nil
	}

	return nil, ErrNoHeader
}

func readRows(raw []byte, sep rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return rows, nil
}

func parseRows(cols layout, rows [][]string) (*Result, error) {
	res := &Result{}

	for _, row := range rows {
		if blank(row) {
			continue
		}

		item := submission.ItemInput{
			Destination: cols.cell(row, fieldDestination),
			Reason:      cols.cell(row, fieldReason),
			Project:     cols.cell(row, fieldProject),
			CostCenter:  cols.cell(row, fieldCostCenter),
			Amount:      cols.cell(row, fieldAmount),
		}

		// Totals and footers carry an amount but nothing else.
		if item.Amount == "" || (item.Destination == "" && item.Reason == "") {
			res.Skipped++
			continue
		}

		if len(res.Items) == MaxRows {
			return nil, ErrTooManyRows
		}

		res.Items = append(res.Items, item)
	}

	return res, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
