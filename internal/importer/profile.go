package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/movilidad/internal/textnorm"
)

type field int

const (
	fieldDestination field = iota
	fieldReason
	fieldProject
	fieldCostCenter
	fieldAmount
)

// aliases lists the header spellings accepted for each field, already folded.
// Adding a spelling is just adding it here.
var aliases = map[field][]string{
	fieldDestination: {"destino", "lugar", "destination"},
	fieldReason:      {"motivo", "descripcion", "concepto", "reason"},
	fieldProject:     {"proyecto", "project"},
	fieldCostCenter:  {"centro de costo", "centro de costos", "ceco", "cost center"},
	fieldAmount:      {"monto", "importe", "amount"},
}

// required are the fields a row must be able to fill for a header to count.
var required = []field{fieldDestination, fieldAmount}

// layout maps fields to column indexes in the detected header.
type layout map[field]int

// detectHeader returns the layout of the first row holding every required
// field, and that row's index.
func detectHeader(rows [][]string) (layout, int, bool) {
	for rowIdx, row := range rows {
		cols := make(layout)

		for i, cell := range row {
			f, ok := lookup(cell)
			if !ok {
				continue
			}

			if _, seen := cols[f]; !seen {
				cols[f] = i
			}
		}

		if cols.complete() {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func (l layout) complete() bool {
	for _, f := range required {
		if _, ok := l[f]; !ok {
			return false
		}
	}

	return true
}

func (l layout) cell(row []string, f field) string {
	idx, ok := l[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func lookup(header string) (field, bool) {
	name := fold(header)

	for f, names := range aliases {
		for _, n := range names {
			if n == name {
				return f, true
			}
		}
	}

	return 0, false
}

// fold lowercases, strips accents and collapses inner whitespace so that
// "Centro de  Costo " and "centro de costo" compare equal.
func fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(textnorm.StripAccents(s))), " ")
}
