package importcsv_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/movilidad/internal/http/importcsv"
	"github.com/MrJamesThe3rd/movilidad/internal/importer"
)

func upload(t *testing.T, field, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(field, "planilla.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func newServer() http.Handler {
	r := chi.NewRouter()
	r.Route("/import", importcsv.NewHandler(importer.NewParser(), nil).Routes)

	return r
}

func TestHandler_Import(t *testing.T) {
	csv := "Destino;Motivo;Monto\nSurco;Visita;20,00\nSan Borja;Retorno;0\nLince;Taxi;S/ 7,5\n"

	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, upload(t, "file", csv))

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Separator string `json:"separator"`
		Dropped   int    `json:"dropped"`
		Total     string `json:"total"`
		Items     []struct {
			Amount string `json:"amount"`
			Parsed string `json:"parsed_amount"`
			Kept   bool   `json:"kept"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	assert.Equal(t, ";", out.Separator)
	assert.Equal(t, 1, out.Dropped)
	assert.Equal(t, "27.50", out.Total)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "S/ 7,5", out.Items[2].Amount)
	assert.Equal(t, "7.50", out.Items[2].Parsed)
	assert.False(t, out.Items[1].Kept)
}

func TestHandler_ImportErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, upload(t, "other", "Destino;Monto\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	newServer().ServeHTTP(rec, upload(t, "file", "Fecha;Valor\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
