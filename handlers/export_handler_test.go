package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/services"
	"github.com/Dosada05/tournament-manager/storage"
)

type bucket map[string][]byte

func (b bucket) Upload(_ context.Context, key, _ string, r io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b[key] = data
	return &storage.UploadResult{Key: key, Location: "https://cdn.example/" + key}, nil
}

func (b bucket) Delete(_ context.Context, key string) error {
	delete(b, key)
	return nil
}

func (b bucket) GetPublicURL(key string) string { return "https://cdn.example/" + key }

func newExportRouter(objects bucket) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewExportHandler(services.NewExportService(objects, logger))
	r := chi.NewRouter()
	r.Post("/exports", h.StoreExport)
	r.With(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(services.WithPrivilege(r.Context(), true)))
		})
	}).Delete("/exports/{exportID}", h.DeleteExport)
	return r
}

func TestExportUploadAndDelete(t *testing.T) {
	objects := bucket{}
	router := newExportRouter(objects)

	req := httptest.NewRequest(http.MethodPost, "/exports", bytes.NewReader([]byte("\x89PNG")))
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result services.ExportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Contains(t, objects, result.Key)
	assert.Equal(t, "https://cdn.example/"+result.Key, result.URL)

	name := result.Key[len("exports/"):]
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/exports/"+name, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, objects)
}

func TestExportRejectsNonImagesAndLargeBodies(t *testing.T) {
	router := newExportRouter(bucket{})

	req := httptest.NewRequest(http.MethodPost, "/exports", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/exports", bytes.NewReader(make([]byte, maxExportBytes+1)))
	req.Header.Set("Content-Type", "image/png")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
