package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-manager/brackets"
	"github.com/Dosada05/tournament-manager/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: g1", services.ErrGroupNotFound), http.StatusNotFound},
		{services.ErrArchiveNotFound, http.StatusNotFound},
		{services.ErrTeamNameConflict, http.StatusConflict},
		{services.ErrTeamAlreadyInContainer, http.StatusConflict},
		{services.ErrNameRequired, http.StatusBadRequest},
		{services.ErrUnsupportedExportType, http.StatusBadRequest},
		{fmt.Errorf("%w: 6", brackets.ErrNotPowerOfTwo), http.StatusUnprocessableEntity},
		{services.ErrManualModeRequired, http.StatusUnprocessableEntity},
		{services.ErrNoChampion, http.StatusUnprocessableEntity},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrForbiddenOperation, http.StatusForbidden},
		{services.ErrExportUnavailable, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body, "error")
		})
	}
}

func TestServerErrorHidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	mapServiceErrorToHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("password=hunter2"))
	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestDecodeAndValidate(t *testing.T) {
	decode := func(body string) (*httptest.ResponseRecorder, services.ZoneInput, bool) {
		var input services.ZoneInput
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		ok := decodeAndValidate(rec, req, &input)
		return rec, input, ok
	}

	_, input, ok := decode(`{"name":"Playoff","rankMin":1,"rankMax":4}`)
	require.True(t, ok)
	assert.Equal(t, 4, input.RankMax)

	rec, _, ok := decode(`{"name":"Playoff",`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _, ok = decode(`{"name":"Playoff","rankMin":1,"rankMax":4,"extra":true}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _, ok = decode(`{"name":"Playoff","rankMin":3,"rankMax":2}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Error map[string]string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "rankMax")
}
