package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusBadRequest, CodeValidation.Status())
	assert.Equal(t, http.StatusBadRequest, CodeConflict.Status())
	assert.Equal(t, http.StatusUnauthorized, CodeUnauthorized.Status())
	assert.Equal(t, http.StatusBadGateway, CodeUnavailable.Status())
	assert.Equal(t, http.StatusInternalServerError, CodeUpstreamText.Status())
	assert.Equal(t, http.StatusInternalServerError, CodeUpstreamImage.Status())
	assert.Equal(t, http.StatusInternalServerError, CodeConfiguration.Status())
	assert.Equal(t, http.StatusInternalServerError, CodeInternal.Status())
}

func TestWriteError_TaxonomyError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	WriteError(rec, req, E(CodeValidation, "prompt is required"), false)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "prompt is required", resp.Error)
	assert.Equal(t, CodeValidation, resp.Code)
	assert.Empty(t, resp.Details)
}

func TestWriteError_DetailsOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, "image provider unreachable", cause)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	WriteError(rec, req, err, true)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "connection refused", resp.Details)

	rec = httptest.NewRecorder()
	WriteError(rec, req, err, false)
	resp = ErrorResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Details)
}

func TestWriteError_UnknownErrorBecomesInternal(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	WriteError(rec, req, errors.New("boom"), false)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternal, resp.Code)
	assert.Equal(t, "internal server error", resp.Error)
}
