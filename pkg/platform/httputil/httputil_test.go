package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/pkg/domainerrors"
	"github.com/aohus/political-metrics/pkg/platform/sentinel"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code, body.Error.Message
}

func TestWriteError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("loading bill: %w", sentinel.ErrNotFound))

	assert.Equal(t, 404, rec.Code)
	code, _ := decodeError(t, rec)
	assert.Equal(t, "not_found", code)
}

func TestWriteError_Unavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("stats cache: %w", sentinel.ErrUnavailable))

	assert.Equal(t, 503, rec.Code)
}

func TestWriteError_DomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, domainerrors.New(domainerrors.CodeValidation, "limit must be a number"))

	assert.Equal(t, 400, rec.Code)
	code, message := decodeError(t, rec)
	assert.Equal(t, string(domainerrors.CodeValidation), code)
	assert.Equal(t, "limit must be a number", message)
}

func TestWriteError_UnclassifiedHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("pq: connection refused"))

	assert.Equal(t, 500, rec.Code)
	code, message := decodeError(t, rec)
	assert.Equal(t, string(domainerrors.CodeInternal), code)
	assert.Equal(t, "internal error", message)
}
