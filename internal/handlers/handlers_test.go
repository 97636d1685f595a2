package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"theinsight/internal/services"
	"theinsight/internal/utils/helpers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	cases := map[string]bool{"42": true, "0": false, "-3": false, "abc": false, "": false}
	for raw, ok := range cases {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		id, err := pathID(r, "id")
		if ok {
			require.NoError(t, err, raw)
			assert.Equal(t, int64(42), id)
		} else {
			assert.ErrorIs(t, err, errInvalidID, raw)
		}
	}
}

func TestPageFrom(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	p := pageFrom(r, 10)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 500, p.Limit)

	r = httptest.NewRequest(http.MethodGet, "/?page=-1&limit=x", nil)
	p = pageFrom(r, 10)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 10, p.Limit)
}

func TestBoolParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?featured=TRUE&trending=false&pick=yes", nil)
	require.NotNil(t, boolParam(r, "featured"))
	assert.True(t, *boolParam(r, "featured"))
	require.NotNil(t, boolParam(r, "trending"))
	assert.False(t, *boolParam(r, "trending"))
	assert.Nil(t, boolParam(r, "pick"))
	assert.Nil(t, boolParam(r, "missing"))
}

func serviceError(t *testing.T, err error) (int, helpers.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	writeServiceError(rec, httptest.NewRequest(http.MethodGet, "/x", nil), err, "Failed to do the thing")
	var resp helpers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestWriteServiceError(t *testing.T) {
	t.Cleanup(func() { SetExposeErrors(false) })

	code, resp := serviceError(t, fmt.Errorf("wrap: %w", &services.NotFoundError{Entity: "Video"}))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Video not found", resp.Message)

	code, _ = serviceError(t, services.ErrInvalidPosition)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serviceError(t, services.ErrCommentsDisabled)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = serviceError(t, services.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = serviceError(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to do the thing", resp.Message)
	assert.Empty(t, resp.Error)

	SetExposeErrors(true)
	_, resp = serviceError(t, errors.New("connection reset"))
	assert.Equal(t, "connection reset", resp.Error)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(pingerFunc(func(context.Context) error { return nil })).
		Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"OK"`)

	rec = httptest.NewRecorder()
	NewHealthHandler(pingerFunc(func(context.Context) error { return errors.New("down") })).
		Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Database is unavailable")
}
