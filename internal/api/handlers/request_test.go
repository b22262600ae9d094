package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuery(t *testing.T) {
	type query struct {
		Date     string `schema:"date" validate:"required"`
		Duration int    `schema:"durationMinutes" validate:"gte=0"`
	}

	var q query
	req := httptest.NewRequest(http.MethodGet, "/?date=2025-06-03&durationMinutes=90&utm=x", nil)
	require.NoError(t, DecodeQuery(req, &q))
	assert.Equal(t, query{Date: "2025-06-03", Duration: 90}, q)
	assert.NoError(t, Validate(q))

	var bad query
	req = httptest.NewRequest(http.MethodGet, "/?durationMinutes=abc", nil)
	assert.Error(t, DecodeQuery(req, &bad))

	assert.Error(t, Validate(query{Duration: -1}))
}

func TestPathInt64(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"artistId": "7"})
	id, err := PathInt64(req, "artistId")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"artistId": "0"})
	_, err = PathInt64(req, "artistId")
	assert.Error(t, err)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"artistId": "x"})
	_, err = PathInt64(req, "artistId")
	assert.Error(t, err)
}
