package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusNotFound, "PostNotFound", "post not found: 7")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "PostNotFound", body.Error)
	assert.Equal(t, "post not found: 7", body.Message)
}

func TestWriteJSON_NilPointerIsNull(t *testing.T) {
	var state *bool
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, state)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "null", w.Body.String())
}
