package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"hootroost/app/auth"
	"hootroost/app/models"
	"hootroost/app/repositories"
)

const testSecret = "test-secret"

func setupTestStore(t *testing.T) *repositories.BadgerStore {
	store, err := repositories.NewInMemoryBadgerStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestRouter(t *testing.T) (*mux.Router, *repositories.BadgerStore) {
	store := setupTestStore(t)
	return SetupRoutes(store, auth.NewVerifier(testSecret)), store
}

func tokenFor(t *testing.T, id, username string) string {
	token, err := auth.NewSigner(testSecret, time.Hour).Sign(&models.User{ID: id, Username: username})
	require.NoError(t, err)
	return token
}

func request(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
