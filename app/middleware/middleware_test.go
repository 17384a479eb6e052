package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hootroost/app/auth"
	"hootroost/app/models"
	"hootroost/app/repositories/mock"
)

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLogger(t *testing.T) {
	buf := captureLog(t)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "GET")
	assert.Contains(t, logOutput, "/test")
	assert.Contains(t, logOutput, "418")
	assert.Contains(t, logOutput, "took")
}

func TestRecoverer(t *testing.T) {
	buf := captureLog(t)

	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"err":"internal server error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
	assert.NotContains(t, w.Body.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	for _, path := range []string{"/hoots", "/healthz", "/"} {
		t.Run(path, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestAuthenticate(t *testing.T) {
	users := mock.NewUserRepository()
	signer := auth.NewSigner("secret", time.Hour)
	mw := Authenticate(auth.NewVerifier("secret"), users)

	var seen *models.User
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing token", func(t *testing.T) {
		seen = nil
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/hoots", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unauthorized", body["err"])
		assert.Nil(t, seen)
	})

	t.Run("bad token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest("GET", "/hoots", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := signer.Sign(&models.User{ID: "u1", Username: "owl"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/hoots", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "u1", seen.ID)

		profile, err := users.GetByID(context.Background(), "u1")
		require.NoError(t, err)
		assert.Equal(t, "owl", profile.Username)
	})
}

func TestUserFromContextEmpty(t *testing.T) {
	assert.Nil(t, UserFromContext(context.Background()))
}
