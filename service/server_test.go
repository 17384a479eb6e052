package service

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hootroost/app/auth"
	"hootroost/app/config"
	"hootroost/app/repositories"
	"hootroost/app/routes"
)

func TestServeGracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := fmt.Sprintf("http://%s", listener.Addr())

	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		// Simulate work.
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, listener, handler, time.Second)
	}()

	respCh := make(chan *http.Response, 1)
	go func() {
		resp, err := http.Get(url + "/")
		if err == nil {
			respCh <- resp
		}
		close(respCh)
	}()

	<-started
	cancel()

	require.NoError(t, <-done)
	resp, ok := <-respCh
	require.True(t, ok, "in-flight request should complete")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeRoutes(t *testing.T) {
	store, err := repositories.NewInMemoryBadgerStore()
	require.NoError(t, err)
	defer store.Close()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	url := fmt.Sprintf("http://%s", listener.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, listener, routes.SetupRoutes(store, auth.NewVerifier("secret")), time.Second)
	}()

	resp, err := http.Get(url + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, err = http.Get(url + "/hoots")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cancel()
	require.NoError(t, <-done)
}

func TestRunServerRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	var code int
	output := captureOutput(func() {
		code = RunServer(cfg)
	})
	assert.Equal(t, 1, code)
	assert.Contains(t, output, "Invalid configuration")
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), &config.Config{Store: config.StoreConfig{Driver: "sqlite"}})
	assert.ErrorContains(t, err, "unknown store driver")
}
