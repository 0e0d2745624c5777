// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/config"
	"github.com/MKhiriev/eagle-pass/internal/handler"
	handlerhttp "github.com/MKhiriev/eagle-pass/internal/handler/http"
	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddress(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer_Errors(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoHandlerProvided)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
			w.Write([]byte("late"))
		}
	})

	s := newHTTPServer(slow, config.Server{HTTPAddress: ":0", RequestTimeout: 20 * time.Millisecond}, logger.Nop())
	assert.Equal(t, readHeaderTimeout, s.server.ReadHeaderTimeout)

	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, requestTimeoutMessage, rec.Body.String())
}

func TestNewHTTPServer_NoTimeout(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	s := newHTTPServer(h, config.Server{HTTPAddress: ":0"}, logger.Nop())

	_, wrapped := s.server.Handler.(http.HandlerFunc)
	assert.True(t, wrapped, "handler must be used as is")
}

func TestRunServer_ShutsDownOnCancel(t *testing.T) {
	cfg := config.Server{HTTPAddress: freeAddress(t)}
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(&service.Services{}, cfg, logger.Nop())}

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", cfg.HTTPAddress)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestRunServer_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := config.Server{HTTPAddress: l.Addr().String()}
	handlers := &handler.Handlers{HTTP: handlerhttp.NewHandler(&service.Services{}, cfg, logger.Nop())}

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	err = srv.RunServer(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ListenAndServe")
}
