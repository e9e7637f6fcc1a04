package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sessionauth/internal/mocks"
)

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second)
	assert.Equal(t, ":0", s.Address())
}

func TestHTTPServer_Stop_NotStarted(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestHTTPServer_Start_ListenError(t *testing.T) {
	s := NewHTTPServer(http.NotFoundHandler(), ":0", time.Second)
	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(nil, assert.AnError)

	err := s.Start(sec)
	require.ErrorIs(t, err, assert.AnError)
}

func TestHTTPServer_Start_ServesUntilStopped(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := NewHTTPServer(h, ":0", time.Second)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", ":0").Return(ln, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(sec) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))
	require.NoError(t, <-errCh)
}
