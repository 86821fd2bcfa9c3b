package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mobile-next/facepointer/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKillServer_SendsShutdown(t *testing.T) {
	var got server.JSONRPCRequest
	var auth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	require.NoError(t, KillServer(ts.URL, "abc"))
	assert.Equal(t, "server.shutdown", got.Method)
	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, "Bearer abc", auth)
}

func TestKillServer_StopsRealServer(t *testing.T) {
	s, err := server.New(server.Options{})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	require.NoError(t, KillServer(ts.URL, ""))
	select {
	case <-s.Done():
	default:
		t.Fatal("server did not receive shutdown")
	}
}

func TestKillServer_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	err := KillServer(ts.URL, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestIsChild(t *testing.T) {
	t.Setenv(DaemonEnvVar, "1")
	assert.True(t, IsChild())

	t.Setenv(DaemonEnvVar, "")
	assert.False(t, IsChild())
}
