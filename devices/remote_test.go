package devices

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedCall struct {
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
	Auth   string                 `json:"-"`
}

func newRPCServer(t *testing.T, fail bool) (*httptest.Server, *[]capturedCall) {
	t.Helper()
	var calls []capturedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc", r.URL.Path)
		var req struct {
			JSONRPC string                 `json:"jsonrpc"`
			Method  string                 `json:"method"`
			Params  map[string]interface{} `json:"params"`
			ID      interface{}            `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		calls = append(calls, capturedCall{Method: req.Method, Params: req.Params, Auth: r.Header.Get("Authorization")})

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		if fail {
			resp["error"] = map[string]interface{}{"code": -32000, "message": "Server error", "data": "device not found: x"}
		} else {
			resp["result"] = map[string]interface{}{"status": "ok"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRemoteDevice_SendsJSONRPC(t *testing.T) {
	srv, calls := newRPCServer(t, false)
	d := NewRemoteDevice(srv.URL, "emulator-5554", "secret")

	require.NoError(t, d.Tap(10, 20))
	require.NoError(t, d.LongPress(1, 2, 1000))
	require.NoError(t, d.Swipe(1, 2, 3, 4, 100))
	require.NoError(t, d.PressButton(ButtonBack))

	require.Len(t, *calls, 4)
	assert.Equal(t, "io_tap", (*calls)[0].Method)
	assert.Equal(t, float64(20), (*calls)[0].Params["y"])
	assert.Equal(t, "emulator-5554", (*calls)[0].Params["deviceId"])
	assert.Equal(t, "Bearer secret", (*calls)[0].Auth)
	assert.Equal(t, "io_longpress", (*calls)[1].Method)
	assert.Equal(t, float64(1000), (*calls)[1].Params["duration"])
	assert.Equal(t, "io_swipe", (*calls)[2].Method)
	assert.Equal(t, float64(4), (*calls)[2].Params["y2"])
	assert.Equal(t, "io_button", (*calls)[3].Method)
	assert.Equal(t, "back", (*calls)[3].Params["button"])

	assert.Equal(t, "emulator-5554", d.ID())
}

func TestRemoteDevice_ReportsRPCErrors(t *testing.T) {
	srv, _ := newRPCServer(t, true)
	d := NewRemoteDevice(srv.URL, "", "")

	err := d.Tap(1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device not found")
	assert.Equal(t, srv.URL, d.ID())
}

func TestRemoteDevice_HTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewRemoteDevice(srv.URL, "", "").PressButton(ButtonHome)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
