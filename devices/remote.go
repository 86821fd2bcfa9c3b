package devices

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mobile-next/facepointer/utils"
)

const remoteTimeout = 10 * time.Second

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int64       `json:"id"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      interface{}     `json:"id"`
}

// RemoteDevice forwards input to a JSON-RPC server exposing the io_* methods,
// such as another facepointer or a mobilecli server attached to the phone.
type RemoteDevice struct {
	baseURL  string
	deviceID string
	token    string
	client   *http.Client
	nextID   atomic.Int64
}

// NewRemoteDevice targets the server at addr. deviceID may be empty to let
// the server pick its only device. token, when set, is sent as a bearer token.
func NewRemoteDevice(addr, deviceID, token string) *RemoteDevice {
	return &RemoteDevice{
		baseURL:  utils.ServerURL(addr),
		deviceID: deviceID,
		token:    token,
		client:   &http.Client{Timeout: remoteTimeout},
	}
}

func (d *RemoteDevice) ID() string {
	if d.deviceID != "" {
		return d.deviceID
	}
	return d.baseURL
}

func (d *RemoteDevice) Tap(x, y int) error {
	return d.call("io_tap", map[string]interface{}{"deviceId": d.deviceID, "x": x, "y": y})
}

func (d *RemoteDevice) LongPress(x, y, durationMs int) error {
	return d.call("io_longpress", map[string]interface{}{"deviceId": d.deviceID, "x": x, "y": y, "duration": durationMs})
}

func (d *RemoteDevice) Swipe(x1, y1, x2, y2, durationMs int) error {
	return d.call("io_swipe", map[string]interface{}{
		"deviceId": d.deviceID,
		"x1":       x1,
		"y1":       y1,
		"x2":       x2,
		"y2":       y2,
		"duration": durationMs,
	})
}

func (d *RemoteDevice) PressButton(button Button) error {
	return d.call("io_button", map[string]interface{}{"deviceId": d.deviceID, "button": string(button)})
}

func (d *RemoteDevice) call(method string, params interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      d.nextID.Add(1),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, d.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", d.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned error: %s", resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%s failed: %s (%v)", method, rpcResp.Error.Message, rpcResp.Error.Data)
	}

	utils.Verbose("remote %s ok", method)
	return nil
}
