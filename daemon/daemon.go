package daemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mobile-next/facepointer/server"
	"github.com/mobile-next/facepointer/utils"
	"github.com/sevlyar/go-daemon"
)

const (
	// DaemonEnvVar is the environment variable that marks a daemon child process
	DaemonEnvVar = "FACEPOINTER_DAEMON_CHILD"

	// shutdownRequestID is the JSON-RPC request ID for shutdown commands
	shutdownRequestID = 1
)

// Daemonize detaches the process and returns the child process handle
// If the returned process is nil, this is the child process
// If the returned process is non-nil, this is the parent process
func Daemonize() (*os.Process, error) {
	// no PID file needed
	// we don't want log file, server handles its own logging
	ctx := &daemon.Context{
		PidFileName: "",
		PidFilePerm: 0,
		LogFileName: "",
		LogFilePerm: 0,
		WorkDir:     "/",
		Umask:       027,
		Args:        os.Args,
		Env:         append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	return child, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// KillServer sends server.shutdown to the server at addr. token is sent as a
// bearer token when the server requires one.
func KillServer(addr, token string) error {
	baseURL := utils.ServerURL(addr)

	// create JSON-RPC request
	reqBody := server.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "server.shutdown",
		ID:      shutdownRequestID,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	// send request
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/rpc", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "connection refused") {
			return fmt.Errorf("server is not running on %s", baseURL)
		}
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	// check response
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return fmt.Errorf("server returned error: %s", resp.Status)
	}

	return resp.Body.Close()
}
