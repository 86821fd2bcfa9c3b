package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mobile-next/facepointer/utils"
)

// HandlerFunc is the signature for JSON-RPC method handlers
type HandlerFunc func(params json.RawMessage) (interface{}, error)

// paramsError marks a handler failure caused by the request parameters.
type paramsError struct {
	msg string
}

func (e *paramsError) Error() string {
	return e.msg
}

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{msg: fmt.Sprintf(format, args...)}
}

// rpcError is the error member of a JSON-RPC response.
type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func invalidRequest(data string) *rpcError {
	return &rpcError{Code: ErrCodeInvalidRequest, Message: "Invalid Request", Data: data}
}

func errorResponse(id interface{}, e *rpcError) JSONRPCResponse {
	return JSONRPCResponse{JSONRPC: "2.0", Error: e, ID: id}
}

// call validates req and runs its method. The HTTP and WebSocket transports
// both go through it.
func (s *Server) call(req JSONRPCRequest) (interface{}, *rpcError) {
	switch {
	case req.JSONRPC != "2.0":
		return nil, invalidRequest("'jsonrpc' must be '2.0'")
	case req.ID == nil:
		return nil, invalidRequest("'id' field is required")
	case req.Method == "":
		return nil, invalidRequest("'method' is required")
	}

	utils.Verbose("Request ID: %v, Method: %s, Params: %s", req.ID, req.Method, string(req.Params))

	handler, exists := s.methods[req.Method]
	if !exists {
		return nil, &rpcError{Code: ErrCodeMethodNotFound, Message: "Method not found", Data: fmt.Sprintf("Method '%s' not found", req.Method)}
	}

	result, err := handler(req.Params)
	if err != nil {
		utils.Warn("Error executing method %s: %v", req.Method, err)
		code, message := errorCode(err)
		return nil, &rpcError{Code: code, Message: message, Data: err.Error()}
	}
	return result, nil
}

func errorCode(err error) (int, string) {
	var pe *paramsError
	if errors.As(err, &pe) {
		return ErrCodeInvalidParams, "Invalid params"
	}
	return ErrCodeServerError, "Server error"
}

// decodeParams unmarshals required params, naming the expected fields on failure.
func decodeParams(params json.RawMessage, v interface{}, fields string) error {
	if len(params) == 0 {
		return invalidParams("'params' is required with fields: %s", fields)
	}
	if err := json.Unmarshal(params, v); err != nil {
		return invalidParams("invalid parameters: %v. Expected fields: %s", err, fields)
	}
	return nil
}

// methodRegistry returns a map of method names to handler functions.
// The HTTP and WebSocket transports share it.
func (s *Server) methodRegistry() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"devices":         handleDevicesList,
		"io_tap":          handleIoTap,
		"io_longpress":    handleIoLongPress,
		"io_swipe":        handleIoSwipe,
		"io_button":       handleIoButton,
		"session_create":  s.handleSessionCreate,
		"session_tick":    s.handleSessionTick,
		"session_push":    s.handleSessionPush,
		"session_config":  s.handleSessionConfig,
		"session_binding": s.handleSessionBinding,
		"session_pause":   s.handleSessionPause,
		"session_state":   s.handleSessionState,
		"session_close":   s.handleSessionClose,
		"session_list":    s.handleSessionList,
		"server.shutdown": s.handleShutdown,
	}
}

// Execute dispatches a method call using the registry.
// This is the main entry point for embedded clients.
func (s *Server) Execute(method string, params json.RawMessage) (interface{}, error) {
	handler, exists := s.methods[method]
	if !exists {
		return nil, fmt.Errorf("method not found: %s", method)
	}

	return handler(params)
}

func (s *Server) handleShutdown(params json.RawMessage) (interface{}, error) {
	s.requestShutdown()
	return okResponse, nil
}
