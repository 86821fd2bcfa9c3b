package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mobile-next/facepointer/settings"
	"github.com/mobile-next/facepointer/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Parse error: Invalid JSON was received by the server
	ErrCodeParseError = -32700

	// Invalid Request: The JSON sent is not a valid Request object
	ErrCodeInvalidRequest = -32600

	// Method not found: The method does not exist / is not available
	ErrCodeMethodNotFound = -32601

	// Server error: Internal JSON-RPC error
	ErrCodeServerError = -32000

	// Invalid params: Invalid method parameters
	ErrCodeInvalidParams = -32602

	// Internal error: Internal JSON-RPC error
	ErrCodeInternalError = -32603
)

// Server timeouts
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Second
	IdleTimeout     = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

var okResponse = map[string]interface{}{"status": "ok"}

type JSONRPCRequest struct {
	// these fields are all omitempty, so we can report back to client if they are missing
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      interface{}     `json:"id,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Options configures a Server.
type Options struct {
	EnableCORS bool
	// Token, when set, must be presented as a bearer token on every request.
	Token string
	// Settings seeds new sessions; nil uses engine defaults and no bindings.
	Settings *settings.Store
	// WatchSettings reloads Settings into live sessions when the file changes.
	WatchSettings bool
	MaxSessions int
}

// Server exposes pointer sessions and input injection over JSON-RPC.
type Server struct {
	opts     Options
	sessions *sessionStore
	methods  map[string]HandlerFunc

	shutdownOnce sync.Once
	done         chan struct{}
}

// New creates a server. It does not listen until Serve or StartServer is called.
func New(opts Options) (*Server, error) {
	sessions, err := newSessionStore(opts.MaxSessions)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		sessions: sessions,
		done:     make(chan struct{}),
	}
	s.methods = s.methodRegistry()
	return s, nil
}

// corsMiddleware handles CORS preflight requests and adds CORS headers to responses.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware rejects requests without the expected bearer token. Browsers
// cannot set headers on WebSocket upgrades, so a token query parameter is
// accepted as well.
func authMiddleware(token string, next http.Handler) http.Handler {
	expected := []byte(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		presented := r.URL.Query().Get("token")
		if header := r.Header.Get("Authorization"); header != "" {
			presented = strings.TrimPrefix(header, "Bearer ")
		}

		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			utils.Verbose("rejected unauthenticated request to %s", r.URL.Path)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the HTTP handler serving /, /rpc, /ws and /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", sendBanner)
	mux.HandleFunc("/rpc", s.handleJSONRPC)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	if s.opts.Token != "" {
		handler = authMiddleware(s.opts.Token, handler)
	}
	if s.opts.EnableCORS {
		handler = corsMiddleware(handler)
	}
	return handler
}

// Done is closed once a client has requested server.shutdown.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) requestShutdown() {
	s.shutdownOnce.Do(func() {
		close(s.done)
	})
}

// Close closes every live session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

// NormalizeListenAddr turns a bare port into ":port".
func NormalizeListenAddr(addr string) (string, error) {
	// if host is missing, default to localhost
	if !strings.Contains(addr, ":") {
		// convert addr to integer
		port, err := strconv.Atoi(addr)
		if err != nil {
			return "", fmt.Errorf("invalid port: %v", err)
		}

		addr = fmt.Sprintf(":%d", port)
	}
	return addr, nil
}

// StartServer listens on addr until a server.shutdown request arrives.
func StartServer(addr string, opts Options) error {
	addr, err := NormalizeListenAddr(addr)
	if err != nil {
		return err
	}

	s, err := New(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.Settings != nil && opts.WatchSettings {
		watcher, err := settings.Watch(opts.Settings, s.ApplySettings)
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	go func() {
		<-s.Done()
		utils.Info("Shutdown requested, stopping server")
		ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			utils.Warn("server shutdown: %v", err)
		}
	}()

	utils.Info("Starting server on http://%s...", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONRPCError(w, nil, ErrCodeParseError, "Parse error", "expecting jsonrpc payload")
		return
	}

	result, rerr := s.call(req)
	if rerr != nil {
		sendJSONRPCError(w, req.ID, rerr.Code, rerr.Message, rerr.Data)
		return
	}

	sendJSONRPCResponse(w, req.ID, result)
}

func sendJSONRPCResponse(w http.ResponseWriter, id interface{}, result interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendJSONRPCError(w http.ResponseWriter, id interface{}, code int, message string, data interface{}) {
	response := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: map[string]interface{}{
			"code":    code,
			"message": message,
			"data":    data,
		},
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func sendBanner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse)
}
