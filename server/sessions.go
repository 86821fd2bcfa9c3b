package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/service"
	"github.com/mobile-next/facepointer/settings"
	"github.com/mobile-next/facepointer/types"
	"github.com/mobile-next/facepointer/utils"
)

// DefaultMaxSessions bounds how many sessions a server keeps alive.
const DefaultMaxSessions = 16

// sessionStore keeps the most recently used sessions. Sessions pushed out of
// the cache, removed or purged are closed.
type sessionStore struct {
	cache *lru.Cache[string, *service.Session]
}

func newSessionStore(size int) (*sessionStore, error) {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	cache, err := lru.NewWithEvict(size, func(id string, sess *service.Session) {
		utils.Verbose("closing session %s", id)
		_ = sess.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &sessionStore{cache: cache}, nil
}

func (st *sessionStore) add(sess *service.Session) {
	if evicted := st.cache.Add(sess.ID(), sess); evicted {
		utils.Info("session limit reached, evicted least recently used session")
	}
}

func (st *sessionStore) get(id string) (*service.Session, error) {
	if id == "" {
		return nil, invalidParams("'sessionId' is required")
	}
	sess, ok := st.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	return sess, nil
}

func (st *sessionStore) remove(id string) bool {
	return st.cache.Remove(id)
}

func (st *sessionStore) list() []*service.Session {
	return st.cache.Values()
}

func (st *sessionStore) closeAll() {
	st.cache.Purge()
}

// ApplySettings pushes reloaded settings into every live session.
func (s *Server) ApplySettings(store *settings.Store) {
	for _, sess := range s.sessions.list() {
		sess.ApplySettings(store)
	}
}

type SessionCreateParams struct {
	DeviceID       string         `json:"deviceId,omitempty"`
	DryRun         bool           `json:"dryRun,omitempty"`
	ScreenWidth    int            `json:"screenWidth"`
	ScreenHeight   int            `json:"screenHeight"`
	TickIntervalMs int            `json:"tickIntervalMs,omitempty"`
	State          *service.State `json:"state,omitempty"`
	// Live sessions tick on their own from samples sent with session_push.
	Live bool `json:"live,omitempty"`
}

type SessionParams struct {
	SessionID string `json:"sessionId"`
}

type SessionTickParams struct {
	SessionID string `json:"sessionId"`
	service.Sample
}

// SessionTickResult is the engine output for one tick. Active is false when
// the session is disabled and the tick was ignored.
type SessionTickResult struct {
	engine.TickResult
	State  service.State `json:"state"`
	Active bool          `json:"active"`
}

type SessionConfigParams struct {
	SessionID string             `json:"sessionId"`
	Values    map[string]float64 `json:"values"`
}

type SessionBindingParams struct {
	SessionID string  `json:"sessionId"`
	Event     string  `json:"event"`
	Shape     string  `json:"shape"`
	Threshold float64 `json:"threshold"`
}

type SessionStateParams struct {
	SessionID string         `json:"sessionId"`
	State     *service.State `json:"state,omitempty"`
}

// handleSessionCreate starts a session. Actions are injected into deviceId or
// logged when dryRun is set. Otherwise they are only returned to the caller.
func (s *Server) handleSessionCreate(params json.RawMessage) (interface{}, error) {
	var p SessionCreateParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, invalidParams("invalid parameters: %v. Expected fields: deviceId, dryRun, screenWidth, screenHeight, live", err)
		}
	}

	opts := service.Options{
		Config:       engine.DefaultConfig(),
		Screen:       types.Size{Width: p.ScreenWidth, Height: p.ScreenHeight},
		TickInterval: time.Duration(p.TickIntervalMs) * time.Millisecond,
		State:        service.StateEnable,
	}
	if p.State != nil {
		opts.State = *p.State
	}
	if s.opts.Settings != nil {
		opts.Config = s.opts.Settings.Config()
		opts.Bindings = s.opts.Settings.Bindings()
	}

	switch {
	case p.DryRun:
		opts.Injector = devices.LogDevice{}
	case p.DeviceID != "":
		inj, err := commands.FindInjector(p.DeviceID)
		if err != nil {
			return nil, err
		}
		opts.Injector = inj
	}

	sess := service.NewSession(uuid.NewString(), opts)
	if p.Live {
		if err := sess.StartLive(); err != nil {
			return nil, err
		}
	}
	s.sessions.add(sess)
	utils.Info("created session %s", sess.ID())
	return sess.Snapshot(), nil
}

func (s *Server) handleSessionTick(params json.RawMessage) (interface{}, error) {
	var p SessionTickParams
	if err := decodeParams(params, &p, "sessionId, head, blendshapes, ts"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	res, active := sess.Tick(p.Sample)
	return SessionTickResult{TickResult: res, State: sess.State(), Active: active}, nil
}

// handleSessionPush hands the newest sample to a live session. The tick it
// feeds is observed through session_state.
func (s *Server) handleSessionPush(params json.RawMessage) (interface{}, error) {
	var p SessionTickParams
	if err := decodeParams(params, &p, "sessionId, head, blendshapes, ts"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Push(p.Sample); err != nil {
		return nil, fmt.Errorf("failed to push sample to session %s: %w", p.SessionID, err)
	}
	return okResponse, nil
}

func (s *Server) handleSessionConfig(params json.RawMessage) (interface{}, error) {
	var p SessionConfigParams
	if err := decodeParams(params, &p, "sessionId, values"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	values := make(map[engine.ConfigKey]float64, len(p.Values))
	for name, v := range p.Values {
		key, err := engine.ParseConfigKey(name)
		if err != nil {
			return nil, invalidParams("%v", err)
		}
		values[key] = v
	}
	sess.ApplyConfigs(values)

	return sess.Snapshot().Engine.Config, nil
}

func (s *Server) handleSessionBinding(params json.RawMessage) (interface{}, error) {
	var p SessionBindingParams
	if err := decodeParams(params, &p, "sessionId, event, shape, threshold"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.SetBindingByName(p.Event, p.Shape, p.Threshold); err != nil {
		if errors.Is(err, engine.ErrUnknownEventType) || errors.Is(err, engine.ErrUnknownBlendshape) {
			return nil, invalidParams("%v", err)
		}
		return nil, err
	}

	return sess.Snapshot().Engine.Bindings, nil
}

func (s *Server) handleSessionPause(params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{"state": sess.TogglePause()}, nil
}

// handleSessionState returns the session snapshot, switching state first when
// one is given.
func (s *Server) handleSessionState(params json.RawMessage) (interface{}, error) {
	var p SessionStateParams
	if err := decodeParams(params, &p, "sessionId, state"); err != nil {
		return nil, err
	}
	sess, err := s.sessions.get(p.SessionID)
	if err != nil {
		return nil, err
	}

	if p.State != nil {
		sess.SetState(*p.State)
	}
	return sess.Snapshot(), nil
}

func (s *Server) handleSessionClose(params json.RawMessage) (interface{}, error) {
	var p SessionParams
	if err := decodeParams(params, &p, "sessionId"); err != nil {
		return nil, err
	}
	if p.SessionID == "" {
		return nil, invalidParams("'sessionId' is required")
	}
	if !s.sessions.remove(p.SessionID) {
		return nil, fmt.Errorf("session not found: %s", p.SessionID)
	}
	utils.Info("closed session %s", p.SessionID)
	return okResponse, nil
}

func (s *Server) handleSessionList(params json.RawMessage) (interface{}, error) {
	sessions := s.sessions.list()
	snapshots := make([]service.Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		snapshots = append(snapshots, sess.Snapshot())
	}
	return map[string]interface{}{"sessions": snapshots}, nil
}
