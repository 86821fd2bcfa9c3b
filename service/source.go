package service

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/mobile-next/facepointer/types"
)

// Sample is one face tracker result.
type Sample struct {
	Head        types.Vec2 `json:"head"`
	Blendshapes []float64  `json:"blendshapes"`
	// TimestampMs is when the tracker produced the sample; 0 means unknown.
	TimestampMs int64 `json:"ts,omitempty"`
	// Screen overrides the session screen size when set, e.g. after a rotation.
	Screen *types.Size `json:"screen,omitempty"`
}

// TickSource yields the sample to use on the next tick. ready is false while
// no sample is available and the tick should be skipped; ok is false once the
// source is exhausted.
type TickSource interface {
	Next() (sample Sample, ready, ok bool)
}

// LatestSource holds the newest sample pushed by a tracker. Every tick sees
// the most recent sample, repeated until a newer one arrives.
type LatestSource struct {
	mu     sync.Mutex
	sample Sample
	have   bool
	closed bool
}

// Push replaces the current sample.
func (l *LatestSource) Push(s Sample) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sample = s
	l.have = true
}

// Close makes Next report exhaustion.
func (l *LatestSource) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *LatestSource) Next() (Sample, bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return Sample{}, false, false
	}
	return l.sample, l.have, true
}

// ReplaySource reads recorded samples, one JSON object per line.
type ReplaySource struct {
	scanner *bufio.Scanner
	line    int
	err     error
}

// NewReplaySource reads samples from r.
func NewReplaySource(r io.Reader) *ReplaySource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &ReplaySource{scanner: scanner}
}

func (r *ReplaySource) Next() (Sample, bool, bool) {
	for r.err == nil && r.scanner.Scan() {
		r.line++
		data := r.scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var s Sample
		if err := json.Unmarshal(data, &s); err != nil {
			r.err = fmt.Errorf("line %d: %w", r.line, err)
			return Sample{}, false, false
		}
		return s, true, true
	}
	if r.err == nil {
		r.err = r.scanner.Err()
	}
	return Sample{}, false, false
}

// Err returns the first read or decode error, if any.
func (r *ReplaySource) Err() error {
	return r.err
}
