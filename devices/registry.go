package devices

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mobile-next/facepointer/utils"
)

// Registry resolves device ids to injectors, caching what it has found.
// Injectors added explicitly (remote or dry-run) take precedence over adb.
type Registry struct {
	mu        sync.RWMutex
	injectors map[string]Injector
	discover  func() ([]*AndroidDevice, error)
}

// NewRegistry returns a registry that discovers Android devices through adb.
func NewRegistry() *Registry {
	return &Registry{
		injectors: make(map[string]Injector),
		discover:  GetAndroidDevices,
	}
}

// Add registers an injector under its ID.
func (r *Registry) Add(inj Injector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.injectors[inj.ID()] = inj
}

// Find returns the injector for deviceID. An empty id selects the only
// available device and fails when there are none or several.
func (r *Registry) Find(deviceID string) (Injector, error) {
	r.mu.RLock()
	if inj, ok := r.injectors[deviceID]; ok && deviceID != "" {
		r.mu.RUnlock()
		return inj, nil
	}
	known := len(r.injectors)
	r.mu.RUnlock()

	if deviceID == "" && known == 1 {
		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, inj := range r.injectors {
			return inj, nil
		}
	}

	found, err := r.discover()
	if err != nil {
		utils.Verbose("Warning: Failed to get Android devices: %v", err)
		found = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range found {
		if _, exists := r.injectors[d.ID()]; !exists {
			r.injectors[d.ID()] = d
		}
	}

	if deviceID != "" {
		if inj, ok := r.injectors[deviceID]; ok {
			return inj, nil
		}
		return nil, fmt.Errorf("device not found: %s", deviceID)
	}

	switch len(r.injectors) {
	case 0:
		return nil, fmt.Errorf("no online devices found")
	case 1:
		for _, inj := range r.injectors {
			return inj, nil
		}
	}
	return nil, fmt.Errorf("multiple devices found (%d), please specify --device with one of: [%s]",
		len(r.injectors), strings.Join(r.idsLocked(), ", "))
}

// IDs lists the known device ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.idsLocked()
}

func (r *Registry) idsLocked() []string {
	ids := make([]string, 0, len(r.injectors))
	for id := range r.injectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
