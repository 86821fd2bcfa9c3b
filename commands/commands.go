package commands

import (
	"fmt"
	"sync"

	"github.com/mobile-next/facepointer/devices"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

var (
	registryMu     sync.Mutex
	deviceRegistry *devices.Registry
)

// SetRegistry sets the registry commands resolve device ids against. It is
// called once at startup, before any command runs.
func SetRegistry(registry *devices.Registry) {
	registryMu.Lock()
	defer registryMu.Unlock()
	deviceRegistry = registry
}

// GetRegistry returns the registry, creating an adb-backed one on first use.
func GetRegistry() *devices.Registry {
	registryMu.Lock()
	defer registryMu.Unlock()
	if deviceRegistry == nil {
		deviceRegistry = devices.NewRegistry()
	}
	return deviceRegistry
}

// FindInjector finds a device by ID, or auto-selects the only one if deviceID is empty
func FindInjector(deviceID string) (devices.Injector, error) {
	inj, err := GetRegistry().Find(deviceID)
	if err != nil {
		return nil, fmt.Errorf("error finding device: %w", err)
	}
	return inj, nil
}
