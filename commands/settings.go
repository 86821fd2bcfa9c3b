package commands

import (
	"fmt"

	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/settings"
)

// ConfigEntry is one tunable as shown to users.
type ConfigEntry struct {
	Key   engine.ConfigKey `json:"key"`
	Raw   *int             `json:"raw,omitempty"`
	Value float64          `json:"value"`
}

// ConfigGetCommand shows one tunable, or all of them when key is empty.
func ConfigGetCommand(store *settings.Store, key string) *CommandResponse {
	keys := engine.ConfigKeys()
	if key != "" {
		k, err := engine.ParseConfigKey(key)
		if err != nil {
			return NewErrorResponse(err)
		}
		keys = []engine.ConfigKey{k}
	}

	entries := make([]ConfigEntry, 0, len(keys))
	for _, k := range keys {
		v, err := store.Value(k)
		if err != nil {
			return NewErrorResponse(err)
		}
		entry := ConfigEntry{Key: k, Value: v}
		if raw, ok := store.Raw(k); ok {
			entry.Raw = &raw
		}
		entries = append(entries, entry)
	}
	return NewSuccessResponse(map[string]interface{}{"config": entries})
}

// ConfigSetCommand stores a raw slider value and saves the file.
func ConfigSetCommand(store *settings.Store, key string, raw int) *CommandResponse {
	k, err := engine.ParseConfigKey(key)
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := store.SetRaw(k, raw); err != nil {
		return NewErrorResponse(err)
	}
	if err := store.Save(); err != nil {
		return NewErrorResponse(err)
	}

	v, _ := store.Value(k)
	return NewSuccessResponse(ConfigEntry{Key: k, Raw: &raw, Value: v})
}

// BindCommand binds a gesture to an event and saves the file.
func BindCommand(store *settings.Store, event, shape string, threshold float64) *CommandResponse {
	ev, err := engine.ParseEventType(event)
	if err != nil {
		return NewErrorResponse(err)
	}
	bs, err := engine.ParseBlendshape(shape)
	if err != nil {
		return NewErrorResponse(err)
	}
	if threshold < 0 || threshold > 1 {
		return NewErrorResponse(fmt.Errorf("threshold must be between 0 and 1, got %v", threshold))
	}

	binding := engine.Binding{Shape: bs, Threshold: threshold}
	if err := store.SetBinding(ev, binding); err != nil {
		return NewErrorResponse(err)
	}
	if err := store.Save(); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(engine.BindingEntry{Event: ev, Binding: binding})
}

// ProfileExportCommand writes the current settings to path.
func ProfileExportCommand(store *settings.Store, path, name string) *CommandResponse {
	profile := settings.ExportProfile(store, name)
	if err := settings.WriteProfile(path, profile); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message":  fmt.Sprintf("Exported profile %q to %s", name, path),
		"bindings": len(profile.Bindings),
	})
}

// ProfileImportCommand applies a profile file and saves the settings.
func ProfileImportCommand(store *settings.Store, path string) *CommandResponse {
	profile, err := settings.LoadProfile(path)
	if err != nil {
		return NewErrorResponse(err)
	}
	if err := profile.ApplyTo(store); err != nil {
		return NewErrorResponse(err)
	}
	if err := store.Save(); err != nil {
		return NewErrorResponse(err)
	}
	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Imported profile %q into %s", profile.Name, store.Path()),
	})
}
