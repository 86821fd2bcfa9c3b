package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/utils"
	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

// Profile is a portable snapshot of tunables and bindings. Config values are
// in engine units.
type Profile struct {
	Name     string             `yaml:"name" plist:"name"`
	Config   map[string]float64 `yaml:"config" plist:"config"`
	Bindings []ProfileBinding   `yaml:"bindings" plist:"bindings"`
}

type ProfileBinding struct {
	Event     string  `yaml:"event" plist:"event"`
	Shape     string  `yaml:"shape" plist:"shape"`
	Threshold float64 `yaml:"threshold" plist:"threshold"`
}

// ExportProfile captures the store's current settings.
func ExportProfile(store *Store, name string) Profile {
	p := Profile{Name: name, Config: map[string]float64{}}
	for key, v := range store.Values() {
		p.Config[string(key)] = v
	}
	bindings := store.Bindings()
	for _, ev := range bindings.Events() {
		b, _ := bindings.Get(ev)
		p.Bindings = append(p.Bindings, ProfileBinding{
			Event:     ev.String(),
			Shape:     b.Shape.String(),
			Threshold: b.Threshold,
		})
	}
	return p
}

// ApplyTo writes the profile into store. Unknown keys and names are logged
// and skipped; the store is not saved.
func (p Profile) ApplyTo(store *Store) error {
	keys := make([]string, 0, len(p.Config))
	for k := range p.Config {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	applied := 0
	for _, name := range keys {
		key, err := engine.ParseConfigKey(name)
		if err != nil {
			utils.Warn("profile %q: %v", p.Name, err)
			continue
		}
		if err := store.SetValue(key, p.Config[name]); err != nil {
			return fmt.Errorf("failed to apply %s: %w", key, err)
		}
		applied++
	}

	for _, pb := range p.Bindings {
		event, err := engine.ParseEventType(pb.Event)
		if err != nil {
			utils.Warn("profile %q: %v", p.Name, err)
			continue
		}
		shape, err := engine.ParseBlendshape(pb.Shape)
		if err != nil {
			utils.Warn("profile %q: %v", p.Name, err)
			continue
		}
		if err := store.SetBinding(event, engine.Binding{Shape: shape, Threshold: pb.Threshold}); err != nil {
			utils.Warn("profile %q: %v", p.Name, err)
			continue
		}
		applied++
	}

	utils.Verbose("profile %q applied %d entries", p.Name, applied)
	return nil
}

// LoadProfile reads a profile from a YAML or property list file, chosen by extension.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if isPlist(path) {
		if _, err := plist.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("failed to parse plist profile %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse yaml profile %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// WriteProfile saves p as YAML, or as an XML property list for .plist paths.
func WriteProfile(path string, p Profile) error {
	var (
		data []byte
		err  error
	)
	if isPlist(path) {
		data, err = plist.MarshalIndent(p, plist.XMLFormat, "\t")
	} else {
		data, err = yaml.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func isPlist(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".plist")
}
