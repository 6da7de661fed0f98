package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Feature is a self-contained module that registers its own routes.
type Feature interface {
	Name() string
	IsEnabled() bool
	Load(app fiber.Router) error
}

// Manager keeps the registered features in registration order.
type Manager struct {
	features []Feature
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature. Duplicate names are rejected at LoadAll.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// Features returns the registered features.
func (m *Manager) Features() []Feature {
	return m.features
}

// LoadAll loads every enabled feature and returns the names that were loaded.
func (m *Manager) LoadAll(app fiber.Router) ([]string, error) {
	seen := make(map[string]struct{}, len(m.features))
	var loaded []string

	for _, f := range m.features {
		name := f.Name()
		if _, dup := seen[name]; dup {
			return loaded, fmt.Errorf("feature %q registered twice", name)
		}
		seen[name] = struct{}{}

		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return loaded, fmt.Errorf("failed to load feature %s: %w", name, err)
		}
		loaded = append(loaded, name)
	}
	return loaded, nil
}
