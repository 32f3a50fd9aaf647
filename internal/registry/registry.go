// Package registry provides a global registry for outbreak scenarios.
// Scenarios register themselves in init() functions, allowing the CLI and
// the viewer to discover presets without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/outbreak/internal/config"
)

// CustomScenario labels runs of a configuration with no preset applied.
const CustomScenario = "custom"

// Scenario is a named preset applied on top of the loaded configuration.
type Scenario interface {
	// ID returns a unique identifier (e.g., "flu", "lockdown").
	// Used for CLI arguments and outcome storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description is a one-line summary for menus and `list`.
	Description() string

	// Configure overrides the parts of cfg the scenario cares about.
	Configure(cfg *config.OutbreakConfig)
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]ScenarioInfo)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = ScenarioInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scenario %q", id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Resolve loads the configuration and applies the scenario on top.
// An empty id uses the configuration unchanged.
func Resolve(id, configPath string) (config.OutbreakConfig, error) {
	cfg, err := config.LoadOutbreak(configPath)
	if err != nil {
		return cfg, err
	}
	if id != "" {
		s, err := Create(id)
		if err != nil {
			return cfg, err
		}
		s.Configure(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
