package env

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OverridesFileVar names the process variable pointing at an optional YAML file
// with client overrides. The file is a flat mapping of keys to strings.
const OverridesFileVar = "ENV_OVERRIDES_FILE"

// FileProvider loads a YAML override file into a MapProvider.
func FileProvider(path string) (MapProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read env overrides %q: %w", path, err)
	}

	overrides := MapProvider{}
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse env overrides %q: %w", path, err)
	}
	return overrides, nil
}

// NewDefault builds the reader used by the server: the override file (when
// ENV_OVERRIDES_FILE is set) takes priority over the process environment.
func NewDefault() (*Reader, error) {
	var overrides Provider
	if path, ok := os.LookupEnv(OverridesFileVar); ok && path != "" {
		p, err := FileProvider(path)
		if err != nil {
			return nil, err
		}
		overrides = p
	}
	return New(overrides, ProcessProvider{}), nil
}
