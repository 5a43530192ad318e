package env

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CaeliEnv is the per-workspace defaults file ("caelienv").
//
// It is searched from the working directory upward, so a project checkout
// can pin its own entity type and enrichment facets.
type CaeliEnv struct {
	// EntityType used when a command does not pass --type.
	EntityType string `yaml:"entityType,omitempty"`

	// Facets enriched by default when `caeli enrich` is called without --facet.
	EnrichFacets []string `yaml:"enrichFacets,omitempty"`

	// PollInterval overrides the default task poll interval, e.g. "3s".
	PollInterval string `yaml:"pollInterval,omitempty"`
}

func New() *CaeliEnv {
	return new(CaeliEnv)
}

// Interval returns the configured poll interval, or fallback when unset
// or unparsable.
func (e *CaeliEnv) Interval(fallback time.Duration) time.Duration {
	if e == nil || e.PollInterval == "" {
		return fallback
	}
	d, err := time.ParseDuration(e.PollInterval)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func LoadCaeliEnv(filepath string) (*CaeliEnv, error) {

	env := CaeliEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, nil
	}

	err = yaml.Unmarshal(content, &env)
	if err != nil {
		return nil, err
	}

	return &env, nil
}
