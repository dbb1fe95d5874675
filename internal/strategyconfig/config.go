// Package strategyconfig loads the scan profile: the universe, ranking
// depth, schedule, and provider cache policy for recurring scans. The
// profile is versioned YAML; unknown fields fail the load so typos
// never silently change a run.
package strategyconfig

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is the full scan profile.
type Profile struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Universe Universe `yaml:"universe" json:"universe"`
	Scan     Scan     `yaml:"scan" json:"scan"`
	Cache    Cache    `yaml:"cache" json:"cache"`
}

// Meta identifies the profile.
type Meta struct {
	ProfileID string `yaml:"profile_id" json:"profile_id"`
	Version   string `yaml:"version" json:"version"`
	Timezone  string `yaml:"timezone" json:"timezone"`
}

// Universe selects the symbols a scheduled scan covers. With Discover
// set the most-active screener supplies the list and Symbols acts as a
// pin list merged in front.
type Universe struct {
	Discover bool     `yaml:"discover" json:"discover"`
	Limit    int      `yaml:"limit" json:"limit"`
	Symbols  []string `yaml:"symbols" json:"symbols"`
}

// Scan holds run parameters.
type Scan struct {
	TopN        int    `yaml:"top_n" json:"top_n"`
	Workers     int    `yaml:"workers" json:"workers"`
	HistoryDays int    `yaml:"history_days" json:"history_days"`
	Schedule    string `yaml:"schedule" json:"schedule"`
}

// Cache holds the provider quote-cache policy.
type Cache struct {
	QuoteTTL Duration `yaml:"quote_ttl" json:"quote_ttl"`
}

// Duration decodes "5m"-style YAML values. Plain time.Duration only
// accepts raw nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON renders the duration in its human form so the profile
// hash input stays readable.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Std().String())
}

// Std converts to time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
