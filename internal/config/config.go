// Package config centralizes the pipeline's tunables. Every value has a
// default suitable for on-device use and can be overridden through
// SPENDWISE_* environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Default values for the extraction and categorization pipeline.
const (
	// DefaultCurrency is assumed when a format carries no currency code.
	DefaultCurrency = "INR"

	// DefaultModelName is the Gemini model used by the cloud tier.
	DefaultModelName = "gemini-2.5-flash"

	// DefaultDedupWindow and DefaultDedupTolerance are the windowed
	// duplicate-match constants. Both are deliberately configuration, not
	// constants of the engine: tightening them trades duplicate
	// false positives for clock-skew false negatives.
	DefaultDedupWindow    = 60 * time.Second
	DefaultDedupTolerance = 0.01

	// DefaultRuleThreshold is the confidence at which a rule-based result
	// is final without consulting any model tier.
	DefaultRuleThreshold = 0.85

	// DefaultModelThreshold applies to both the on-device and cloud tiers.
	DefaultModelThreshold = 0.70
)

// Config carries the pipeline tunables.
type Config struct {
	Currency string

	DedupWindow    time.Duration
	DedupTolerance float64

	RuleThreshold  float64
	ModelThreshold float64

	// Tier toggles. Readiness/connectivity are runtime capabilities and
	// live on the cascade's capability object, not here.
	OnDeviceEnabled bool
	CloudEnabled    bool
	CloudModelName  string

	// Store selection: "sqlite" (default) or "bigquery".
	StoreBackend string
	SQLitePath   string
}

// Load builds a Config from the environment, falling back to defaults.
func Load() Config {
	return Config{
		Currency:        envString("SPENDWISE_CURRENCY", DefaultCurrency),
		DedupWindow:     envDuration("SPENDWISE_DEDUP_WINDOW", DefaultDedupWindow),
		DedupTolerance:  envFloat("SPENDWISE_DEDUP_TOLERANCE", DefaultDedupTolerance),
		RuleThreshold:   envFloat("SPENDWISE_RULE_THRESHOLD", DefaultRuleThreshold),
		ModelThreshold:  envFloat("SPENDWISE_MODEL_THRESHOLD", DefaultModelThreshold),
		OnDeviceEnabled: envBool("SPENDWISE_ONDEVICE_ENABLED", false),
		CloudEnabled:    envBool("SPENDWISE_CLOUD_ENABLED", false),
		CloudModelName:  envString("SPENDWISE_CLOUD_MODEL", DefaultModelName),
		StoreBackend:    envString("SPENDWISE_STORE", "sqlite"),
		SQLitePath:      envString("SPENDWISE_SQLITE_PATH", "spendwise.db"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
