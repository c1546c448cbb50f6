package config

import "strings"

// ObservabilityConfig controls metrics exposure.
type ObservabilityConfig struct {
	MetricsEnabled bool   `env:"OBSERVABILITY_METRICS_ENABLED" envDefault:"true"`
	MetricsPath    string `env:"OBSERVABILITY_METRICS_PATH"    envDefault:"/metrics"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityConfig) Sanitize() {
	c.MetricsPath = strings.TrimSpace(c.MetricsPath)
	if c.MetricsPath == "" || !strings.HasPrefix(c.MetricsPath, "/") {
		c.MetricsPath = "/metrics"
	}
}
