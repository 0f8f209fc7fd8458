package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if _, err := c.LastUpdatedTime(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("chart: %w", err))
	}
	return errors.Join(errs...)
}

// LastUpdatedTime parses LastUpdated. Empty yields the zero time.
func (c *Config) LastUpdatedTime() (time.Time, error) {
	if c.LastUpdated == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, c.LastUpdated)
	if err != nil {
		return time.Time{}, fmt.Errorf("last_updated %q must be YYYY-MM-DD", c.LastUpdated)
	}
	return t, nil
}
