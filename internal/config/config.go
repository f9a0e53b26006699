package config

import (
	"errors"
	"fmt"
)

type Config struct {
	// Concurrency bounds how many statements of one script compile at once.
	Concurrency int
	// Placeholder is the bind parameter style of rendered SQL: "dollar" or "question".
	Placeholder string
	// MaxInputBytes rejects longer scripts before lexing. Zero disables the check.
	MaxInputBytes int
}

func Default() *Config {
	return &Config{
		Concurrency:   4,
		Placeholder:   "dollar",
		MaxInputBytes: 1 << 20,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	switch c.Placeholder {
	case "dollar", "question":
	default:
		errs = append(errs, fmt.Errorf("placeholder must be dollar or question, got %q", c.Placeholder))
	}
	if c.MaxInputBytes < 0 {
		errs = append(errs, fmt.Errorf("max input bytes must not be negative, got %d", c.MaxInputBytes))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
