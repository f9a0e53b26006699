package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "dollar", c.Placeholder)
	assert.Positive(t, c.Concurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, "concurrency must be at least 1, got 0"},
		{"bad placeholder", func(c *Config) { c.Placeholder = "colon" }, `placeholder must be dollar or question, got "colon"`},
		{"negative limit", func(c *Config) { c.MaxInputBytes = -1 }, "max input bytes must not be negative, got -1"},
		{"question", func(c *Config) { c.Placeholder = "question" }, ""},
		{"no limit", func(c *Config) { c.MaxInputBytes = 0 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := &Config{Concurrency: -2, Placeholder: "", MaxInputBytes: -5}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
	assert.Contains(t, err.Error(), "placeholder")
	assert.Contains(t, err.Error(), "max input bytes")
}
