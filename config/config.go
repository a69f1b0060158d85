/*
Copyright 2021 by Milo Christiansen

This software is provided 'as-is', without any express or implied warranty. In
no event will the authors be held liable for any damages arising from the use of
this software.

Permission is granted to anyone to use this software for any purpose, including
commercial applications, and to alter it and redistribute it freely, subject to
the following restrictions:

1. The origin of this software must not be misrepresented; you must not claim
that you wrote the original software. If you use this software in a product, an
acknowledgment in the product documentation would be appreciated but is not
required.

2. Altered source versions must be plainly marked as such, and must not be
misrepresented as being the original software.

3. This notice may not be removed or altered from any source distribution.
*/

// Package config loads chart settings from defaults, an optional YAML file, and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the commands. Zero fields in a YAML file keep their defaults.
type Config struct {
	Account  string  `yaml:"account"`   // Account to chart.
	Output   string  `yaml:"output"`    // Chart image path. The extension picks the format (.png or .svg).
	Width    int     `yaml:"width"`     // Image width in pixels.
	Height   int     `yaml:"height"`    // Image height in pixels.
	Padding  float64 `yaml:"padding"`   // Added above the maximum and below the minimum of the y axis.
	Running  bool    `yaml:"running"`   // Chart the running balance instead of the individual postings.
	LogLevel string  `yaml:"log_level"` // debug, info, warn, or error.
}

// Environment variables read by Load.
const (
	EnvAccount  = "LEDGERPLOT_ACCOUNT"
	EnvOutput   = "LEDGERPLOT_OUTPUT"
	EnvWidth    = "LEDGERPLOT_WIDTH"
	EnvHeight   = "LEDGERPLOT_HEIGHT"
	EnvPadding  = "LEDGERPLOT_PADDING"
	EnvRunning  = "LEDGERPLOT_RUNNING"
	EnvLogLevel = "LEDGERPLOT_LOG_LEVEL"
)

// Default returns the built in settings.
func Default() *Config {
	return &Config{
		Output:   "balance.png",
		Width:    1920,
		Height:   1080,
		Padding:  10,
		LogLevel: "info",
	}
}

// Load builds a Config from the defaults, then the YAML file at path (skipped if path is empty), then the
// environment. If envPath is given that .env file must exist, otherwise a .env file in the current directory
// is loaded when there is one. Variables already set in the environment win over .env values.
func Load(path string, envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAccount); v != "" {
		c.Account = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	var err error
	if c.Width, err = intEnv(EnvWidth, c.Width); err != nil {
		return err
	}
	if c.Height, err = intEnv(EnvHeight, c.Height); err != nil {
		return err
	}
	if v := os.Getenv(EnvPadding); v != "" {
		if c.Padding, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid float value for %s: %s", EnvPadding, v)
		}
	}
	if v := os.Getenv(EnvRunning); v != "" {
		if c.Running, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", EnvRunning, v)
		}
	}
	return nil
}

// Validate checks that the image settings are usable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %vx%v", c.Width, c.Height)
	}
	if c.Padding < 0 {
		return fmt.Errorf("invalid padding %v", c.Padding)
	}
	return nil
}

func intEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}
