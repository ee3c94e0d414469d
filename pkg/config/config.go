// Copyright (C) 2025 Phant Project
//
// This file is part of phant-go.
//
// phant-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// phant-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with phant-go.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrMissingURL is returned by Validate when no instance URL is configured.
var ErrMissingURL = errors.New("instance url not configured")

// DefaultListen is the listen address used when none is configured.
const DefaultListen = ":8080"

// Config holds the node configuration. Every field has an environment
// variable fallback, so a config file is optional.
type Config struct {
	// URL is the public base URL of this instance, e.g. "https://a.example".
	URL string `yaml:"url"`

	// Listen is the local address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// PrivateKey and PublicKey are PEM file paths for this node's actor key
	// material.
	PrivateKey string `yaml:"private_key"`
	PublicKey  string `yaml:"public_key"`

	// Debug switches the logger to development output.
	Debug bool `yaml:"debug"`
}

// Load reads the config file at path and fills unset fields from the
// environment. An empty path skips the file and reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// FromEnv builds a config from environment variables alone.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// Validate reports whether the config is sufficient to run a node.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	return nil
}

func (c *Config) applyEnv() {
	if c.URL == "" {
		c.URL = os.Getenv("PHANT_URL")
	}
	if c.Listen == "" {
		c.Listen = os.Getenv("PHANT_LISTEN")
	}
	if c.PrivateKey == "" {
		c.PrivateKey = os.Getenv("PHANT_PRIVATE_KEY")
	}
	if c.PublicKey == "" {
		c.PublicKey = os.Getenv("PHANT_PUBLIC_KEY")
	}
	if !c.Debug {
		if debug, err := strconv.ParseBool(os.Getenv("PHANT_DEBUG")); err == nil {
			c.Debug = debug
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
}
