// Copyright 2026 the lumonode Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config resolves the wizard's settings from compiled defaults,
// an optional YAML file, and SETUPWIZARD_* environment variables, in
// that order.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/lumonode/setupwizard/pkg/activation"
	"github.com/lumonode/setupwizard/pkg/wifi"
)

// DefaultPath is where provisioning images drop the config file.
const DefaultPath = "/etc/setupwizard/config.yaml"

const envPrefix = "setupwizard"

// Config is everything the wizard can be told from outside. Fields carry
// no envconfig defaults on purpose: Default() seeds them so the YAML
// layer can override without the environment layer stamping defaults
// back over it.
type Config struct {
	StatePath string `yaml:"state_path" envconfig:"STATE_PATH"`
	APIURL    string `yaml:"api_url" envconfig:"API_URL"`
	Interface string `yaml:"interface" envconfig:"INTERFACE"`
	ProbeURL  string `yaml:"probe_url" envconfig:"PROBE_URL"`
	LogPath   string `yaml:"log_path" envconfig:"LOG_PATH"`
}

// Default returns the compiled-in settings.
func Default() Config {
	return Config{
		StatePath: "/opt/lumonode/app_state.json",
		APIURL:    activation.DefaultBaseURL,
		ProbeURL:  wifi.DefaultProbeURL,
		LogPath:   "/tmp/setupwizard.log",
	}
}

// Load resolves the configuration. An empty path means DefaultPath, and
// its absence is fine; a path the caller named explicitly has to exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("Fail to parse %v: %v", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return cfg, fmt.Errorf("Fail to read %v: %v", path, err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("Fail to read environment: %v", err)
	}
	return cfg, nil
}
