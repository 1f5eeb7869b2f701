/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package lockbench

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

// Defaults used when neither flags nor config file say otherwise
const (
	DefaultMethod = MethodSingle
	DefaultIters  = 1000000
)

// Config describes one run: which strategy and how many iterations per
// worker. LogLevel only feeds the ambient logger, the harness itself is
// not configurable beyond method and iterations.
type Config struct {
	Method   Method `json:"method"`
	Iters    int    `json:"iters"`
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the run configuration used with no arguments
func DefaultConfig() *Config {
	return &Config{
		Method: DefaultMethod,
		Iters:  DefaultIters,
	}
}

// ReadConfigFile overlays values from a yaml file, empty path is a noop
func (c *Config) ReadConfigFile(cfgPath string) error {
	if cfgPath == "" {
		return nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	return nil
}

// Validate makes sure the config describes a runnable scenario. It runs
// before any worker is spawned, so a bad method never touches the cells.
func (c *Config) Validate() error {
	if !c.Method.Valid() {
		return fmt.Errorf("Lockbench: Invalid method: %d, valid methods: 1, 2, 3, 4", int(c.Method))
	}
	if c.Iters < 0 {
		return fmt.Errorf("Lockbench: Iterations can't be negative: %d", c.Iters)
	}
	return nil
}
