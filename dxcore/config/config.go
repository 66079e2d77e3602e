/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config holds the caller policies of the linetype engine.
//
// Document state such as $LTSCALE is deliberately not configuration: it is
// read from the document header on every resolution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"gopkg.in/yaml.v3"
)

// Config selects how the engine treats capability limits, broken layer
// references and catalog redefinitions.
//
// Example YAML:
//
//	capability: simple
//	downgrade_broken_layers: true
//	allow_overwrite: false
type Config struct {
	// Capability is the tier the target format supports. Complex patterns
	// fail to build when it is Simple.
	Capability linetype.Tier `json:"capability" yaml:"capability"`

	// DowngradeBrokenLayers substitutes CONTINUOUS, with a warning, when a
	// BYLAYER entity's layer or layer linetype is missing. When false such
	// entities fail.
	DowngradeBrokenLayers bool `json:"downgrade_broken_layers" yaml:"downgrade_broken_layers"`

	// AllowOverwrite lets catalog loads redefine names already registered.
	AllowOverwrite bool `json:"allow_overwrite" yaml:"allow_overwrite"`
}

var _ model.Model = (*Config)(nil)

// Default returns the strict configuration: complex capability, broken
// layer references fail, no overwrites.
func Default() Config {
	return Config{Capability: linetype.Complex}
}

// Load reads a YAML or JSON file (chosen by extension; anything but .json is
// YAML). Fields absent from the file keep their Default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config: %w", err)
	}

	cfg := new(Config)
	*cfg = Default()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = model.FromJSON(data, &cfg)
	} else {
		err = model.FromYAML(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return *cfg, nil
}

// Validate checks that Capability is a defined tier.
func (c Config) Validate() error {
	if !c.Capability.Valid() {
		return &errors.ValidationError{
			Type:   c.TypeName(),
			Field:  "Capability",
			Reason: "unknown tier",
			Value:  int(c.Capability),
		}
	}
	return nil
}

// TypeName returns "Config".
func (c Config) TypeName() string { return "Config" }

// IsZero reports whether every field is zero. Note the zero Config is not
// Default: its capability is Simple.
func (c Config) IsZero() bool { return c == Config{} }

// String renders every field.
func (c Config) String() string {
	return fmt.Sprintf("Config{Capability:%s, DowngradeBrokenLayers:%t, AllowOverwrite:%t}",
		c.Capability, c.DowngradeBrokenLayers, c.AllowOverwrite)
}

// Redacted is String; the config holds nothing sensitive.
func (c Config) Redacted() string { return c.String() }

// MarshalJSON validates and encodes the config.
func (c Config) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type config Config
	return json.Marshal(config(c))
}

// UnmarshalJSON decodes over the current values, so absent fields are kept.
func (c *Config) UnmarshalJSON(data []byte) error {
	type config Config
	if err := json.Unmarshal(data, (*config)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal JSON into %s: %w", c.TypeName(), err)
	}
	return c.Validate()
}

// MarshalYAML validates and encodes the config.
func (c Config) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	type config Config
	return config(c), nil
}

// UnmarshalYAML decodes over the current values, so absent fields are kept.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type config Config
	if err := node.Decode((*config)(c)); err != nil {
		return fmt.Errorf("cannot unmarshal YAML into %s: %w", c.TypeName(), err)
	}
	return c.Validate()
}
