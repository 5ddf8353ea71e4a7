// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/airdrop-ledger/database/plugin"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "airdrop-ledger.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultBlobPlugin     = "badger"
	DefaultMetadataPlugin = "sqlite"
	DefaultTracker        = "xnm"
)

type tempConfig struct {
	Config   *Config         `yaml:"config,omitempty"`
	Database *databaseConfig `yaml:"database,omitempty"`
}

type databaseConfig struct {
	Blob     map[string]any `yaml:"blob,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

type Config struct {
	DataDir        string `yaml:"dataDir"        split_words:"true"`
	BlobPlugin     string `yaml:"blobPlugin"     envconfig:"AIRDROP_DATABASE_BLOB_PLUGIN"`
	MetadataPlugin string `yaml:"metadataPlugin" envconfig:"AIRDROP_DATABASE_METADATA_PLUGIN"`
	Tracker        string `yaml:"tracker"`
	Caller         string `yaml:"caller"`
	Tracing        bool   `yaml:"tracing"`
	TracingStdout  bool   `yaml:"tracingStdout"  split_words:"true"`
}

var globalConfig = &Config{
	DataDir:        ".airdrop-ledger",
	BlobPlugin:     DefaultBlobPlugin,
	MetadataPlugin: DefaultMetadataPlugin,
	Tracker:        DefaultTracker,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.airdrop-ledger/airdrop-ledger.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(
				homeDir,
				".airdrop-ledger",
				"airdrop-ledger.yaml",
			)
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/airdrop-ledger/airdrop-ledger.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/airdrop-ledger/airdrop-ledger.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		var tempCfg tempConfig
		if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}

		// If config section exists, use it for main config
		if tempCfg.Config != nil {
			// Overlay config values onto existing defaults
			configBytes, err := yaml.Marshal(tempCfg.Config)
			if err != nil {
				return nil, fmt.Errorf("error re-marshalling config: %w", err)
			}
			if err := yaml.Unmarshal(configBytes, globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else {
			// Otherwise unmarshal the whole file as main config
			if err := yaml.Unmarshal(buf, globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}

		// Process plugin configurations from the database section
		if tempCfg.Database != nil {
			pluginConfig := make(map[string]map[string]map[string]any)
			blobConfig, pluginName, err := extractPluginConfig(
				tempCfg.Database.Blob,
			)
			if err != nil {
				return nil, fmt.Errorf("error in blob config: %w", err)
			}
			if pluginName != "" {
				globalConfig.BlobPlugin = pluginName
			}
			if len(blobConfig) > 0 {
				pluginConfig["blob"] = blobConfig
			}
			metadataConfig, pluginName, err := extractPluginConfig(
				tempCfg.Database.Metadata,
			)
			if err != nil {
				return nil, fmt.Errorf("error in metadata config: %w", err)
			}
			if pluginName != "" {
				globalConfig.MetadataPlugin = pluginName
			}
			if len(metadataConfig) > 0 {
				pluginConfig["metadata"] = metadataConfig
			}
			if len(pluginConfig) > 0 {
				if err := plugin.ProcessConfig(pluginConfig); err != nil {
					return nil, fmt.Errorf(
						"error processing plugin config: %w",
						err,
					)
				}
			}
		}
	}

	// Process environment variables
	if err := envconfig.Process("airdrop", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	// Process plugin environment variables
	if err := plugin.ProcessEnvVars(); err != nil {
		return nil, fmt.Errorf(
			"error processing plugin environment variables: %w",
			err,
		)
	}

	return globalConfig, nil
}

// extractPluginConfig splits a database section into the selected plugin
// name (from the "plugin" key) and per-plugin option maps
func extractPluginConfig(
	section map[string]any,
) (map[string]map[string]any, string, error) {
	if section == nil {
		return nil, "", nil
	}
	var pluginName string
	if pluginVal, ok := section["plugin"]; ok {
		name, ok := pluginVal.(string)
		if !ok {
			return nil, "", fmt.Errorf(
				"expected string for plugin name, got %T",
				pluginVal,
			)
		}
		pluginName = name
	}
	ret := make(map[string]map[string]any)
	for k, v := range section {
		if k == "plugin" {
			continue
		}
		options, ok := v.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf(
				"expected map for plugin section %q, got %T",
				k,
				v,
			)
		}
		ret[k] = options
	}
	return ret, pluginName, nil
}

func GetConfig() *Config {
	return globalConfig
}
