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

package metadata

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/airdrop-ledger/database/models"
	"github.com/blinklabs-io/airdrop-ledger/database/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the queryable mirror of the account
// store. Getters return (nil, nil) when no matching row exists.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(*gorm.DB, int64) error

	// Global state
	GetGlobalState(
		string, // program
		*gorm.DB,
	) (*models.GlobalState, error)
	SetGlobalState(
		models.GlobalState,
		*gorm.DB,
	) error

	// Runs
	GetRun(
		string, // program
		uint64, // runId
		*gorm.DB,
	) (*models.AirdropRun, error)
	SetRun(
		models.AirdropRun,
		*gorm.DB,
	) error

	// Records
	GetRecord(
		string, // program
		string, // wallet
		[]byte, // ethKey
		*gorm.DB,
	) (*models.AirdropRecord, error)
	SetRecord(
		models.AirdropRecord,
		*gorm.DB,
	) error
	DeleteRecord(
		string, // program
		string, // wallet
		[]byte, // ethKey
		*gorm.DB,
	) error
}

// New returns the started metadata plugin selected by name. The logger
// and prometheus registry are injected before the plugin is started;
// plugins that don't support them ignore the injection.
func New(
	pluginName string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	// Get the plugin from the registry
	p := plugin.GetPlugin(plugin.PluginTypeMetadata, pluginName)
	if p == nil {
		return nil, fmt.Errorf("metadata plugin '%s' not found", pluginName)
	}

	// Inject runtime configuration not covered by cmdline options
	if c, ok := p.(plugin.RuntimeConfigurable); ok {
		c.SetLogger(logger)
		c.SetPromRegistry(promRegistry)
	}

	// Start the plugin
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf(
			"failed to start metadata plugin '%s': %w",
			pluginName,
			err,
		)
	}

	// Type assert to MetadataStore interface
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}

	return metadataStore, nil
}
