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

package blob

import (
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/airdrop-ledger/database/plugin"
	"github.com/blinklabs-io/airdrop-ledger/database/types"
	"github.com/prometheus/client_golang/prometheus"
)

// BlobStore is the interface for the canonical account byte store
type BlobStore interface {
	Close() error
	NewTransaction(readWrite bool) types.Txn

	// Account blob access. Get returns types.ErrBlobKeyNotFound for a
	// missing key.
	Get(txn types.Txn, key []byte) ([]byte, error)
	Set(txn types.Txn, key []byte, value []byte) error
	Delete(txn types.Txn, key []byte) error

	// Commit timestamp tracking for divergence detection
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(txn types.Txn, timestamp int64) error
}

// New returns the started blob plugin selected by name. The logger and
// prometheus registry are injected before the plugin is started; plugins
// that don't support them ignore the injection.
func New(
	pluginName string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (BlobStore, error) {
	// Get the plugin from the registry
	p := plugin.GetPlugin(plugin.PluginTypeBlob, pluginName)
	if p == nil {
		return nil, fmt.Errorf("blob plugin '%s' not found", pluginName)
	}

	// Inject runtime configuration not covered by cmdline options
	if c, ok := p.(plugin.RuntimeConfigurable); ok {
		c.SetLogger(logger)
		c.SetPromRegistry(promRegistry)
	}

	// Start the plugin
	if err := p.Start(); err != nil {
		return nil, fmt.Errorf(
			"failed to start blob plugin '%s': %w",
			pluginName,
			err,
		)
	}

	// Type assert to BlobStore interface
	blobStore, ok := p.(BlobStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement BlobStore interface",
			pluginName,
		)
	}

	return blobStore, nil
}
