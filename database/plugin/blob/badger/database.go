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

package badger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/blinklabs-io/airdrop-ledger/database/types"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
	blobSubdir     = "blob"
)

// BlobStoreBadger stores account blobs in a local BadgerDB instance. An
// empty data directory selects badger's in-memory mode, used for testing.
type BlobStoreBadger struct {
	logger         *slog.Logger
	promRegistry   prometheus.Registerer
	db             *badger.DB
	gcStopCh       chan struct{}
	gcDoneCh       chan struct{}
	dataDir        string
	blockCacheSize uint64
	indexCacheSize uint64
	startOnce      sync.Once
	gcEnabled      bool
}

// New creates a new badger blob store with the provided options
func New(opts ...BlobStoreBadgerOptionFunc) (*BlobStoreBadger, error) {
	b := &BlobStoreBadger{
		blockCacheSize: DefaultBlockCacheSize,
		indexCacheSize: DefaultIndexCacheSize,
		gcEnabled:      true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		b.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return b, nil
}

// Start opens the underlying badger database
func (b *BlobStoreBadger) Start() error {
	var startErr error
	b.startOnce.Do(func() {
		var badgerOpts badger.Options
		if b.dataDir == "" {
			// In-memory mode when no data directory is specified, useful for testing
			badgerOpts = badger.DefaultOptions("").WithInMemory(true)
		} else {
			blobDir := filepath.Join(b.dataDir, blobSubdir)
			badgerOpts = badger.DefaultOptions(blobDir)
		}
		badgerOpts = badgerOpts.
			WithLogger(newBadgerLogger(b.logger)).
			WithBlockCacheSize(int64(b.blockCacheSize)). //nolint:gosec
			WithIndexCacheSize(int64(b.indexCacheSize))  //nolint:gosec
		db, err := badger.Open(badgerOpts)
		if err != nil {
			startErr = fmt.Errorf("failed to open badger database: %w", err)
			return
		}
		b.db = db
		b.registerMetrics()
		if b.gcEnabled && b.dataDir != "" {
			b.gcStopCh = make(chan struct{})
			b.gcDoneCh = make(chan struct{})
			go b.gcLoop()
		}
	})
	return startErr
}

// Stop closes the underlying badger database
func (b *BlobStoreBadger) Stop() error {
	return b.Close()
}

func (b *BlobStoreBadger) Close() error {
	if b.gcStopCh != nil {
		close(b.gcStopCh)
		<-b.gcDoneCh
		b.gcStopCh = nil
	}
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// registerMetrics exposes badger storage sizes via the provided
// prometheus registry
func (b *BlobStoreBadger) registerMetrics() {
	if b.promRegistry == nil {
		return
	}
	b.promRegistry.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "blob_store_lsm_size_bytes",
				Help: "Size of the badger LSM tree on disk",
			},
			func() float64 {
				lsmSize, _ := b.db.Size()
				return float64(lsmSize)
			},
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "blob_store_vlog_size_bytes",
				Help: "Size of the badger value log on disk",
			},
			func() float64 {
				_, vlogSize := b.db.Size()
				return float64(vlogSize)
			},
		),
	)
}

// gcLoop runs badger value log garbage collection periodically until the
// store is closed
func (b *BlobStoreBadger) gcLoop() {
	defer close(b.gcDoneCh)
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.gcStopCh:
			return
		case <-ticker.C:
			// RunValueLogGC returns ErrNoRewrite when there was nothing to collect
			for {
				if err := b.db.RunValueLogGC(gcDiscardRatio); err != nil {
					if !errors.Is(err, badger.ErrNoRewrite) {
						b.logger.Warn(
							"badger value log GC failed",
							"component", "database",
							"error", err,
						)
					}
					break
				}
			}
		}
	}
}

// badgerTxn wraps a badger transaction and implements types.Txn
type badgerTxn struct {
	store    *BlobStoreBadger
	tx       *badger.Txn
	finished bool
}

func (t *badgerTxn) Commit() error {
	if t.finished {
		return nil
	}
	if t.tx == nil {
		t.finished = true
		return nil
	}
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.finished = true
	return nil
}

func (t *badgerTxn) Rollback() error {
	if t.finished {
		return nil
	}
	if t.tx != nil {
		t.tx.Discard()
	}
	t.finished = true
	return nil
}

// validateTxn validates a types.Txn for this BlobStore and returns the
// underlying *badgerTxn if valid
func (b *BlobStoreBadger) validateTxn(txn types.Txn) (*badgerTxn, error) {
	if txn == nil {
		return nil, types.ErrNilTxn
	}
	tmpTxn, ok := txn.(*badgerTxn)
	if !ok {
		return nil, types.ErrTxnWrongType
	}
	if tmpTxn.store != b {
		return nil, errors.New("transaction from different store")
	}
	if tmpTxn.finished {
		return nil, errors.New("transaction already finished")
	}
	if tmpTxn.tx == nil {
		return nil, types.ErrBlobStoreUnavailable
	}
	return tmpTxn, nil
}

func (b *BlobStoreBadger) NewTransaction(readWrite bool) types.Txn {
	if b.db == nil {
		return &badgerTxn{store: b}
	}
	return &badgerTxn{
		store: b,
		tx:    b.db.NewTransaction(readWrite),
	}
}

func (b *BlobStoreBadger) Get(txn types.Txn, key []byte) ([]byte, error) {
	tmpTxn, err := b.validateTxn(txn)
	if err != nil {
		return nil, err
	}
	item, err := tmpTxn.tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, types.ErrBlobKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

func (b *BlobStoreBadger) Set(txn types.Txn, key []byte, value []byte) error {
	tmpTxn, err := b.validateTxn(txn)
	if err != nil {
		return err
	}
	return tmpTxn.tx.Set(key, value)
}

func (b *BlobStoreBadger) Delete(txn types.Txn, key []byte) error {
	tmpTxn, err := b.validateTxn(txn)
	if err != nil {
		return err
	}
	return tmpTxn.tx.Delete(key)
}

// badgerLogger adapts slog to the badger logging interface
type badgerLogger struct {
	logger *slog.Logger
}

func newBadgerLogger(logger *slog.Logger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
