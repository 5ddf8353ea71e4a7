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

package sqlite_test

import (
	"testing"

	"github.com/blinklabs-io/airdrop-ledger/database/models"
	"github.com/blinklabs-io/airdrop-ledger/database/plugin/metadata/sqlite"
	"github.com/blinklabs-io/airdrop-ledger/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.MetadataStoreSqlite {
	t.Helper()
	store, err := sqlite.New(
		sqlite.WithDataDir(""),
	)
	require.NoError(t, err)
	require.NoError(t, store.Start())
	t.Cleanup(func() {
		store.Close() //nolint:errcheck
	})
	return store
}

func TestGlobalStateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	// Missing row is not an error
	row, err := store.GetGlobalState("xnm", nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	err = store.SetGlobalState(models.GlobalState{
		Program:    "xnm",
		Authority:  "authority-key",
		RunCounter: 5,
	}, nil)
	require.NoError(t, err)

	row, err = store.GetGlobalState("xnm", nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "authority-key", row.Authority)
	assert.Equal(t, types.Uint64(5), row.RunCounter)

	// Upsert overwrites the existing row
	err = store.SetGlobalState(models.GlobalState{
		Program:    "xnm",
		Authority:  "authority-key",
		RunCounter: 6,
	}, nil)
	require.NoError(t, err)
	row, err = store.GetGlobalState("xnm", nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, types.Uint64(6), row.RunCounter)

	// Other programs are not visible
	row, err = store.GetGlobalState("xenblocks", nil)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRunRoundTrip(t *testing.T) {
	store := newTestStore(t)

	row, err := store.GetRun("xnm", 1, nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	err = store.SetRun(models.AirdropRun{
		Program:         "xnm",
		RunId:           1,
		RunDate:         1735689600,
		TotalRecipients: 100,
		TotalAmount:     123456,
		DryRun:          true,
	}, nil)
	require.NoError(t, err)

	row, err = store.GetRun("xnm", 1, nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, uint32(100), row.TotalRecipients)
	assert.Equal(t, types.Uint64(123456), row.TotalAmount)
	assert.True(t, row.DryRun)

	// Totals are replaced on upsert
	err = store.SetRun(models.AirdropRun{
		Program:         "xnm",
		RunId:           1,
		RunDate:         1735689600,
		TotalRecipients: 150,
		TotalAmount:     200000,
	}, nil)
	require.NoError(t, err)
	row, err = store.GetRun("xnm", 1, nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, uint32(150), row.TotalRecipients)
	assert.False(t, row.DryRun)
}

func TestRecordRoundTripAndDelete(t *testing.T) {
	store := newTestStore(t)
	ethAddress := []byte("0x1234567890abcdef1234567890abcdef12345678")
	ethKey := ethAddress[:20]

	row, err := store.GetRecord("xnm", "wallet-1", ethKey, nil)
	require.NoError(t, err)
	assert.Nil(t, row)

	err = store.SetRecord(models.AirdropRecord{
		Program:       "xnm",
		Wallet:        "wallet-1",
		EthKey:        ethKey,
		EthAddress:    ethAddress,
		XnmAirdropped: 1000,
		LastUpdated:   1735689600,
	}, nil)
	require.NoError(t, err)

	row, err = store.GetRecord("xnm", "wallet-1", ethKey, nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, types.Uint64(1000), row.XnmAirdropped)
	assert.Equal(t, ethAddress, row.EthAddress)

	// Upsert replaces amounts for the same key
	err = store.SetRecord(models.AirdropRecord{
		Program:        "xnm",
		Wallet:         "wallet-1",
		EthKey:         ethKey,
		EthAddress:     ethAddress,
		XnmAirdropped:  1500,
		XblkAirdropped: 25,
		LastUpdated:    1735693200,
	}, nil)
	require.NoError(t, err)
	row, err = store.GetRecord("xnm", "wallet-1", ethKey, nil)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, types.Uint64(1500), row.XnmAirdropped)
	assert.Equal(t, types.Uint64(25), row.XblkAirdropped)
	assert.Equal(t, int64(1735693200), row.LastUpdated)

	// Delete removes the row, further lookups find nothing
	require.NoError(t, store.DeleteRecord("xnm", "wallet-1", ethKey, nil))
	row, err = store.GetRecord("xnm", "wallet-1", ethKey, nil)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestTransactionRollback(t *testing.T) {
	store := newTestStore(t)

	txn := store.Transaction()
	err := store.SetGlobalState(models.GlobalState{
		Program:   "xnm",
		Authority: "authority-key",
	}, txn)
	require.NoError(t, err)
	require.NoError(t, txn.Rollback().Error)

	row, err := store.GetGlobalState("xnm", nil)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestCommitTimestamp(t *testing.T) {
	store := newTestStore(t)

	// Empty store reports a zero timestamp
	ts, err := store.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	txn := store.Transaction()
	require.NoError(t, store.SetCommitTimestamp(txn, 1735689600123))
	require.NoError(t, txn.Commit().Error)

	ts, err = store.GetCommitTimestamp()
	require.NoError(t, err)
	assert.Equal(t, int64(1735689600123), ts)
}
