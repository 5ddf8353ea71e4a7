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

package xenblocks_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/blinklabs-io/airdrop-ledger/database"
	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xenblocks"
	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(fill byte) solana.PublicKey {
	tmp := make([]byte, 32)
	for i := range tmp {
		tmp[i] = fill
	}
	return solana.PublicKeyFromBytes(tmp)
}

func testEthAddress(t *testing.T, suffix uint64) ledger.EthAddress {
	t.Helper()
	ret, err := ledger.EthAddressFromString(fmt.Sprintf("0x%040x", suffix))
	require.NoError(t, err)
	return ret
}

func newTestTracker(t *testing.T) (*xenblocks.Tracker, solana.PublicKey) {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	tracker, err := xenblocks.New(&ledger.Config{
		Database: db,
		Clock:    clockwork.NewFakeClock(),
	})
	require.NoError(t, err)
	authority := testKey(0x20)
	_, err = tracker.InitializeState(authority)
	require.NoError(t, err)
	return tracker, authority
}

func TestUpdateRecordAllTokens(t *testing.T) {
	tracker, authority := newTestTracker(t)
	wallet := testKey(0x30)
	eth := testEthAddress(t, 1)
	_, err := tracker.InitializeRecord(authority, wallet, eth)
	require.NoError(t, err)
	_, err = tracker.UpdateRecord(authority, wallet, eth, xenblocks.Amounts{
		Xnm:    100,
		Xblk:   200,
		Xuni:   300,
		Native: 400,
	})
	require.NoError(t, err)
	rec, err := tracker.UpdateRecord(
		authority, wallet, eth, xenblocks.Amounts{Xnm: 50},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), rec.XnmAirdropped)
	assert.Equal(t, uint64(200), rec.XblkAirdropped)
	assert.Equal(t, uint64(300), rec.XuniAirdropped)
	assert.Equal(t, uint64(400), rec.NativeAirdropped)
}

func TestUpdateRecordOverflowAllOrNothing(t *testing.T) {
	tracker, authority := newTestTracker(t)
	wallet := testKey(0x30)
	eth := testEthAddress(t, 1)
	_, err := tracker.InitializeAndUpdate(
		authority, wallet, eth, xenblocks.Amounts{Xuni: math.MaxUint64},
	)
	require.NoError(t, err)
	// The XUNI addition overflows, so no counter changes
	_, err = tracker.UpdateRecord(authority, wallet, eth, xenblocks.Amounts{
		Xnm:  1000,
		Xuni: 1,
	})
	assert.ErrorIs(t, err, ledger.ErrOverflow)
	got, err := tracker.GetRecord(wallet, eth)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.XnmAirdropped)
	assert.Equal(t, uint64(math.MaxUint64), got.XuniAirdropped)
}

func TestInitializeAndUpdateLifecycle(t *testing.T) {
	tracker, authority := newTestTracker(t)
	wallet := testKey(0x30)
	eth := testEthAddress(t, 1)
	rec, err := tracker.InitializeAndUpdate(
		authority, wallet, eth, xenblocks.Amounts{Xblk: 42, Native: 7},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), rec.XblkAirdropped)
	assert.Equal(t, uint64(7), rec.NativeAirdropped)
	// Duplicate initialize fails either way, totals untouched
	_, err = tracker.InitializeRecord(authority, wallet, eth)
	assert.ErrorIs(t, err, ledger.ErrRecordExists)
	_, err = tracker.InitializeAndUpdate(
		authority, wallet, eth, xenblocks.Amounts{Xblk: 5},
	)
	assert.ErrorIs(t, err, ledger.ErrRecordExists)
	got, err := tracker.GetRecord(wallet, eth)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.XblkAirdropped)
	// Close is terminal, re-create starts fresh
	require.NoError(t, tracker.CloseRecord(authority, wallet, eth))
	_, err = tracker.GetRecord(wallet, eth)
	assert.ErrorIs(t, err, ledger.ErrRecordNotFound)
	rec, err = tracker.InitializeAndUpdate(
		authority, wallet, eth, xenblocks.Amounts{Xblk: 1},
	)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rec.XblkAirdropped)
}

func TestRecordOpsUnauthorized(t *testing.T) {
	tracker, authority := newTestTracker(t)
	wallet := testKey(0x30)
	eth := testEthAddress(t, 1)
	_, err := tracker.InitializeRecord(authority, wallet, eth)
	require.NoError(t, err)
	other := testKey(0x21)
	_, err = tracker.UpdateRecord(
		other, wallet, eth, xenblocks.Amounts{Xnm: 1},
	)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	err = tracker.CloseRecord(other, wallet, eth)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	got, err := tracker.GetRecord(wallet, eth)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.XnmAirdropped)
}
