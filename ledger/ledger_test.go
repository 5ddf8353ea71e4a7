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

package ledger_test

import (
	"testing"

	"github.com/blinklabs-io/airdrop-ledger/database"
	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*ledger.Ledger, *clockwork.FakeClock) {
	t.Helper()
	db, err := database.New(&database.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})
	clock := clockwork.NewFakeClock()
	l, err := ledger.New(
		ledger.Program{Name: "test", ID: testKey(0x10)},
		&ledger.Config{
			Database: db,
			Clock:    clock,
		},
	)
	require.NoError(t, err)
	return l, clock
}

func TestInitializeState(t *testing.T) {
	l, _ := newTestLedger(t)
	authority := testKey(0x20)
	state, err := l.InitializeState(authority)
	require.NoError(t, err)
	assert.Equal(t, authority, state.Authority)
	assert.Equal(t, uint64(0), state.RunCounter)
	// Read back
	got, err := l.GetState()
	require.NoError(t, err)
	assert.Equal(t, state, got)
	// Second initialize fails, state untouched
	_, err = l.InitializeState(testKey(0x21))
	assert.ErrorIs(t, err, ledger.ErrAlreadyInitialized)
	got, err = l.GetState()
	require.NoError(t, err)
	assert.Equal(t, authority, got.Authority)
}

func TestGetStateNotFound(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.GetState()
	assert.ErrorIs(t, err, ledger.ErrStateNotFound)
}

func TestCreateRunSequence(t *testing.T) {
	l, clock := newTestLedger(t)
	authority := testKey(0x20)
	_, err := l.InitializeState(authority)
	require.NoError(t, err)
	for i := uint64(1); i <= 3; i++ {
		run, err := l.CreateRun(authority, i == 2)
		require.NoError(t, err)
		assert.Equal(t, i, run.RunId)
		assert.Equal(t, clock.Now().Unix(), run.RunDate)
		assert.Equal(t, i == 2, run.DryRun)
	}
	state, err := l.GetState()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), state.RunCounter)
	// Every created run is retrievable by its id
	for i := uint64(1); i <= 3; i++ {
		run, err := l.GetRun(i)
		require.NoError(t, err)
		assert.Equal(t, i, run.RunId)
	}
}

func TestCreateRunRequiresState(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.CreateRun(testKey(0x20), false)
	assert.ErrorIs(t, err, ledger.ErrStateNotFound)
}

func TestCreateRunUnauthorized(t *testing.T) {
	l, _ := newTestLedger(t)
	authority := testKey(0x20)
	_, err := l.InitializeState(authority)
	require.NoError(t, err)
	_, err = l.CreateRun(testKey(0x21), false)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	// Counter unchanged
	state, err := l.GetState()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), state.RunCounter)
	_, err = l.GetRun(1)
	assert.ErrorIs(t, err, ledger.ErrRunNotFound)
}

func TestUpdateRunTotals(t *testing.T) {
	l, _ := newTestLedger(t)
	authority := testKey(0x20)
	_, err := l.InitializeState(authority)
	require.NoError(t, err)
	created, err := l.CreateRun(authority, false)
	require.NoError(t, err)
	run, err := l.UpdateRunTotals(authority, created.RunId, 150, 123456)
	require.NoError(t, err)
	assert.Equal(t, uint32(150), run.TotalRecipients)
	assert.Equal(t, uint64(123456), run.TotalAmount)
	// Totals overwrite unconditionally
	run, err = l.UpdateRunTotals(authority, created.RunId, 151, 200000)
	require.NoError(t, err)
	assert.Equal(t, uint32(151), run.TotalRecipients)
	assert.Equal(t, uint64(200000), run.TotalAmount)
	got, err := l.GetRun(created.RunId)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestUpdateRunTotalsUnknownRun(t *testing.T) {
	l, _ := newTestLedger(t)
	authority := testKey(0x20)
	_, err := l.InitializeState(authority)
	require.NoError(t, err)
	_, err = l.UpdateRunTotals(authority, 99, 1, 1)
	assert.ErrorIs(t, err, ledger.ErrRunNotFound)
}

func TestUpdateRunTotalsUnauthorized(t *testing.T) {
	l, _ := newTestLedger(t)
	authority := testKey(0x20)
	_, err := l.InitializeState(authority)
	require.NoError(t, err)
	created, err := l.CreateRun(authority, false)
	require.NoError(t, err)
	_, err = l.UpdateRunTotals(testKey(0x21), created.RunId, 1, 1)
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
	got, err := l.GetRun(created.RunId)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.TotalRecipients)
	assert.Equal(t, uint64(0), got.TotalAmount)
}
