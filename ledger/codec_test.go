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

	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalStateCodec(t *testing.T) {
	state := ledger.GlobalState{
		Authority:  testKey(0x07),
		RunCounter: 12345,
		Bump:       254,
	}
	data, err := state.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, ledger.GlobalStateSize)
	var decoded ledger.GlobalState
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, state, decoded)
}

func TestGlobalStateCodecBadInput(t *testing.T) {
	var state ledger.GlobalState
	// Wrong size
	assert.Error(t, state.UnmarshalBinary(make([]byte, 10)))
	// Wrong discriminator (valid run payload)
	run := ledger.AirdropRun{RunId: 1}
	runData, err := run.MarshalBinary()
	require.NoError(t, err)
	padded := make([]byte, ledger.GlobalStateSize)
	copy(padded, runData)
	assert.Error(t, state.UnmarshalBinary(padded))
}

func TestAirdropRunCodec(t *testing.T) {
	run := ledger.AirdropRun{
		RunId:           42,
		RunDate:         1735689600,
		TotalRecipients: 1000,
		TotalAmount:     987654321,
		DryRun:          true,
		Bump:            251,
	}
	data, err := run.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, ledger.AirdropRunSize)
	var decoded ledger.AirdropRun
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, run, decoded)
}

func TestCheckedAdd(t *testing.T) {
	sum, err := ledger.CheckedAdd(40, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sum)
	sum, err = ledger.CheckedAdd(^uint64(0), 0)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), sum)
	_, err = ledger.CheckedAdd(^uint64(0), 1)
	assert.ErrorIs(t, err, ledger.ErrOverflow)
}
