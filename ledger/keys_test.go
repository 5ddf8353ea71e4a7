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
	"fmt"
	"testing"

	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/gagliardetto/solana-go"
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

func TestStateAddressDeterministic(t *testing.T) {
	programA := testKey(0x01)
	programB := testKey(0x02)
	addr1, bump1, err := ledger.StateAddress(programA)
	require.NoError(t, err)
	addr2, bump2, err := ledger.StateAddress(programA)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)
	addr3, _, err := ledger.StateAddress(programB)
	require.NoError(t, err)
	assert.NotEqual(t, addr1, addr3)
}

func TestRunAddressPerRunId(t *testing.T) {
	program := testKey(0x01)
	addr1, _, err := ledger.RunAddress(program, 1)
	require.NoError(t, err)
	addr2, _, err := ledger.RunAddress(program, 2)
	require.NoError(t, err)
	assert.NotEqual(t, addr1, addr2)
	// Same run id always derives the same address
	addr1again, _, err := ledger.RunAddress(program, 1)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr1again)
}

func TestRecordAddressTruncatedKeyCollision(t *testing.T) {
	program := testKey(0x01)
	wallet := testKey(0x03)
	// Two distinct addresses sharing their first 20 bytes
	ethA, err := ledger.EthAddressFromString(
		"0xaaaaaaaaaaaaaaaaaa11111111111111111111aa",
	)
	require.NoError(t, err)
	ethB, err := ledger.EthAddressFromString(
		"0xaaaaaaaaaaaaaaaaaa11111111111111111111bb",
	)
	require.NoError(t, err)
	require.NotEqual(t, ethA, ethB)
	addrA, _, err := ledger.RecordAddress(program, wallet, ethA)
	require.NoError(t, err)
	addrB, _, err := ledger.RecordAddress(program, wallet, ethB)
	require.NoError(t, err)
	// Only the first 20 bytes are key material, so these collide
	assert.Equal(t, addrA, addrB)
	// A difference within the first 20 bytes yields a different address
	ethC := testEthAddress(t, 42)
	addrC, _, err := ledger.RecordAddress(program, wallet, ethC)
	require.NoError(t, err)
	assert.NotEqual(t, addrA, addrC)
}

func TestRecordAddressPerWallet(t *testing.T) {
	program := testKey(0x01)
	eth := testEthAddress(t, 7)
	addrA, _, err := ledger.RecordAddress(program, testKey(0x04), eth)
	require.NoError(t, err)
	addrB, _, err := ledger.RecordAddress(program, testKey(0x05), eth)
	require.NoError(t, err)
	assert.NotEqual(t, addrA, addrB)
}

func TestAccountDiscriminators(t *testing.T) {
	state := ledger.AccountDiscriminator("GlobalState")
	run := ledger.AccountDiscriminator("AirdropRun")
	record := ledger.AccountDiscriminator("AirdropRecord")
	assert.NotEqual(t, state, run)
	assert.NotEqual(t, state, record)
	assert.NotEqual(t, run, record)
	// Deterministic
	assert.Equal(t, state, ledger.AccountDiscriminator("GlobalState"))
}
