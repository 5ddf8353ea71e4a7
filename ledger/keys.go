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

package ledger

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Account address seeds, matching the deployed on-chain programs
const (
	StateSeed  = "state"
	RunSeed    = "run"
	RecordSeed = "airdrop_record"
)

// EthAddressKeyLen is the number of leading external address bytes used as
// key material. The deployed programs truncate the 42-byte address to its
// first 20 bytes when deriving record addresses, so two addresses sharing
// a 20-byte prefix resolve to the same record. Preserved for
// byte-compatibility with the existing ledger.
const EthAddressKeyLen = 20

// StateAddress derives the global state address for a program
func StateAddress(program solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(StateSeed),
		},
		program,
	)
}

// RunAddress derives the run address for the given run ID. The run ID is
// the run counter value at creation time, so run IDs and storage
// addresses stay in lockstep.
func RunAddress(
	program solana.PublicKey,
	runId uint64,
) (solana.PublicKey, uint8, error) {
	runIdBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(runIdBytes, runId)
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(RunSeed),
			runIdBytes,
		},
		program,
	)
}

// RecordAddress derives the record address for a (wallet, external
// address) pair
func RecordAddress(
	program solana.PublicKey,
	wallet solana.PublicKey,
	ethAddress EthAddress,
) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(RecordSeed),
			wallet.Bytes(),
			ethAddress[:EthAddressKeyLen],
		},
		program,
	)
}

// AccountDiscriminator returns the 8-byte discriminator prefix for an
// account type, using the same derivation as the on-chain account layout
func AccountDiscriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var ret [8]byte
	copy(ret[:], hash[:8])
	return ret
}
