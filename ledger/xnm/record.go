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

package xnm

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/gagliardetto/solana-go"
)

// TokenKind selects which cumulative total an update applies to
type TokenKind uint8

const (
	TokenXnm TokenKind = iota
	TokenXblk
)

func (k TokenKind) String() string {
	switch k {
	case TokenXnm:
		return "XNM"
	case TokenXblk:
		return "XBLK"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// RecordSize is the serialized size of a Record account: discriminator,
// wallet, external address, two token totals, 6 reserved u64 slots,
// last updated, bump
const RecordSize = 8 + 32 + 42 + 8 + 8 + 48 + 8 + 1

// Record is the per-recipient cumulative record for the XNM tracker. The
// reserved trailer is preserved as zero bytes to keep the serialized
// layout stable.
type Record struct {
	// Wallet is the recipient wallet
	Wallet solana.PublicKey
	// EthAddress is the full external chain address
	EthAddress ledger.EthAddress
	// XnmAirdropped is the cumulative XNM total, in token base units
	XnmAirdropped uint64
	// XblkAirdropped is the cumulative XBLK total, in token base units
	XblkAirdropped uint64
	// LastUpdated is the unix timestamp of the last mutation
	LastUpdated int64
	// Bump is the address derivation bump seed
	Bump uint8
}

func (r *Record) MarshalBinary() ([]byte, error) {
	ret := make([]byte, RecordSize)
	disc := ledger.AccountDiscriminator("AirdropRecord")
	copy(ret[0:8], disc[:])
	copy(ret[8:40], r.Wallet.Bytes())
	copy(ret[40:82], r.EthAddress[:])
	binary.LittleEndian.PutUint64(ret[82:90], r.XnmAirdropped)
	binary.LittleEndian.PutUint64(ret[90:98], r.XblkAirdropped)
	// Bytes 98 to 146 are the reserved slots, left zeroed
	binary.LittleEndian.PutUint64(ret[146:154], uint64(r.LastUpdated))
	ret[154] = r.Bump
	return ret, nil
}

func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf(
			"unexpected record size: expected %d bytes, got %d",
			RecordSize,
			len(data),
		)
	}
	disc := ledger.AccountDiscriminator("AirdropRecord")
	if !bytes.Equal(data[0:8], disc[:]) {
		return fmt.Errorf("unexpected account discriminator: %x", data[0:8])
	}
	r.Wallet = solana.PublicKeyFromBytes(data[8:40])
	copy(r.EthAddress[:], data[40:82])
	r.XnmAirdropped = binary.LittleEndian.Uint64(data[82:90])
	r.XblkAirdropped = binary.LittleEndian.Uint64(data[90:98])
	r.LastUpdated = int64(binary.LittleEndian.Uint64(data[146:154]))
	r.Bump = data[154]
	return nil
}

// applyDelta adds the amount to the total selected by kind. The record
// is unchanged on error.
func (r *Record) applyDelta(kind TokenKind, amount uint64) error {
	switch kind {
	case TokenXnm:
		total, err := ledger.CheckedAdd(r.XnmAirdropped, amount)
		if err != nil {
			return err
		}
		r.XnmAirdropped = total
	case TokenXblk:
		total, err := ledger.CheckedAdd(r.XblkAirdropped, amount)
		if err != nil {
			return err
		}
		r.XblkAirdropped = total
	default:
		return ledger.ErrInvalidTokenType
	}
	return nil
}
