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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/blinklabs-io/airdrop-ledger/ledger/xenblocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCodec(t *testing.T) {
	eth, err := ledger.EthAddressFromString(
		"0x1234567890abcdef1234567890abcdef12345678",
	)
	require.NoError(t, err)
	rec := xenblocks.Record{
		Wallet:           testKey(0x11),
		EthAddress:       eth,
		XnmAirdropped:    1,
		XblkAirdropped:   2,
		XuniAirdropped:   3,
		NativeAirdropped: 4,
		LastUpdated:      1735689600,
		Bump:             250,
	}
	data, err := rec.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, xenblocks.RecordSize)
	var decoded xenblocks.Record
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, rec, decoded)
}

// TestRecordLayout pins the exact byte offsets of each field. The
// reserved slots sit between the token totals and the timestamp, so a
// round trip alone would not notice fields written to the wrong place.
func TestRecordLayout(t *testing.T) {
	eth, err := ledger.EthAddressFromString(
		"0x1234567890abcdef1234567890abcdef12345678",
	)
	require.NoError(t, err)
	wallet := testKey(0x11)
	rec := xenblocks.Record{
		Wallet:           wallet,
		EthAddress:       eth,
		XnmAirdropped:    0x1111111111111111,
		XblkAirdropped:   0x2222222222222222,
		XuniAirdropped:   0x3333333333333333,
		NativeAirdropped: 0x4444444444444444,
		LastUpdated:      0x5555555555555555,
		Bump:             250,
	}
	data, err := rec.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 155)
	disc := ledger.AccountDiscriminator("AirdropRecord")
	assert.Equal(t, disc[:], data[0:8])
	assert.Equal(t, wallet.Bytes(), data[8:40])
	assert.Equal(t, eth[:], data[40:82])
	assert.Equal(
		t,
		uint64(0x1111111111111111),
		binary.LittleEndian.Uint64(data[82:90]),
	)
	assert.Equal(
		t,
		uint64(0x2222222222222222),
		binary.LittleEndian.Uint64(data[90:98]),
	)
	assert.Equal(
		t,
		uint64(0x3333333333333333),
		binary.LittleEndian.Uint64(data[98:106]),
	)
	assert.Equal(
		t,
		uint64(0x4444444444444444),
		binary.LittleEndian.Uint64(data[106:114]),
	)
	assert.Equal(t, make([]byte, 32), data[114:146])
	assert.Equal(
		t,
		uint64(0x5555555555555555),
		binary.LittleEndian.Uint64(data[146:154]),
	)
	assert.Equal(t, uint8(250), data[154])
	// Decoding a hand-built buffer reads from the same offsets
	buf := bytes.Clone(data)
	binary.LittleEndian.PutUint64(buf[146:154], 0x6666666666666666)
	buf[154] = 249
	var decoded xenblocks.Record
	require.NoError(t, decoded.UnmarshalBinary(buf))
	assert.Equal(t, int64(0x6666666666666666), decoded.LastUpdated)
	assert.Equal(t, uint8(249), decoded.Bump)
}

func TestRecordCodecBadInput(t *testing.T) {
	var rec xenblocks.Record
	assert.Error(t, rec.UnmarshalBinary(make([]byte, 10)))
	assert.Error(t, rec.UnmarshalBinary(make([]byte, xenblocks.RecordSize)))
}
