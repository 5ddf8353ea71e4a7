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
	"bytes"
	"encoding/binary"
	"fmt"
)

// AirdropRunSize is the serialized size of an AirdropRun account,
// including the 8-byte discriminator
const AirdropRunSize = 8 + 8 + 8 + 4 + 8 + 1 + 1

// AirdropRun is the immutable-after-close summary account for one
// distribution run
type AirdropRun struct {
	// RunId equals the global run counter value at creation time (1-based)
	RunId uint64
	// RunDate is the unix timestamp when the run started
	RunDate int64
	// TotalRecipients is the number of successful recipients, set after
	// the run completes
	TotalRecipients uint32
	// TotalAmount is the total amount airdropped, in token base units
	TotalAmount uint64
	// DryRun marks runs that recorded no actual transfers
	DryRun bool
	// Bump is the address derivation bump seed
	Bump uint8
}

func (r *AirdropRun) MarshalBinary() ([]byte, error) {
	ret := make([]byte, AirdropRunSize)
	disc := AccountDiscriminator("AirdropRun")
	copy(ret[0:8], disc[:])
	binary.LittleEndian.PutUint64(ret[8:16], r.RunId)
	binary.LittleEndian.PutUint64(ret[16:24], uint64(r.RunDate))
	binary.LittleEndian.PutUint32(ret[24:28], r.TotalRecipients)
	binary.LittleEndian.PutUint64(ret[28:36], r.TotalAmount)
	if r.DryRun {
		ret[36] = 1
	}
	ret[37] = r.Bump
	return ret, nil
}

func (r *AirdropRun) UnmarshalBinary(data []byte) error {
	if len(data) != AirdropRunSize {
		return fmt.Errorf(
			"unexpected airdrop run size: expected %d bytes, got %d",
			AirdropRunSize,
			len(data),
		)
	}
	disc := AccountDiscriminator("AirdropRun")
	if !bytes.Equal(data[0:8], disc[:]) {
		return fmt.Errorf("unexpected account discriminator: %x", data[0:8])
	}
	r.RunId = binary.LittleEndian.Uint64(data[8:16])
	r.RunDate = int64(binary.LittleEndian.Uint64(data[16:24]))
	r.TotalRecipients = binary.LittleEndian.Uint32(data[24:28])
	r.TotalAmount = binary.LittleEndian.Uint64(data[28:36])
	r.DryRun = data[36] != 0
	r.Bump = data[37]
	return nil
}
