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

	"github.com/gagliardetto/solana-go"
)

// GlobalStateSize is the serialized size of a GlobalState account,
// including the 8-byte discriminator
const GlobalStateSize = 8 + 32 + 8 + 1

// GlobalState is the singleton account naming the authority and issuing
// run IDs. Exactly one exists per tracker program.
type GlobalState struct {
	// Authority is the only principal allowed to create runs and mutate records
	Authority solana.PublicKey
	// RunCounter increases by exactly 1 per created run, starting at 0
	RunCounter uint64
	// Bump is the address derivation bump seed
	Bump uint8
}

func (s *GlobalState) MarshalBinary() ([]byte, error) {
	ret := make([]byte, GlobalStateSize)
	disc := AccountDiscriminator("GlobalState")
	copy(ret[0:8], disc[:])
	copy(ret[8:40], s.Authority.Bytes())
	binary.LittleEndian.PutUint64(ret[40:48], s.RunCounter)
	ret[48] = s.Bump
	return ret, nil
}

func (s *GlobalState) UnmarshalBinary(data []byte) error {
	if len(data) != GlobalStateSize {
		return fmt.Errorf(
			"unexpected global state size: expected %d bytes, got %d",
			GlobalStateSize,
			len(data),
		)
	}
	disc := AccountDiscriminator("GlobalState")
	if !bytes.Equal(data[0:8], disc[:]) {
		return fmt.Errorf("unexpected account discriminator: %x", data[0:8])
	}
	s.Authority = solana.PublicKeyFromBytes(data[8:40])
	s.RunCounter = binary.LittleEndian.Uint64(data[40:48])
	s.Bump = data[48]
	return nil
}
