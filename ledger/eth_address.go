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

import "fmt"

// EthAddressLen is the fixed external address length. Addresses are stored
// as UTF-8 bytes, e.g. "0x" followed by 40 hex characters.
const EthAddressLen = 42

// EthAddress is the external chain address associated with a record
type EthAddress [EthAddressLen]byte

// EthAddressFromString converts a string to an EthAddress. The string must
// be exactly 42 bytes.
func EthAddressFromString(s string) (EthAddress, error) {
	var ret EthAddress
	if len(s) != EthAddressLen {
		return ret, fmt.Errorf(
			"invalid eth address length: expected %d bytes, got %d",
			EthAddressLen,
			len(s),
		)
	}
	copy(ret[:], s)
	return ret, nil
}

func (a EthAddress) String() string {
	return string(a[:])
}
