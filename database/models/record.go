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

package models

import (
	"github.com/blinklabs-io/airdrop-ledger/database/types"
)

// AirdropRecord mirrors a per-recipient cumulative record. EthKey holds
// the leading 20 address bytes that participate in key derivation;
// EthAddress holds the full 42 bytes as stored. Trackers without a given
// token kind leave its column at zero.
type AirdropRecord struct {
	ID               uint   `gorm:"primarykey"`
	Program          string `gorm:"uniqueIndex:idx_record_key;size:44"`
	Wallet           string `gorm:"uniqueIndex:idx_record_key;size:44"`
	EthKey           []byte `gorm:"uniqueIndex:idx_record_key;size:20"`
	EthAddress       []byte `gorm:"size:42"`
	XnmAirdropped    types.Uint64
	XblkAirdropped   types.Uint64
	XuniAirdropped   types.Uint64
	NativeAirdropped types.Uint64
	LastUpdated      int64
}

func (AirdropRecord) TableName() string {
	return "airdrop_record"
}
