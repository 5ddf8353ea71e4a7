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

// GlobalState mirrors the singleton global state account for a tracker
// program. The blob store holds the canonical serialized account; this
// row exists for inspection and consistency checks.
type GlobalState struct {
	ID         uint   `gorm:"primarykey"`
	Program    string `gorm:"uniqueIndex;size:44"`
	Authority  string `gorm:"size:44"`
	RunCounter types.Uint64
}

func (GlobalState) TableName() string {
	return "global_state"
}
