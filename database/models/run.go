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

// AirdropRun mirrors a run summary account
type AirdropRun struct {
	ID              uint   `gorm:"primarykey"`
	Program         string `gorm:"uniqueIndex:idx_run_key;size:44"`
	RunId           uint64 `gorm:"uniqueIndex:idx_run_key"`
	RunDate         int64
	TotalRecipients uint32
	TotalAmount     types.Uint64
	DryRun          bool
}

func (AirdropRun) TableName() string {
	return "airdrop_run"
}
