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

package sqlite

import (
	"errors"

	"github.com/blinklabs-io/airdrop-ledger/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetGlobalState gets the global state row for a program
func (d *MetadataStoreSqlite) GetGlobalState(
	program string,
	txn *gorm.DB,
) (*models.GlobalState, error) {
	ret := &models.GlobalState{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("program = ?", program).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetGlobalState saves the global state row for a program
func (d *MetadataStoreSqlite) SetGlobalState(
	state models.GlobalState,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "program"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"authority", "run_counter"},
		),
	}).Create(&state)
	return result.Error
}
