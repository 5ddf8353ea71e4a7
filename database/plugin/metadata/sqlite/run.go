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

// GetRun gets a run summary row
func (d *MetadataStoreSqlite) GetRun(
	program string,
	runId uint64,
	txn *gorm.DB,
) (*models.AirdropRun, error) {
	ret := &models.AirdropRun{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where("program = ? AND run_id = ?", program, runId).
		First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetRun saves a run summary row
func (d *MetadataStoreSqlite) SetRun(
	run models.AirdropRun,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "program"}, {Name: "run_id"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"run_date", "total_recipients", "total_amount", "dry_run"},
		),
	}).Create(&run)
	return result.Error
}
