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

// GetRecord gets a record row by its natural key
func (d *MetadataStoreSqlite) GetRecord(
	program string,
	wallet string,
	ethKey []byte,
	txn *gorm.DB,
) (*models.AirdropRecord, error) {
	ret := &models.AirdropRecord{}
	if txn == nil {
		txn = d.DB()
	}
	result := txn.Where(
		"program = ? AND wallet = ? AND eth_key = ?",
		program,
		wallet,
		ethKey,
	).First(ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ret, nil
}

// SetRecord saves a record row
func (d *MetadataStoreSqlite) SetRecord(
	record models.AirdropRecord,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "program"},
			{Name: "wallet"},
			{Name: "eth_key"},
		},
		DoUpdates: clause.AssignmentColumns(
			[]string{
				"eth_address",
				"xnm_airdropped",
				"xblk_airdropped",
				"xuni_airdropped",
				"native_airdropped",
				"last_updated",
			},
		),
	}).Create(&record)
	return result.Error
}

// DeleteRecord removes a record row by its natural key
func (d *MetadataStoreSqlite) DeleteRecord(
	program string,
	wallet string,
	ethKey []byte,
	txn *gorm.DB,
) error {
	db := d.DB()
	if txn != nil {
		db = txn
	}
	result := db.Where(
		"program = ? AND wallet = ? AND eth_key = ?",
		program,
		wallet,
		ethKey,
	).Delete(&models.AirdropRecord{})
	return result.Error
}
