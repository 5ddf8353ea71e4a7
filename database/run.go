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

package database

import (
	"github.com/blinklabs-io/airdrop-ledger/database/models"
)

// GetRunBlob returns the serialized run account at the given blob key.
// Returns types.ErrBlobKeyNotFound when missing.
func (d *Database) GetRunBlob(key []byte, txn *Txn) ([]byte, error) {
	return d.getBlob(key, txn)
}

// SetRun writes the serialized run account and its metadata mirror row
func (d *Database) SetRun(
	key []byte,
	blobData []byte,
	run models.AirdropRun,
	txn *Txn,
) error {
	if txn == nil {
		txn = d.Transaction(true)
		defer txn.Commit() //nolint:errcheck
	}
	if err := d.blob.Set(txn.Blob(), key, blobData); err != nil {
		return err
	}
	return d.metadata.SetRun(run, txn.Metadata())
}
