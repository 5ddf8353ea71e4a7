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

package xnm

import (
	"errors"

	"github.com/blinklabs-io/airdrop-ledger/database"
	"github.com/blinklabs-io/airdrop-ledger/database/models"
	"github.com/blinklabs-io/airdrop-ledger/database/types"
	"github.com/blinklabs-io/airdrop-ledger/ledger"
	"github.com/gagliardetto/solana-go"
)

const ProgramName = "xnm"

// ProgramID is the deployed XNM tracker program
var ProgramID = solana.MustPublicKeyFromBase58(
	"JAzubT5NSiyRkLgaFRTkrdLGzzMb57CVhMhdDCiqoRu6",
)

// Tracker is the XNM/XBLK variant of the ledger engine. Each update
// applies a single delta to one token kind.
type Tracker struct {
	*ledger.Ledger
}

// New creates an XNM tracker engine
func New(cfg *ledger.Config) (*Tracker, error) {
	l, err := ledger.New(
		ledger.Program{Name: ProgramName, ID: ProgramID},
		cfg,
	)
	if err != nil {
		return nil, err
	}
	return &Tracker{Ledger: l}, nil
}

// InitializeRecord creates a zeroed record for the (wallet, external
// address) pair. Fails with ErrRecordExists when the derived address is
// already occupied.
func (t *Tracker) InitializeRecord(
	caller solana.PublicKey,
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
) (*Record, error) {
	var rec *Record
	txn := t.DB().Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := t.RequireAuthority(txn, caller); err != nil {
			return err
		}
		var err error
		rec, err = t.createRecord(wallet, ethAddress, txn)
		return err
	})
	t.ObserveOperation("initialize_record", err)
	if err != nil {
		return nil, err
	}
	t.Logger().Info(
		"initialized record",
		"wallet", wallet.String(),
		"eth_address", ethAddress.String(),
	)
	return rec, nil
}

// UpdateRecord adds the amount to the selected token total on an
// existing record. The record is untouched on overflow or invalid kind.
func (t *Tracker) UpdateRecord(
	caller solana.PublicKey,
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
	kind TokenKind,
	amount uint64,
) (*Record, error) {
	var rec *Record
	txn := t.DB().Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := t.RequireAuthority(txn, caller); err != nil {
			return err
		}
		key, _, err := t.recordKey(wallet, ethAddress)
		if err != nil {
			return err
		}
		rec, err = t.loadRecord(key, txn)
		if err != nil {
			return err
		}
		if err := rec.applyDelta(kind, amount); err != nil {
			return err
		}
		rec.LastUpdated = t.Clock().Now().Unix()
		return t.writeRecord(rec, key, txn)
	})
	t.ObserveOperation("update_record", err)
	if err != nil {
		return nil, err
	}
	t.Logger().Info(
		"updated record",
		"wallet", wallet.String(),
		"token", kind.String(),
		"amount", amount,
	)
	return rec, nil
}

// InitializeAndUpdate creates the record and applies the first delta in
// one transaction. The derived address must be unoccupied, same as
// InitializeRecord; the total starts from zero, so the addition cannot
// overflow.
func (t *Tracker) InitializeAndUpdate(
	caller solana.PublicKey,
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
	kind TokenKind,
	amount uint64,
) (*Record, error) {
	var rec *Record
	txn := t.DB().Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := t.RequireAuthority(txn, caller); err != nil {
			return err
		}
		key, bump, err := t.recordKey(wallet, ethAddress)
		if err != nil {
			return err
		}
		if _, err := t.DB().GetRecordBlob(key, txn); err == nil {
			return ledger.ErrRecordExists
		} else if !errors.Is(err, types.ErrBlobKeyNotFound) {
			return err
		}
		rec = &Record{
			Wallet:     wallet,
			EthAddress: ethAddress,
			Bump:       bump,
		}
		if err := rec.applyDelta(kind, amount); err != nil {
			return err
		}
		rec.LastUpdated = t.Clock().Now().Unix()
		return t.writeRecord(rec, key, txn)
	})
	t.ObserveOperation("initialize_and_update", err)
	if err != nil {
		return nil, err
	}
	t.Logger().Info(
		"initialized and updated record",
		"wallet", wallet.String(),
		"token", kind.String(),
		"amount", amount,
	)
	return rec, nil
}

// CloseRecord removes an existing record. Closing is terminal: a later
// initialize for the same pair starts from zero totals.
func (t *Tracker) CloseRecord(
	caller solana.PublicKey,
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
) error {
	txn := t.DB().Transaction(true)
	err := txn.Do(func(txn *database.Txn) error {
		if _, err := t.RequireAuthority(txn, caller); err != nil {
			return err
		}
		key, _, err := t.recordKey(wallet, ethAddress)
		if err != nil {
			return err
		}
		if _, err := t.loadRecord(key, txn); err != nil {
			return err
		}
		return t.DB().DeleteRecord(
			key,
			t.Program().Name,
			wallet.String(),
			ethAddress[:ledger.EthAddressKeyLen],
			txn,
		)
	})
	t.ObserveOperation("close_record", err)
	if err != nil {
		return err
	}
	t.Logger().Info(
		"closed record",
		"wallet", wallet.String(),
		"eth_address", ethAddress.String(),
	)
	return nil
}

// GetRecord returns the record for the (wallet, external address) pair,
// or ErrRecordNotFound
func (t *Tracker) GetRecord(
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
) (*Record, error) {
	key, _, err := t.recordKey(wallet, ethAddress)
	if err != nil {
		return nil, err
	}
	txn := t.DB().Transaction(false)
	defer txn.Commit() //nolint:errcheck
	return t.loadRecord(key, txn)
}

func (t *Tracker) recordKey(
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
) ([]byte, uint8, error) {
	addr, bump, err := ledger.RecordAddress(t.Program().ID, wallet, ethAddress)
	if err != nil {
		return nil, 0, err
	}
	return types.RecordBlobKey(addr.Bytes()), bump, nil
}

func (t *Tracker) createRecord(
	wallet solana.PublicKey,
	ethAddress ledger.EthAddress,
	txn *database.Txn,
) (*Record, error) {
	key, bump, err := t.recordKey(wallet, ethAddress)
	if err != nil {
		return nil, err
	}
	if _, err := t.DB().GetRecordBlob(key, txn); err == nil {
		return nil, ledger.ErrRecordExists
	} else if !errors.Is(err, types.ErrBlobKeyNotFound) {
		return nil, err
	}
	rec := &Record{
		Wallet:      wallet,
		EthAddress:  ethAddress,
		LastUpdated: t.Clock().Now().Unix(),
		Bump:        bump,
	}
	if err := t.writeRecord(rec, key, txn); err != nil {
		return nil, err
	}
	return rec, nil
}

func (t *Tracker) loadRecord(key []byte, txn *database.Txn) (*Record, error) {
	blobData, err := t.DB().GetRecordBlob(key, txn)
	if err != nil {
		if errors.Is(err, types.ErrBlobKeyNotFound) {
			return nil, ledger.ErrRecordNotFound
		}
		return nil, err
	}
	var rec Record
	if err := rec.UnmarshalBinary(blobData); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (t *Tracker) writeRecord(
	rec *Record,
	key []byte,
	txn *database.Txn,
) error {
	blobData, err := rec.MarshalBinary()
	if err != nil {
		return err
	}
	return t.DB().SetRecord(
		key,
		blobData,
		models.AirdropRecord{
			Program:        t.Program().Name,
			Wallet:         rec.Wallet.String(),
			EthKey:         rec.EthAddress[:ledger.EthAddressKeyLen],
			EthAddress:     rec.EthAddress[:],
			XnmAirdropped:  types.Uint64(rec.XnmAirdropped),
			XblkAirdropped: types.Uint64(rec.XblkAirdropped),
			LastUpdated:    rec.LastUpdated,
		},
		txn,
	)
}
