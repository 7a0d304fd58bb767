/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldbstore

import (
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

// Txn is a StateStore whose writes are buffered until Commit. GetState sees the
// transaction's own pending writes; range and history queries read committed state only.
type Txn struct {
	db     *DB
	txID   string
	ts     time.Time
	writes map[string]*write
	order  []string
	done   bool
}

// TxID returns the transaction ID
func (t *Txn) TxID() string {
	return t.txID
}

// TxTimestamp returns the transaction timestamp
func (t *Txn) TxTimestamp() (time.Time, error) {
	return t.ts, nil
}

// GetState returns the value for the given key
func (t *Txn) GetState(key string) ([]byte, error) {
	if t.done {
		return nil, ErrTxnDone
	}

	if w, ok := t.writes[key]; ok {
		if w.isDelete {
			return nil, nil
		}
		return w.value, nil
	}

	return t.db.get(key)
}

// PutState saves the value for the given key. Writing an empty value deletes the key.
func (t *Txn) PutState(key string, value []byte) error {
	if len(value) == 0 {
		return t.DelState(key)
	}

	if err := t.checkWrite(key); err != nil {
		return err
	}

	v := make([]byte, len(value))
	copy(v, value)

	t.setWrite(key, &write{value: v})

	return nil
}

// DelState deletes the given key
func (t *Txn) DelState(key string) error {
	if err := t.checkWrite(key); err != nil {
		return err
	}

	t.setWrite(key, &write{isDelete: true})

	return nil
}

// GetStateByRange returns an iterator over the committed keys in the range [startKey, endKey)
func (t *Txn) GetStateByRange(startKey, endKey string) (api.KVIterator, error) {
	if t.done {
		return nil, ErrTxnDone
	}

	r := util.BytesPrefix([]byte(statePrefix + sep))
	if startKey != "" {
		r.Start = stateKey(startKey)
	}
	if endKey != "" {
		r.Limit = stateKey(endKey)
	}

	return newKVIterator(t.db.db.NewIterator(r, nil), len(statePrefix+sep)), nil
}

// GetHistoryForKey returns an iterator over the committed history of the given key, oldest first
func (t *Txn) GetHistoryForKey(key string) (api.HistoryIterator, error) {
	if t.done {
		return nil, ErrTxnDone
	}

	if key == "" {
		return nil, errors.New("key must not be empty")
	}

	prefix := historyKeyPrefix(key)

	return newHistoryIterator(t.db.db.NewIterator(util.BytesPrefix(prefix), nil), len(prefix)+seqLen), nil
}

// Commit writes all pending changes along with their history entries in a single batch
func (t *Txn) Commit() error {
	if t.done {
		return ErrTxnDone
	}

	t.done = true

	return t.db.commit(t)
}

// Discard drops all pending changes
func (t *Txn) Discard() {
	if !t.done {
		logger.Debugf("[%s] Discarding transaction", t.txID)
	}

	t.done = true
}

func (t *Txn) checkWrite(key string) error {
	if t.done {
		return ErrTxnDone
	}

	if key == "" {
		return errors.New("key must not be empty")
	}

	return nil
}

func (t *Txn) setWrite(key string, w *write) {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}

	t.writes[key] = w
}
