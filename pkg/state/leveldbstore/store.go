/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldbstore

import (
	"encoding/binary"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

var logger = logging.MustGetLogger("leveldbstore")

const (
	statePrefix   = "s"
	historyPrefix = "h"
	sep           = "\x00"
	seqLen        = 8
)

// ErrTxnDone is returned when a transaction is used after it was committed or discarded
var ErrTxnDone = errors.New("transaction has already been committed or discarded")

// DB is an embedded key-value store which keeps the history of every key. All writes
// are made through transactions (see Begin and Update).
type DB struct {
	db      *leveldb.DB
	mutex   sync.Mutex
	clock   func() time.Time
	newTxID func() string
}

// Option is a DB option
type Option func(db *DB)

// WithClock sets the clock used to timestamp transactions
func WithClock(clock func() time.Time) Option {
	return func(db *DB) {
		db.clock = clock
	}
}

// WithTxIDGenerator sets the function that generates transaction IDs
func WithTxIDGenerator(newTxID func() string) Option {
	return func(db *DB) {
		db.newTxID = newTxID
	}
}

// Open opens (or creates) the database at the given path
func Open(path string, opts ...Option) (*DB, error) {
	logger.Debugf("Opening database at [%s]", path)

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "error opening database at [%s]", path)
	}

	return newDB(db, opts...), nil
}

// OpenWithStorage opens the database using the given storage. This is mainly useful
// for tests (see storage.NewMemStorage).
func OpenWithStorage(stor storage.Storage, opts ...Option) (*DB, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, errors.WithMessage(err, "error opening database")
	}

	return newDB(db, opts...), nil
}

func newDB(db *leveldb.DB, opts ...Option) *DB {
	d := &DB{
		db: db,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newTxID: func() string {
			return uuid.New().String()
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

// Begin starts a new transaction
func (d *DB) Begin() *Txn {
	txn := &Txn{
		db:     d,
		txID:   d.newTxID(),
		ts:     d.clock(),
		writes: make(map[string]*write),
	}

	logger.Debugf("[%s] Transaction started", txn.txID)

	return txn
}

// Update runs the given function in a new transaction. The transaction is committed if the
// function returns nil, otherwise it is discarded and the function's error is returned.
func (d *DB) Update(fn func(store api.StateStore) error) error {
	txn := d.Begin()

	if err := fn(txn); err != nil {
		txn.Discard()
		return err
	}

	return txn.Commit()
}

// View runs the given function in a new transaction which is always discarded
func (d *DB) View(fn func(store api.StateRetriever) error) error {
	txn := d.Begin()
	defer txn.Discard()

	return fn(txn)
}

func (d *DB) get(key string) ([]byte, error) {
	value, err := d.db.Get(stateKey(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "error getting state for key [%s]", key)
	}

	return value, nil
}

func (d *DB) commit(txn *Txn) error {
	if len(txn.order) == 0 {
		logger.Debugf("[%s] Nothing to commit", txn.txID)
		return nil
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	batch := new(leveldb.Batch)

	for _, key := range txn.order {
		w := txn.writes[key]

		if w.isDelete {
			batch.Delete(stateKey(key))
		} else {
			batch.Put(stateKey(key), w.value)
		}

		seq, err := d.lastSeq(key)
		if err != nil {
			return err
		}

		entryBytes, err := json.Marshal(&historyEntry{
			TxID:      txn.txID,
			Timestamp: txn.ts,
			IsDelete:  w.isDelete,
			Value:     w.value,
		})
		if err != nil {
			return errors.WithMessagef(err, "error marshalling history entry for key [%s]", key)
		}

		batch.Put(historyKey(key, seq+1), entryBytes)
	}

	if err := d.db.Write(batch, nil); err != nil {
		return errors.WithMessagef(err, "[%s] error committing transaction", txn.txID)
	}

	logger.Debugf("[%s] Committed %d key(s)", txn.txID, len(txn.order))

	return nil
}

// lastSeq returns the sequence number of the most recent history entry of the given key, or 0 if there is none
func (d *DB) lastSeq(key string) (uint64, error) {
	it := d.db.NewIterator(util.BytesPrefix(historyKeyPrefix(key)), nil)
	defer it.Release()

	prefixLen := len(historyKeyPrefix(key))

	for ok := it.Last(); ok; ok = it.Prev() {
		if len(it.Key()) == prefixLen+seqLen {
			return binary.BigEndian.Uint64(it.Key()[prefixLen:]), nil
		}
	}

	if err := it.Error(); err != nil {
		return 0, errors.WithMessagef(err, "error reading history for key [%s]", key)
	}

	return 0, nil
}

type write struct {
	value    []byte
	isDelete bool
}

type historyEntry struct {
	TxID      string    `json:"TxId"`
	Timestamp time.Time `json:"Timestamp"`
	IsDelete  bool      `json:"IsDelete"`
	Value     []byte    `json:"Value,omitempty"`
}

func stateKey(key string) []byte {
	return []byte(statePrefix + sep + key)
}

func historyKeyPrefix(key string) []byte {
	return []byte(historyPrefix + sep + key + sep)
}

func historyKey(key string, seq uint64) []byte {
	prefix := historyKeyPrefix(key)

	k := make([]byte, len(prefix)+seqLen)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], seq)

	return k
}
