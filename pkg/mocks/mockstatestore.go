/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"sort"
	"time"

	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

// BaseTime is the timestamp of the first mock transaction. Each subsequent transaction is one second later.
var BaseTime = time.Date(2023, time.July, 24, 8, 0, 0, 0, time.UTC)

// StateStore is an in-memory mock StateStore which records the history of every key
type StateStore struct {
	state      map[string][]byte
	history    map[string][]*queryresult.KeyModification
	txID       string
	txTime     time.Time
	txCount    int
	getErr     error
	putErr     error
	delErr     error
	rangeErr   error
	histErr    error
	tsErr      error
	iterErr    error
	closeErr   error
	kvIts      []*KVIterator
	historyIts []*HistoryIterator
}

// NewStateStore returns a new mock StateStore
func NewStateStore() *StateStore {
	return &StateStore{
		state:   make(map[string][]byte),
		history: make(map[string][]*queryresult.KeyModification),
		txID:    "tx0",
		txTime:  BaseTime,
	}
}

// WithTxID starts a new mock transaction with the given ID
func (m *StateStore) WithTxID(txID string) *StateStore {
	m.txCount++
	m.txID = txID
	m.txTime = BaseTime.Add(time.Duration(m.txCount) * time.Second)
	return m
}

// WithState sets the state for the given key without recording history
func (m *StateStore) WithState(key string, value []byte) *StateStore {
	m.state[key] = value
	return m
}

// WithGetError injects an error into GetState
func (m *StateStore) WithGetError(err error) *StateStore {
	m.getErr = err
	return m
}

// WithPutError injects an error into PutState
func (m *StateStore) WithPutError(err error) *StateStore {
	m.putErr = err
	return m
}

// WithDelError injects an error into DelState
func (m *StateStore) WithDelError(err error) *StateStore {
	m.delErr = err
	return m
}

// WithRangeError injects an error into GetStateByRange
func (m *StateStore) WithRangeError(err error) *StateStore {
	m.rangeErr = err
	return m
}

// WithHistoryError injects an error into GetHistoryForKey
func (m *StateStore) WithHistoryError(err error) *StateStore {
	m.histErr = err
	return m
}

// WithTimestampError injects an error into TxTimestamp
func (m *StateStore) WithTimestampError(err error) *StateStore {
	m.tsErr = err
	return m
}

// WithIteratorError injects an error into the Next function of all subsequently created iterators
func (m *StateStore) WithIteratorError(err error) *StateStore {
	m.iterErr = err
	return m
}

// WithIteratorCloseError injects an error into the Close function of all subsequently created iterators
func (m *StateStore) WithIteratorCloseError(err error) *StateStore {
	m.closeErr = err
	return m
}

// GetState returns the value for the given key
func (m *StateStore) GetState(key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.state[key], nil
}

// PutState saves the value for the given key
func (m *StateStore) PutState(key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}

	m.state[key] = value
	m.addHistory(key, value, false)

	return nil
}

// DelState deletes the given key
func (m *StateStore) DelState(key string) error {
	if m.delErr != nil {
		return m.delErr
	}

	delete(m.state, key)
	m.addHistory(key, nil, true)

	return nil
}

// GetStateByRange returns an iterator over a snapshot of the keys in the given range
func (m *StateStore) GetStateByRange(startKey, endKey string) (api.KVIterator, error) {
	if m.rangeErr != nil {
		return nil, m.rangeErr
	}

	var keys []string
	for k := range m.state {
		if (startKey == "" || k >= startKey) && (endKey == "" || k < endKey) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	results := make([]*queryresult.KV, len(keys))
	for i, k := range keys {
		results[i] = &queryresult.KV{Key: k, Value: m.state[k]}
	}

	it := NewKVIterator(results...).WithError(m.iterErr).WithCloseError(m.closeErr)
	m.kvIts = append(m.kvIts, it)

	return it, nil
}

// GetHistoryForKey returns an iterator over the history of the given key
func (m *StateStore) GetHistoryForKey(key string) (api.HistoryIterator, error) {
	if m.histErr != nil {
		return nil, m.histErr
	}

	it := NewHistoryIterator(m.history[key]...).WithError(m.iterErr).WithCloseError(m.closeErr)
	m.historyIts = append(m.historyIts, it)

	return it, nil
}

// TxID returns the ID of the current mock transaction
func (m *StateStore) TxID() string {
	return m.txID
}

// TxTimestamp returns the timestamp of the current mock transaction
func (m *StateStore) TxTimestamp() (time.Time, error) {
	if m.tsErr != nil {
		return time.Time{}, m.tsErr
	}
	return m.txTime, nil
}

// KVIterators returns all range iterators that were handed out
func (m *StateStore) KVIterators() []*KVIterator {
	return m.kvIts
}

// HistoryIterators returns all history iterators that were handed out
func (m *StateStore) HistoryIterators() []*HistoryIterator {
	return m.historyIts
}

// addHistory records a modification. Only the last write of a transaction is kept, as with the ledger's history database.
func (m *StateStore) addHistory(key string, value []byte, isDelete bool) {
	km := &queryresult.KeyModification{
		TxId:      m.txID,
		Value:     value,
		Timestamp: timestamppb.New(m.txTime),
		IsDelete:  isDelete,
	}

	mods := m.history[key]
	if n := len(mods); n > 0 && mods[n-1].TxId == m.txID {
		mods[n-1] = km
		return
	}

	m.history[key] = append(mods, km)
}
