/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldbstore

import (
	"encoding/json"

	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// lookahead wraps a leveldb iterator with HasNext/Next semantics
type lookahead struct {
	it      iterator.Iterator
	fetched bool
	valid   bool
	skip    func(key []byte) bool
}

func (l *lookahead) hasNext() bool {
	if !l.fetched {
		l.valid = l.advance()
		l.fetched = true
	}

	return l.valid
}

func (l *lookahead) next() (key, value []byte, err error) {
	if !l.hasNext() {
		if err := l.it.Error(); err != nil {
			return nil, nil, err
		}
		return nil, nil, errors.New("Next() called when there is no next")
	}

	l.fetched = false

	key = append([]byte(nil), l.it.Key()...)
	value = append([]byte(nil), l.it.Value()...)

	return key, value, nil
}

func (l *lookahead) advance() bool {
	for l.it.Next() {
		if l.skip == nil || !l.skip(l.it.Key()) {
			return true
		}
	}

	return false
}

func (l *lookahead) close() error {
	l.it.Release()
	return l.it.Error()
}

type kvIterator struct {
	lookahead
	prefixLen int
}

func newKVIterator(it iterator.Iterator, prefixLen int) *kvIterator {
	return &kvIterator{
		lookahead: lookahead{it: it},
		prefixLen: prefixLen,
	}
}

// HasNext returns true if there are more items
func (it *kvIterator) HasNext() bool {
	return it.hasNext()
}

// Next returns the next key and value
func (it *kvIterator) Next() (*queryresult.KV, error) {
	key, value, err := it.next()
	if err != nil {
		return nil, err
	}

	return &queryresult.KV{
		Key:   string(key[it.prefixLen:]),
		Value: value,
	}, nil
}

// Close releases the iterator
func (it *kvIterator) Close() error {
	return it.close()
}

type historyIterator struct {
	lookahead
}

func newHistoryIterator(it iterator.Iterator, keyLen int) *historyIterator {
	return &historyIterator{
		lookahead: lookahead{
			it: it,
			// Entries of other keys that share the prefix are longer
			skip: func(key []byte) bool { return len(key) != keyLen },
		},
	}
}

// HasNext returns true if there are more items
func (it *historyIterator) HasNext() bool {
	return it.hasNext()
}

// Next returns the next modification
func (it *historyIterator) Next() (*queryresult.KeyModification, error) {
	_, value, err := it.next()
	if err != nil {
		return nil, err
	}

	entry := &historyEntry{}
	if err := json.Unmarshal(value, entry); err != nil {
		return nil, errors.WithMessage(err, "error unmarshalling history entry")
	}

	return &queryresult.KeyModification{
		TxId:      entry.TxID,
		Value:     entry.Value,
		Timestamp: timestamppb.New(entry.Timestamp),
		IsDelete:  entry.IsDelete,
	}, nil
}

// Close releases the iterator
func (it *historyIterator) Close() error {
	return it.close()
}
