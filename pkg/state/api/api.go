/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package api

import (
	"time"

	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
)

// KVIterator iterates through the results of a range query
type KVIterator interface {
	HasNext() bool
	Next() (*queryresult.KV, error)
	Close() error
}

// HistoryIterator iterates through the modifications made to a single key, oldest first
type HistoryIterator interface {
	HasNext() bool
	Next() (*queryresult.KeyModification, error)
	Close() error
}

// StateRetriever retrieves ledger state
type StateRetriever interface {
	// GetState returns the value for the given key. A nil or empty value means that the key does not exist.
	GetState(key string) ([]byte, error)
	// GetStateByRange returns an iterator over the keys in the range [startKey, endKey). Empty bounds
	// mean that the range is open on that side.
	GetStateByRange(startKey, endKey string) (KVIterator, error)
	// GetHistoryForKey returns an iterator over all values ever written to the key
	GetHistoryForKey(key string) (HistoryIterator, error)
}

// StateStore extends the StateRetriever and adds functions to save ledger state
type StateStore interface {
	StateRetriever
	PutState(key string, value []byte) error
	DelState(key string) error
	// TxID returns the ID of the transaction in which the store is being accessed
	TxID() string
	// TxTimestamp returns the timestamp of the transaction in which the store is being accessed
	TxTimestamp() (time.Time, error)
}
