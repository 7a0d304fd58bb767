/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
)

// KVIterator is a mock key-value iterator
type KVIterator struct {
	results  []*queryresult.KV
	nextIdx  int
	err      error
	closeErr error
	closed   bool
}

// NewKVIterator returns a mock key-value iterator
func NewKVIterator(results ...*queryresult.KV) *KVIterator {
	return &KVIterator{results: results}
}

// WithError injects an error which is returned from Next
func (m *KVIterator) WithError(err error) *KVIterator {
	m.err = err
	return m
}

// WithCloseError injects an error which is returned from Close
func (m *KVIterator) WithCloseError(err error) *KVIterator {
	m.closeErr = err
	return m
}

// HasNext returns true if there are more items. If an error was injected then true is
// returned so that the caller gets the error from Next.
func (m *KVIterator) HasNext() bool {
	if m.closed {
		return false
	}
	return m.err != nil || m.nextIdx < len(m.results)
}

// Next returns the next item
func (m *KVIterator) Next() (*queryresult.KV, error) {
	if m.err != nil {
		return nil, m.err
	}

	if m.nextIdx >= len(m.results) {
		return nil, nil
	}

	kv := m.results[m.nextIdx]
	m.nextIdx++

	return kv, nil
}

// Close closes the iterator
func (m *KVIterator) Close() error {
	m.closed = true
	return m.closeErr
}

// Closed returns true if Close was called
func (m *KVIterator) Closed() bool {
	return m.closed
}

// HistoryIterator is a mock history iterator
type HistoryIterator struct {
	results  []*queryresult.KeyModification
	nextIdx  int
	err      error
	closeErr error
	closed   bool
}

// NewHistoryIterator returns a mock history iterator
func NewHistoryIterator(results ...*queryresult.KeyModification) *HistoryIterator {
	return &HistoryIterator{results: results}
}

// WithError injects an error which is returned from Next
func (m *HistoryIterator) WithError(err error) *HistoryIterator {
	m.err = err
	return m
}

// WithCloseError injects an error which is returned from Close
func (m *HistoryIterator) WithCloseError(err error) *HistoryIterator {
	m.closeErr = err
	return m
}

// HasNext returns true if there are more items
func (m *HistoryIterator) HasNext() bool {
	if m.closed {
		return false
	}
	return m.err != nil || m.nextIdx < len(m.results)
}

// Next returns the next item
func (m *HistoryIterator) Next() (*queryresult.KeyModification, error) {
	if m.err != nil {
		return nil, m.err
	}

	if m.nextIdx >= len(m.results) {
		return nil, nil
	}

	km := m.results[m.nextIdx]
	m.nextIdx++

	return km, nil
}

// Close closes the iterator
func (m *HistoryIterator) Close() error {
	m.closed = true
	return m.closeErr
}

// Closed returns true if Close was called
func (m *HistoryIterator) Closed() bool {
	return m.closed
}
