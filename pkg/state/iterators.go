/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package state

import (
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/pkg/errors"

	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

// ErrStop may be returned from an iteration callback to stop iterating without an error
var ErrStop = errors.New("stop iteration")

type closer interface {
	Close() error
}

// ForEachKV invokes fn for each result of the given iterator. The iterator is always closed
// before returning, including when fn or the iterator returns an error.
func ForEachKV(it api.KVIterator, fn func(kv *queryresult.KV) error) (err error) {
	defer closeIterator(it, &err)

	for it.HasNext() {
		kv, e := it.Next()
		if e != nil {
			return errors.WithMessage(e, "error advancing range iterator")
		}

		if e := fn(kv); e != nil {
			if e == ErrStop {
				return nil
			}
			return e
		}
	}

	return nil
}

// ForEachModification invokes fn for each result of the given history iterator. The iterator
// is always closed before returning, including when fn or the iterator returns an error.
func ForEachModification(it api.HistoryIterator, fn func(km *queryresult.KeyModification) error) (err error) {
	defer closeIterator(it, &err)

	for it.HasNext() {
		km, e := it.Next()
		if e != nil {
			return errors.WithMessage(e, "error advancing history iterator")
		}

		if e := fn(km); e != nil {
			if e == ErrStop {
				return nil
			}
			return e
		}
	}

	return nil
}

// closeIterator closes the iterator. The close error is only reported if no other error occurred.
func closeIterator(it closer, err *error) {
	if e := it.Close(); e != nil {
		logger.Warnf("Error closing iterator: %s", e)

		if *err == nil {
			*err = errors.WithMessage(e, "error closing iterator")
		}
	}
}
