/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package state

import (
	"testing"

	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fabric-record-cc/pkg/mocks"
)

func TestForEachKV(t *testing.T) {
	kvs := []*queryresult.KV{
		{Key: key1, Value: []byte("v1")},
		{Key: key2, Value: []byte("v2")},
		{Key: key3, Value: []byte("v3")},
	}

	t.Run("All", func(t *testing.T) {
		it := mocks.NewKVIterator(kvs...)

		var keys []string
		require.NoError(t, ForEachKV(it, func(kv *queryresult.KV) error {
			keys = append(keys, kv.Key)
			return nil
		}))
		require.Equal(t, []string{key1, key2, key3}, keys)
		require.True(t, it.Closed())
	})

	t.Run("Stop", func(t *testing.T) {
		it := mocks.NewKVIterator(kvs...)

		var keys []string
		require.NoError(t, ForEachKV(it, func(kv *queryresult.KV) error {
			keys = append(keys, kv.Key)
			if kv.Key == key2 {
				return ErrStop
			}
			return nil
		}))
		require.Equal(t, []string{key1, key2}, keys)
		require.True(t, it.Closed())
	})

	t.Run("Callback error", func(t *testing.T) {
		errExpected := errors.New("callback error")
		it := mocks.NewKVIterator(kvs...).WithCloseError(errors.New("close error"))

		err := ForEachKV(it, func(kv *queryresult.KV) error {
			return errExpected
		})
		require.Equal(t, errExpected, err)
		require.True(t, it.Closed())
	})

	t.Run("Next error", func(t *testing.T) {
		errExpected := errors.New("next error")
		it := mocks.NewKVIterator(kvs...).WithError(errExpected)

		err := ForEachKV(it, func(kv *queryresult.KV) error {
			t.Fatal("callback should not be invoked")
			return nil
		})
		require.Error(t, err)
		require.Equal(t, errExpected, errors.Cause(err))
		require.True(t, it.Closed())
	})

	t.Run("Close error", func(t *testing.T) {
		errExpected := errors.New("close error")
		it := mocks.NewKVIterator(kvs...).WithCloseError(errExpected)

		err := ForEachKV(it, func(kv *queryresult.KV) error { return nil })
		require.Error(t, err)
		require.Equal(t, errExpected, errors.Cause(err))
		require.Contains(t, err.Error(), "error closing iterator")
	})
}

func TestForEachModification(t *testing.T) {
	mods := []*queryresult.KeyModification{
		{TxId: "tx1", Value: []byte("v1")},
		{TxId: "tx2", IsDelete: true},
	}

	t.Run("All", func(t *testing.T) {
		it := mocks.NewHistoryIterator(mods...)

		var txIDs []string
		require.NoError(t, ForEachModification(it, func(km *queryresult.KeyModification) error {
			txIDs = append(txIDs, km.TxId)
			return nil
		}))
		require.Equal(t, []string{"tx1", "tx2"}, txIDs)
		require.True(t, it.Closed())
	})

	t.Run("Stop", func(t *testing.T) {
		it := mocks.NewHistoryIterator(mods...)

		count := 0
		require.NoError(t, ForEachModification(it, func(km *queryresult.KeyModification) error {
			count++
			return ErrStop
		}))
		require.Equal(t, 1, count)
		require.True(t, it.Closed())
	})

	t.Run("Next error", func(t *testing.T) {
		errExpected := errors.New("next error")
		it := mocks.NewHistoryIterator(mods...).WithError(errExpected)

		err := ForEachModification(it, func(km *queryresult.KeyModification) error { return nil })
		require.Equal(t, errExpected, errors.Cause(err))
		require.True(t, it.Closed())
	})

	t.Run("Callback error", func(t *testing.T) {
		errExpected := errors.New("callback error")
		it := mocks.NewHistoryIterator(mods...)

		err := ForEachModification(it, func(km *queryresult.KeyModification) error { return errExpected })
		require.Equal(t, errExpected, err)
		require.True(t, it.Closed())
	})

	t.Run("Close error", func(t *testing.T) {
		errExpected := errors.New("close error")
		it := mocks.NewHistoryIterator(mods...).WithCloseError(errExpected)

		err := ForEachModification(it, func(km *queryresult.KeyModification) error { return nil })
		require.Equal(t, errExpected, errors.Cause(err))
	})
}
