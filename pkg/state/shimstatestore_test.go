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

const (
	ns1  = "ns1"
	key1 = "key1"
	key2 = "key2"
	key3 = "key3"
)

func TestShimStore_GetPutDel(t *testing.T) {
	stub := mocks.NewStub(ns1)
	stub.MockTransactionStart("tx1")
	defer stub.MockTransactionEnd("tx1")

	s := NewShimStore(stub)
	require.Equal(t, "tx1", s.TxID())

	ts, err := s.TxTimestamp()
	require.NoError(t, err)
	require.False(t, ts.IsZero())

	v1 := []byte("v1")

	require.NoError(t, s.PutState(key1, v1))

	v, err := s.GetState(key1)
	require.NoError(t, err)
	require.Equal(t, v1, v)

	require.NoError(t, s.DelState(key1))

	v, err = s.GetState(key1)
	require.NoError(t, err)
	require.Nil(t, v)

	t.Run("Errors", func(t *testing.T) {
		errExpected := errors.New("injected error")

		stub := mocks.NewStub(ns1).WithGetError(errExpected).WithPutError(errExpected).WithDelError(errExpected)
		s := NewShimStore(stub)

		_, err := s.GetState(key1)
		require.Equal(t, errExpected, err)
		require.Equal(t, errExpected, s.PutState(key1, v1))
		require.Equal(t, errExpected, s.DelState(key1))
	})
}

func TestShimStore_GetStateByRange(t *testing.T) {
	stub := mocks.NewStub(ns1)
	stub.MockTransactionStart("tx1")
	defer stub.MockTransactionEnd("tx1")

	s := NewShimStore(stub)

	require.NoError(t, s.PutState(key2, []byte("v2")))
	require.NoError(t, s.PutState(key3, []byte("v3")))
	require.NoError(t, s.PutState(key1, []byte("v1")))

	it, err := s.GetStateByRange("", "")
	require.NoError(t, err)

	var keys []string
	require.NoError(t, ForEachKV(it, func(kv *queryresult.KV) error {
		keys = append(keys, kv.Key)
		return nil
	}))
	require.Equal(t, []string{key1, key2, key3}, keys)

	it, err = s.GetStateByRange(key2, key3)
	require.NoError(t, err)
	require.True(t, it.HasNext())

	kv, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, key2, kv.Key)
	require.False(t, it.HasNext())
	require.NoError(t, it.Close())

	t.Run("Error", func(t *testing.T) {
		errExpected := errors.New("injected range error")

		it, err := NewShimStore(mocks.NewStub(ns1).WithRangeError(errExpected)).GetStateByRange("", "")
		require.Equal(t, errExpected, err)
		require.Nil(t, it)
	})
}

func TestShimStore_GetHistoryForKey(t *testing.T) {
	stub := mocks.NewStub(ns1)
	s := NewShimStore(stub)

	stub.MockTransactionStart("tx1")
	require.NoError(t, s.PutState(key1, []byte("v1")))
	stub.MockTransactionEnd("tx1")

	stub.MockTransactionStart("tx2")
	require.NoError(t, s.DelState(key1))
	stub.MockTransactionEnd("tx2")

	it, err := s.GetHistoryForKey(key1)
	require.NoError(t, err)

	var txIDs []string
	var deletes []bool
	require.NoError(t, ForEachModification(it, func(km *queryresult.KeyModification) error {
		txIDs = append(txIDs, km.TxId)
		deletes = append(deletes, km.IsDelete)
		return nil
	}))

	require.Equal(t, []string{"tx1", "tx2"}, txIDs)
	require.Equal(t, []bool{false, true}, deletes)
	require.True(t, stub.HistoryIterators()[0].Closed())

	t.Run("Error", func(t *testing.T) {
		errExpected := errors.New("injected history error")

		it, err := NewShimStore(mocks.NewStub(ns1).WithHistoryError(errExpected)).GetHistoryForKey(key1)
		require.Equal(t, errExpected, err)
		require.Nil(t, it)
	})
}
