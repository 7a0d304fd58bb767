/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package state

import (
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/pkg/errors"

	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

var logger = logging.MustGetLogger("state")

// shimStore is a StateStore which uses the chaincode stub to store and retrieve data.
// Every call goes straight to the stub.
type shimStore struct {
	stub shim.ChaincodeStubInterface
}

// NewShimStore returns a StateStore backed by the given chaincode stub
func NewShimStore(stub shim.ChaincodeStubInterface) api.StateStore {
	return &shimStore{stub: stub}
}

// PutState saves the value for the given key
func (s *shimStore) PutState(key string, value []byte) error {
	logger.Debugf("[%s] Putting state for key [%s]", s.stub.GetTxID(), key)
	return s.stub.PutState(key, value)
}

// GetState returns the value for the given key
func (s *shimStore) GetState(key string) ([]byte, error) {
	return s.stub.GetState(key)
}

// DelState deletes the given key
func (s *shimStore) DelState(key string) error {
	logger.Debugf("[%s] Deleting state for key [%s]", s.stub.GetTxID(), key)
	return s.stub.DelState(key)
}

// GetStateByRange returns an iterator for the given key range
func (s *shimStore) GetStateByRange(startKey, endKey string) (api.KVIterator, error) {
	return s.stub.GetStateByRange(startKey, endKey)
}

// GetHistoryForKey returns a history iterator for the given key
func (s *shimStore) GetHistoryForKey(key string) (api.HistoryIterator, error) {
	return s.stub.GetHistoryForKey(key)
}

// TxID returns the ID of the current transaction
func (s *shimStore) TxID() string {
	return s.stub.GetTxID()
}

// TxTimestamp returns the timestamp of the current transaction
func (s *shimStore) TxTimestamp() (time.Time, error) {
	ts, err := s.stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, errors.WithMessage(err, "unable to get transaction timestamp")
	}

	if ts == nil {
		return time.Time{}, errors.New("transaction timestamp not set")
	}

	return ts.AsTime(), nil
}
