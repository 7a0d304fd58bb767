/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Stub extends the shimtest MockStub with a key history (which MockStub does not implement)
// and with error injection. Invoke should be used instead of MockInvoke so that the chaincode
// is handed this stub rather than the embedded MockStub.
type Stub struct {
	*shimtest.MockStub
	args     [][]byte
	history  map[string][]*queryresult.KeyModification
	getErr   error
	putErr   error
	delErr   error
	rangeErr error
	histErr  error
	closeErr error
	its      []*HistoryIterator
}

// NewStub returns a new mock stub
func NewStub(name string) *Stub {
	return &Stub{
		MockStub: shimtest.NewMockStub(name, nil),
		history:  make(map[string][]*queryresult.KeyModification),
	}
}

// WithGetError injects an error into GetState
func (s *Stub) WithGetError(err error) *Stub {
	s.getErr = err
	return s
}

// WithPutError injects an error into PutState
func (s *Stub) WithPutError(err error) *Stub {
	s.putErr = err
	return s
}

// WithDelError injects an error into DelState
func (s *Stub) WithDelError(err error) *Stub {
	s.delErr = err
	return s
}

// WithRangeError injects an error into GetStateByRange
func (s *Stub) WithRangeError(err error) *Stub {
	s.rangeErr = err
	return s
}

// WithHistoryError injects an error into GetHistoryForKey
func (s *Stub) WithHistoryError(err error) *Stub {
	s.histErr = err
	return s
}

// WithHistoryCloseError injects an error into the Close function of history iterators
func (s *Stub) WithHistoryCloseError(err error) *Stub {
	s.closeErr = err
	return s
}

// Invoke invokes the given chaincode within a mock transaction
func (s *Stub) Invoke(cc shim.Chaincode, txID string, args ...string) pb.Response {
	s.args = make([][]byte, len(args))
	for i, arg := range args {
		s.args[i] = []byte(arg)
	}

	s.MockTransactionStart(txID)
	defer s.MockTransactionEnd(txID)

	return cc.Invoke(s)
}

// Init initializes the given chaincode within a mock transaction
func (s *Stub) Init(cc shim.Chaincode, txID string, args ...string) pb.Response {
	s.args = make([][]byte, len(args))
	for i, arg := range args {
		s.args[i] = []byte(arg)
	}

	s.MockTransactionStart(txID)
	defer s.MockTransactionEnd(txID)

	return cc.Init(s)
}

// GetArgs returns the arguments of the current invocation
func (s *Stub) GetArgs() [][]byte {
	return s.args
}

// GetStringArgs returns the arguments of the current invocation as strings
func (s *Stub) GetStringArgs() []string {
	strArgs := make([]string, len(s.args))
	for i, arg := range s.args {
		strArgs[i] = string(arg)
	}
	return strArgs
}

// GetFunctionAndParameters returns the first argument as the function and the rest as parameters
func (s *Stub) GetFunctionAndParameters() (string, []string) {
	allArgs := s.GetStringArgs()
	if len(allArgs) == 0 {
		return "", []string{}
	}
	return allArgs[0], allArgs[1:]
}

// GetState returns the value for the given key
func (s *Stub) GetState(key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MockStub.GetState(key)
}

// PutState saves the value and records it in the key's history
func (s *Stub) PutState(key string, value []byte) error {
	if s.putErr != nil {
		return s.putErr
	}

	if err := s.MockStub.PutState(key, value); err != nil {
		return err
	}

	// MockStub deletes the key when an empty value is written
	s.addHistory(key, value, len(value) == 0)

	return nil
}

// DelState deletes the key and records the deletion in the key's history
func (s *Stub) DelState(key string) error {
	if s.delErr != nil {
		return s.delErr
	}

	if err := s.MockStub.DelState(key); err != nil {
		return err
	}

	s.addHistory(key, nil, true)

	return nil
}

// GetStateByRange returns a range iterator
func (s *Stub) GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	if s.rangeErr != nil {
		return nil, s.rangeErr
	}
	return s.MockStub.GetStateByRange(startKey, endKey)
}

// GetHistoryForKey returns an iterator over the recorded history of the given key
func (s *Stub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	if s.histErr != nil {
		return nil, s.histErr
	}

	it := NewHistoryIterator(s.history[key]...).WithCloseError(s.closeErr)
	s.its = append(s.its, it)

	return it, nil
}

// HistoryIterators returns all history iterators that were handed out
func (s *Stub) HistoryIterators() []*HistoryIterator {
	return s.its
}

func (s *Stub) addHistory(key string, value []byte, isDelete bool) {
	ts, err := s.MockStub.GetTxTimestamp()
	if err != nil {
		panic(err)
	}

	km := &queryresult.KeyModification{
		TxId:      s.MockStub.GetTxID(),
		Value:     value,
		Timestamp: ts,
		IsDelete:  isDelete,
	}

	mods := s.history[key]
	if n := len(mods); n > 0 && mods[n-1].TxId == km.TxId {
		mods[n-1] = km
		return
	}

	s.history[key] = append(mods, km)
}
