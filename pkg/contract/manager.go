/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package contract

import (
	"time"

	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/pkg/errors"

	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
	"github.com/trustbloc/fabric-record-cc/pkg/state"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

var logger = logging.MustGetLogger("contract")

// ListEntry is a key along with its current (possibly undecodable) value
type ListEntry struct {
	Key    string         `json:"Key"`
	Record record.Payload `json:"Record"`
}

// HistoryEntry is the value of a record as of the given transaction. Value is nil if the
// transaction deleted the record.
type HistoryEntry struct {
	TxID      string          `json:"TxId"`
	Timestamp time.Time       `json:"TimeStamp"`
	IsDelete  bool            `json:"IsDelete"`
	Value     *record.Payload `json:"Value"`
}

// Option is a Manager option
type Option func(m *Manager)

// WithRejectExisting causes Create to fail with ErrAlreadyExists if the record already exists.
// By default Create overwrites an existing record.
func WithRejectExisting(reject bool) Option {
	return func(m *Manager) {
		m.rejectExisting = reject
	}
}

// Manager manages the records of one family. The manager holds no state between calls;
// the store is passed into every operation.
type Manager struct {
	family         record.Family
	rejectExisting bool
}

// NewManager returns a new record manager for the given family
func NewManager(family record.Family, opts ...Option) *Manager {
	m := &Manager{family: family}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Family returns the family of records managed by this manager
func (m *Manager) Family() record.Family {
	return m.family
}

// Exists returns true if a record with the given ID exists
func (m *Manager) Exists(store api.StateRetriever, id string) (bool, error) {
	value, err := store.GetState(id)
	if err != nil {
		return false, errors.WithMessagef(err, "error getting %s [%s]", m.family.DocType, id)
	}

	return len(value) > 0, nil
}

// Create saves a new record. Unless the manager was created with WithRejectExisting(true),
// an existing record with the same ID is overwritten.
func (m *Manager) Create(store api.StateStore, id, recordType, harvestDate, owner string, grade int) (*record.Record, error) {
	if id == "" {
		return nil, errors.WithMessagef(ErrInvalidArgument, "%s ID must not be empty", m.family.DocType)
	}

	if m.rejectExisting {
		exists, err := m.Exists(store, id)
		if err != nil {
			return nil, err
		}

		if exists {
			return nil, errors.WithMessagef(ErrAlreadyExists, "the %s %s already exists", m.family.DocType, id)
		}
	}

	r := m.newRecord(id, recordType, harvestDate, owner, grade)

	if err := m.put(store, r); err != nil {
		return nil, err
	}

	logger.Debugf("[%s] Created %s", store.TxID(), r)

	return r, nil
}

// Read returns the record with the given ID
func (m *Manager) Read(store api.StateRetriever, id string) (*record.Record, error) {
	value, err := store.GetState(id)
	if err != nil {
		return nil, errors.WithMessagef(err, "error getting %s [%s]", m.family.DocType, id)
	}

	if len(value) == 0 {
		return nil, m.notFound(id)
	}

	r, err := record.DecodeRecord(value)
	if err != nil {
		return nil, errors.WithMessagef(err, "the %s %s could not be decoded", m.family.DocType, id)
	}

	return r, nil
}

// Update replaces the record with the given ID. All fields are overwritten.
func (m *Manager) Update(store api.StateStore, id, recordType, harvestDate, owner string, grade int) error {
	if err := m.checkExists(store, id); err != nil {
		return err
	}

	r := m.newRecord(id, recordType, harvestDate, owner, grade)

	if err := m.put(store, r); err != nil {
		return err
	}

	logger.Debugf("[%s] Updated %s", store.TxID(), r)

	return nil
}

// Delete deletes the record with the given ID
func (m *Manager) Delete(store api.StateStore, id string) error {
	if err := m.checkExists(store, id); err != nil {
		return err
	}

	if err := store.DelState(id); err != nil {
		return errors.WithMessagef(err, "error deleting %s [%s]", m.family.DocType, id)
	}

	logger.Debugf("[%s] Deleted %s [%s]", store.TxID(), m.family.DocType, id)

	return nil
}

// Transfer sets the owner of the record with the given ID. All other fields are preserved.
func (m *Manager) Transfer(store api.StateStore, id, newOwner string) error {
	if newOwner == "" {
		return errors.WithMessage(ErrInvalidArgument, "new owner must not be empty")
	}

	r, err := m.Read(store, id)
	if err != nil {
		return err
	}

	oldOwner := r.Owner
	r.Owner = newOwner

	if err := m.put(store, r); err != nil {
		return err
	}

	logger.Debugf("[%s] Transferred %s [%s] from [%s] to [%s]", store.TxID(), m.family.DocType, id, oldOwner, newOwner)

	return nil
}

// ListAll returns all keys in the namespace along with their values. Values that cannot be
// decoded are returned as raw strings.
func (m *Manager) ListAll(store api.StateRetriever) ([]*ListEntry, error) {
	it, err := store.GetStateByRange("", "")
	if err != nil {
		return nil, errors.WithMessage(err, "error querying all keys")
	}

	var results []*ListEntry

	err = state.ForEachKV(it, func(kv *queryresult.KV) error {
		p := record.Decode(kv.Value)
		if p.IsRaw() {
			logger.Warnf("Value for key [%s] is not a valid record", kv.Key)
		}

		results = append(results, &ListEntry{Key: kv.Key, Record: p})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// GetHistory returns all values that were ever written to the given key, oldest first.
// The history includes deletions.
func (m *Manager) GetHistory(store api.StateRetriever, id string) ([]*HistoryEntry, error) {
	if id == "" {
		return nil, errors.WithMessagef(ErrInvalidArgument, "%s ID must not be empty", m.family.DocType)
	}

	it, err := store.GetHistoryForKey(id)
	if err != nil {
		return nil, errors.WithMessagef(err, "error getting history for %s [%s]", m.family.DocType, id)
	}

	var results []*HistoryEntry

	err = state.ForEachModification(it, func(km *queryresult.KeyModification) error {
		entry := &HistoryEntry{
			TxID:     km.TxId,
			IsDelete: km.IsDelete,
		}

		if km.Timestamp != nil {
			entry.Timestamp = km.Timestamp.AsTime()
		}

		if !km.IsDelete {
			p := record.Decode(km.Value)
			if p.IsRaw() {
				logger.Warnf("Value for key [%s] in transaction [%s] is not a valid record", id, km.TxId)
			}

			entry.Value = &p
		}

		results = append(results, entry)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// InitLedger creates the example records of the family
func (m *Manager) InitLedger(store api.StateStore) error {
	for _, seed := range m.family.Seeds {
		if _, err := m.Create(store, seed.ID, seed.Type, seed.HarvestDate, seed.Owner, seed.Grade); err != nil {
			return errors.WithMessagef(err, "error initializing %s [%s]", m.family.DocType, seed.ID)
		}

		logger.Infof("%s %s initialized", m.family.Name, seed.ID)
	}

	return nil
}

func (m *Manager) newRecord(id, recordType, harvestDate, owner string, grade int) *record.Record {
	return &record.Record{
		ID:          id,
		Type:        recordType,
		HarvestDate: harvestDate,
		Owner:       owner,
		Grade:       grade,
		DocType:     m.family.DocType,
	}
}

func (m *Manager) put(store api.StateStore, r *record.Record) error {
	value, err := record.Encode(r)
	if err != nil {
		return errors.WithMessagef(err, "error marshalling %s [%s]", m.family.DocType, r.ID)
	}

	if err := store.PutState(r.ID, value); err != nil {
		return errors.WithMessagef(err, "error saving %s [%s]", m.family.DocType, r.ID)
	}

	return nil
}

func (m *Manager) checkExists(store api.StateRetriever, id string) error {
	exists, err := m.Exists(store, id)
	if err != nil {
		return err
	}

	if !exists {
		return m.notFound(id)
	}

	return nil
}

func (m *Manager) notFound(id string) error {
	return errors.WithMessagef(ErrNotFound, "the %s %s does not exist", m.family.DocType, id)
}
