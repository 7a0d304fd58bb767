/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// idField is the JSON name of the record ID. A JSON object without it is not a record.
const idField = "ProdID"

// Record is a single entry in the world state. Records of different families may share
// a keyspace, in which case DocType tells them apart.
type Record struct {
	ID          string `json:"ProdID"`
	Type        string `json:"Type"`
	HarvestDate string `json:"HarvestDate"`
	Owner       string `json:"Owner"`
	Grade       int    `json:"Grade"`
	DocType     string `json:"docType"`
}

// UnmarshalJSON decodes the record. Grade is accepted either as a number or as a quoted
// integer, which is how records written with string arguments store it.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record

	aux := struct {
		plain
		Grade json.Number `json:"Grade"`
	}{plain: plain(*r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	*r = Record(aux.plain)

	if aux.Grade == "" {
		return nil
	}

	grade, err := strconv.Atoi(aux.Grade.String())
	if err != nil {
		return errors.Errorf("grade must be an integer: [%s]", aux.Grade)
	}

	r.Grade = grade

	return nil
}

// String returns a readable representation of the record
func (r *Record) String() string {
	return fmt.Sprintf("[%s] ID: %s, Type: %s, HarvestDate: %s, Owner: %s, Grade: %d",
		r.DocType, r.ID, r.Type, r.HarvestDate, r.Owner, r.Grade)
}

// Family describes a family of records that is managed by one contract
type Family struct {
	// DocType is the discriminator stored with every record of the family
	DocType string
	// Name is the singular name used in function names, e.g. CreateProduce
	Name string
	// Plural is used in listing function names, e.g. GetAllAssets
	Plural string
	// Seeds are the example records written by InitLedger
	Seeds []Record
}

// Asset is the asset record family
var Asset = Family{
	DocType: "asset",
	Name:    "Asset",
	Plural:  "Assets",
	Seeds: []Record{
		{ID: "asset1", Type: "blue", HarvestDate: "5", Owner: "Tomoko", Grade: 300},
		{ID: "asset2", Type: "red", HarvestDate: "5", Owner: "Brad", Grade: 400},
		{ID: "asset3", Type: "green", HarvestDate: "10", Owner: "Jin Soo", Grade: 500},
		{ID: "asset4", Type: "yellow", HarvestDate: "10", Owner: "Max", Grade: 600},
		{ID: "asset5", Type: "black", HarvestDate: "15", Owner: "Adriana", Grade: 700},
		{ID: "asset6", Type: "white", HarvestDate: "15", Owner: "Michel", Grade: 800},
	},
}

// Produce is the produce record family
var Produce = Family{
	DocType: "produce",
	Name:    "Produce",
	Plural:  "Produce",
	Seeds: []Record{
		{ID: "P0000", Type: "Avocado", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 3},
		{ID: "P0001", Type: "Maize", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 4},
		{ID: "P0003", Type: "Coffee", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 1},
		{ID: "P0004", Type: "Coffee", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 2},
		{ID: "P0005", Type: "Mango", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 2},
		{ID: "P0006", Type: "Milk", HarvestDate: "JULY-23", Owner: "Tomoko", Grade: 4},
	},
}

var families = map[string]Family{
	Asset.DocType:   Asset,
	Produce.DocType: Produce,
}

// FamilyForDocType returns the built-in family with the given doc type
func FamilyForDocType(docType string) (Family, bool) {
	f, ok := families[docType]
	return f, ok
}

// DocTypes returns the doc types of all built-in families
func DocTypes() []string {
	return []string{Asset.DocType, Produce.DocType}
}
