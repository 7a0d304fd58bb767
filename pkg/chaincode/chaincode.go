/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package chaincode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
	"github.com/trustbloc/fabric-record-cc/pkg/state"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

var logger = logging.MustGetLogger("chaincode")

// InitLedgerFunc is the name of the function that writes the example records
const InitLedgerFunc = "InitLedger"

type function func(store api.StateStore, args []string) pb.Response

// RecordCC is a chaincode which manages the records of one family
type RecordCC struct {
	mgr              *contract.Manager
	functionRegistry map[string]function
}

// New returns a new chaincode for the given record family
func New(family record.Family, opts ...contract.Option) *RecordCC {
	cc := &RecordCC{
		mgr: contract.NewManager(family, opts...),
	}

	cc.initFunctionRegistry()

	return cc
}

// Functions returns the names of all functions supported by this chaincode, sorted
func (cc *RecordCC) Functions() []string {
	var names []string
	for name := range cc.functionRegistry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Init is a no-op. The example records are written with the InitLedger function.
func (cc *RecordCC) Init(shim.ChaincodeStubInterface) pb.Response {
	return shim.Success(nil)
}

// Invoke dispatches to the function named by the first argument
func (cc *RecordCC) Invoke(stub shim.ChaincodeStubInterface) pb.Response {
	functionName, args := stub.GetFunctionAndParameters()
	if functionName == "" {
		return badRequest("Function not provided. Expecting one of [%s]", cc.functionSet())
	}

	f, ok := cc.functionRegistry[functionName]
	if !ok {
		return badRequest("Invalid function: [%s]. Expecting one of [%s]", functionName, cc.functionSet())
	}

	logger.Debugf("[%s] Invoking [%s] with args: %s", stub.GetTxID(), functionName, args)

	return f(state.NewShimStore(stub), args)
}

func (cc *RecordCC) initFunctionRegistry() {
	family := cc.mgr.Family()

	cc.functionRegistry = map[string]function{
		InitLedgerFunc:                  cc.initLedger,
		"Create" + family.Name:          cc.create,
		"Read" + family.Name:            cc.read,
		"Update" + family.Name:          cc.update,
		"Delete" + family.Name:          cc.remove,
		family.Name + "Exists":          cc.exists,
		"Transfer" + family.Name:        cc.transfer,
		"GetAll" + family.Plural:        cc.getAll,
		"Get" + family.Name + "History": cc.getHistory,
	}
}

// initLedger writes the example records
func (cc *RecordCC) initLedger(store api.StateStore, args []string) pb.Response {
	if err := cc.mgr.InitLedger(store); err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(nil)
}

// create saves a new record
// args: id, type, harvestDate, owner, grade
func (cc *RecordCC) create(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id", "type", "harvestDate", "owner", "grade"); err != nil {
		return badRequest("%s", err)
	}

	grade, err := parseGrade(args[4])
	if err != nil {
		return badRequest("%s", err)
	}

	r, err := cc.mgr.Create(store, args[0], args[1], args[2], args[3], grade)
	if err != nil {
		return errorResponse(store, err)
	}

	return recordResponse(store, r)
}

// read returns the record with the given ID
// args: id
func (cc *RecordCC) read(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id"); err != nil {
		return badRequest("%s", err)
	}

	r, err := cc.mgr.Read(store, args[0])
	if err != nil {
		return errorResponse(store, err)
	}

	return recordResponse(store, r)
}

// update overwrites an existing record
// args: id, type, harvestDate, owner, grade
func (cc *RecordCC) update(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id", "type", "harvestDate", "owner", "grade"); err != nil {
		return badRequest("%s", err)
	}

	grade, err := parseGrade(args[4])
	if err != nil {
		return badRequest("%s", err)
	}

	if err := cc.mgr.Update(store, args[0], args[1], args[2], args[3], grade); err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(nil)
}

// remove deletes an existing record
// args: id
func (cc *RecordCC) remove(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id"); err != nil {
		return badRequest("%s", err)
	}

	if err := cc.mgr.Delete(store, args[0]); err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(nil)
}

// exists returns "true" if the record exists, otherwise "false"
// args: id
func (cc *RecordCC) exists(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id"); err != nil {
		return badRequest("%s", err)
	}

	exists, err := cc.mgr.Exists(store, args[0])
	if err != nil {
		return errorResponse(store, err)
	}

	return shim.Success([]byte(strconv.FormatBool(exists)))
}

// transfer changes the owner of an existing record
// args: id, newOwner
func (cc *RecordCC) transfer(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id", "newOwner"); err != nil {
		return badRequest("%s", err)
	}

	if err := cc.mgr.Transfer(store, args[0], args[1]); err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(nil)
}

// getAll returns all records as a JSON array of {Key, Record}
func (cc *RecordCC) getAll(store api.StateStore, args []string) pb.Response {
	results, err := cc.mgr.ListAll(store)
	if err != nil {
		return errorResponse(store, err)
	}

	if results == nil {
		results = []*contract.ListEntry{}
	}

	return jsonResponse(store, results)
}

// getHistory returns the history of a record as a JSON array of {TxId, TimeStamp, IsDelete, Value}
// args: id
func (cc *RecordCC) getHistory(store api.StateStore, args []string) pb.Response {
	if err := checkArgs(args, "id"); err != nil {
		return badRequest("%s", err)
	}

	results, err := cc.mgr.GetHistory(store, args[0])
	if err != nil {
		return errorResponse(store, err)
	}

	if results == nil {
		results = []*contract.HistoryEntry{}
	}

	return jsonResponse(store, results)
}

// functionSet returns a string enumerating all available functions
func (cc *RecordCC) functionSet() string {
	return strings.Join(cc.Functions(), ", ")
}

func checkArgs(args []string, names ...string) error {
	if len(args) != len(names) {
		return errors.Errorf("incorrect number of arguments. Expecting %d: [%s]", len(names), strings.Join(names, ", "))
	}

	return nil
}

func parseGrade(arg string) (int, error) {
	grade, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("grade must be an integer: [%s]", arg)
	}

	return grade, nil
}

func recordResponse(store api.StateStore, r *record.Record) pb.Response {
	payload, err := record.Encode(r)
	if err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(payload)
}

func jsonResponse(store api.StateStore, v interface{}) pb.Response {
	payload, err := marshalJSON(v)
	if err != nil {
		return errorResponse(store, err)
	}

	return shim.Success(payload)
}

func badRequest(format string, args ...interface{}) pb.Response {
	msg := fmt.Sprintf(format, args...)

	logger.Debugf("Bad request: %s", msg)

	return pb.Response{Status: http.StatusBadRequest, Message: msg}
}

// errorResponse maps the error to a response status. Errors that are not classified are returned
// as a shim error (status 500).
func errorResponse(store api.StateStore, err error) pb.Response {
	switch {
	case contract.IsInvalidArgument(err):
		return pb.Response{Status: http.StatusBadRequest, Message: err.Error()}
	case contract.IsNotFound(err):
		logger.Debugf("[%s] %s", store.TxID(), err)
		return pb.Response{Status: http.StatusNotFound, Message: err.Error()}
	case contract.IsAlreadyExists(err):
		logger.Debugf("[%s] %s", store.TxID(), err)
		return pb.Response{Status: http.StatusConflict, Message: err.Error()}
	default:
		logger.Errorf("[%s] %s", store.TxID(), err)
		return shim.Error(err.Error())
	}
}

// marshalJSON returns the JSON representation of the given value. This variable may be overridden by unit tests.
var marshalJSON = func(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
