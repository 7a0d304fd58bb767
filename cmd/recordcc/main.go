/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/pkg/errors"

	"github.com/trustbloc/fabric-record-cc/pkg/chaincode"
	"github.com/trustbloc/fabric-record-cc/pkg/config"
	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
)

var logger = logging.MustGetLogger("recordcc")

// cfgFileEnvVar optionally names a config file. All settings may also be provided as
// RECORDCC_ environment variables.
const cfgFileEnvVar = "RECORDCC_CONFIG"

func main() {
	if err := run(); err != nil {
		logger.Errorf("Error running record chaincode: %s", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(config.EnvPrefix, os.Getenv(cfgFileEnvVar)); err != nil {
		return err
	}

	if err := logging.SetLevel(config.GetLogLevel()); err != nil {
		return err
	}

	cc, err := newChaincode()
	if err != nil {
		return err
	}

	address := config.GetChaincodeAddress()
	if address == "" {
		logger.Infof("Starting record chaincode for family [%s]", config.GetChaincodeFamily())

		return shim.Start(cc)
	}

	server, err := newServer(address, cc)
	if err != nil {
		return err
	}

	logger.Infof("Starting record chaincode server [%s] for family [%s] on [%s]", server.CCID, config.GetChaincodeFamily(), address)

	return server.Start()
}

func newChaincode() (*chaincode.RecordCC, error) {
	docType := config.GetChaincodeFamily()

	family, ok := record.FamilyForDocType(docType)
	if !ok {
		return nil, errors.Errorf("unsupported record family [%s]. Expecting one of %s", docType, record.DocTypes())
	}

	return chaincode.New(family, contract.WithRejectExisting(config.GetCreateRejectExisting())), nil
}

func newServer(address string, cc shim.Chaincode) (*shim.ChaincodeServer, error) {
	ccID := config.GetChaincodeID()
	if ccID == "" {
		return nil, errors.New("chaincode ID is required when running as a server")
	}

	tlsProps, err := getTLSProperties()
	if err != nil {
		return nil, err
	}

	return &shim.ChaincodeServer{
		CCID:     ccID,
		Address:  address,
		CC:       cc,
		TLSProps: tlsProps,
	}, nil
}

func getTLSProperties() (shim.TLSProperties, error) {
	if !config.GetTLSEnabled() {
		return shim.TLSProperties{Disabled: true}, nil
	}

	key, err := readFile("key", config.GetTLSKeyPath())
	if err != nil {
		return shim.TLSProperties{}, err
	}

	cert, err := readFile("certificate", config.GetTLSCertPath())
	if err != nil {
		return shim.TLSProperties{}, err
	}

	props := shim.TLSProperties{
		Key:  key,
		Cert: cert,
	}

	if path := config.GetTLSClientCACertPath(); path != "" {
		props.ClientCACerts, err = readFile("client CA certificate", path)
		if err != nil {
			return shim.TLSProperties{}, err
		}
	}

	return props, nil
}

func readFile(name, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.Errorf("TLS %s path is required when TLS is enabled", name)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "error reading TLS %s", name)
	}

	return contents, nil
}
