/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of all environment variables, e.g. RECORDCC_CHAINCODE_ADDRESS
	EnvPrefix = "RECORDCC"

	confChaincodeID      = "chaincode.id"
	confChaincodeAddress = "chaincode.address"
	confChaincodeFamily  = "chaincode.family"

	confTLSEnabled      = "chaincode.tls.enabled"
	confTLSKey          = "chaincode.tls.key"
	confTLSCert         = "chaincode.tls.cert"
	confTLSClientCACert = "chaincode.tls.clientCACert"

	confCreateRejectExisting = "contract.create.rejectExisting"

	confLogLevel  = "log.level"
	confStorePath = "store.path"

	defaultChaincodeFamily = "produce"
	defaultLogLevel        = "info"
	defaultStorePath       = "./recorddb"
)

// Init binds configuration keys to environment variables with the given prefix and, if cfgFile
// is provided, reads the given config file. Environment variables take precedence over the file.
func Init(envPrefix, cfgFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}

	viper.SetConfigFile(cfgFile)

	if err := viper.ReadInConfig(); err != nil {
		return errors.WithMessagef(err, "error reading config file [%s]", cfgFile)
	}

	return nil
}

// GetChaincodeID returns the ID (package ID) of the chaincode when it is run as a service
func GetChaincodeID() string {
	return viper.GetString(confChaincodeID)
}

// GetChaincodeAddress returns the address that the chaincode server listens on. If empty then
// the chaincode connects to the peer instead.
func GetChaincodeAddress() string {
	return viper.GetString(confChaincodeAddress)
}

// GetChaincodeFamily returns the doc type of the records managed by the chaincode
func GetChaincodeFamily() string {
	family := viper.GetString(confChaincodeFamily)
	if family == "" {
		return defaultChaincodeFamily
	}
	return strings.ToLower(family)
}

// GetTLSEnabled returns true if the chaincode server should use TLS
func GetTLSEnabled() bool {
	return viper.GetBool(confTLSEnabled)
}

// GetTLSKeyPath returns the path of the chaincode server's TLS private key
func GetTLSKeyPath() string {
	return viper.GetString(confTLSKey)
}

// GetTLSCertPath returns the path of the chaincode server's TLS certificate
func GetTLSCertPath() string {
	return viper.GetString(confTLSCert)
}

// GetTLSClientCACertPath returns the path of the CA certificate used to verify clients. If empty
// then client authentication is not required.
func GetTLSClientCACertPath() string {
	return viper.GetString(confTLSClientCACert)
}

// GetCreateRejectExisting returns true if Create should fail when the record already exists
func GetCreateRejectExisting() bool {
	return viper.GetBool(confCreateRejectExisting)
}

// GetLogLevel returns the logging level
func GetLogLevel() string {
	level := viper.GetString(confLogLevel)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

// GetStorePath returns the path of the embedded record database
func GetStorePath() string {
	path := viper.GetString(confStorePath)
	if path == "" {
		return defaultStorePath
	}
	return path
}
