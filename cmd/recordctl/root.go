/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trustbloc/fabric-record-cc/pkg/config"
	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/logging"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
	"github.com/trustbloc/fabric-record-cc/pkg/state/leveldbstore"
)

var logger = logging.MustGetLogger("recordctl")

// rootOptions holds the global flags along with the manager for the selected family
type rootOptions struct {
	cfgFile string
	verbose bool
	mgr     *contract.Manager
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "recordctl",
		Short: "Manage records in an embedded record database",
		Long: `recordctl runs the record chaincode operations against an embedded database
which keeps the full history of every record.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "Config file")
	flags.String("db", "", "Path of the record database (default ./recorddb)")
	flags.String("family", "", "Record family, asset or produce (default produce)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	// Flags take precedence over the environment and the config file
	_ = viper.BindPFlag("store.path", flags.Lookup("db"))
	_ = viper.BindPFlag("chaincode.family", flags.Lookup("family"))

	cmd.AddCommand(
		newInitCmd(opts),
		newCreateCmd(opts),
		newReadCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newExistsCmd(opts),
		newTransferCmd(opts),
		newListCmd(opts),
		newHistoryCmd(opts),
		newImportCmd(opts),
	)

	return cmd
}

func (o *rootOptions) init() error {
	if err := config.Init(config.EnvPrefix, o.cfgFile); err != nil {
		return err
	}

	level := config.GetLogLevel()
	if o.verbose {
		level = "debug"
	}

	if err := logging.SetLevel(level); err != nil {
		return err
	}

	docType := config.GetChaincodeFamily()

	family, ok := record.FamilyForDocType(docType)
	if !ok {
		return errors.Errorf("unsupported record family [%s]. Expecting one of %s", docType, record.DocTypes())
	}

	o.mgr = contract.NewManager(family, contract.WithRejectExisting(config.GetCreateRejectExisting()))

	return nil
}

// update runs fn in a single transaction which is committed if fn succeeds
func (o *rootOptions) update(fn func(mgr *contract.Manager, store api.StateStore) error) error {
	return o.withDB(func(db *leveldbstore.DB) error {
		return db.Update(func(store api.StateStore) error {
			return fn(o.mgr, store)
		})
	})
}

// view runs fn in a read-only transaction
func (o *rootOptions) view(fn func(mgr *contract.Manager, store api.StateRetriever) error) error {
	return o.withDB(func(db *leveldbstore.DB) error {
		return db.View(func(store api.StateRetriever) error {
			return fn(o.mgr, store)
		})
	})
}

func (o *rootOptions) withDB(fn func(db *leveldbstore.DB) error) (err error) {
	path := config.GetStorePath()

	logger.Debugf("Opening record database [%s]", path)

	db, err := leveldbstore.Open(path)
	if err != nil {
		return err
	}

	defer func() {
		if e := db.Close(); e != nil && err == nil {
			err = errors.WithMessage(e, "error closing record database")
		}
	}()

	return fn(db)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return errors.WithMessage(err, "error encoding JSON")
	}

	return nil
}
