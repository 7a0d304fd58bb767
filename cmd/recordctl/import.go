/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

// importRecord is a record in an import file, e.g.
//
//	- id: P0010
//	  type: Mango
//	  harvestDate: JULY-24
//	  owner: Amara
//	  grade: 5
type importRecord struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	HarvestDate string `yaml:"harvestDate"`
	Owner       string `yaml:"owner"`
	Grade       int    `yaml:"grade"`
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Create the records listed in a YAML file",
		Long:  `Create the records listed in a YAML file. All records are created in a single transaction, so either all or none are imported.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readImportFile(args[0])
			if err != nil {
				return err
			}

			err = opts.update(func(mgr *contract.Manager, store api.StateStore) error {
				for _, r := range records {
					if _, e := mgr.Create(store, r.ID, r.Type, r.HarvestDate, r.Owner, r.Grade); e != nil {
						return errors.WithMessagef(e, "error importing [%s]", r.ID)
					}
				}

				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records\n", len(records))

			return nil
		},
	}
}

func readImportFile(path string) ([]*importRecord, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "error reading import file [%s]", path)
	}

	var records []*importRecord
	if err := yaml.Unmarshal(contents, &records); err != nil {
		return nil, errors.WithMessagef(err, "error parsing import file [%s]", path)
	}

	return records, nil
}
