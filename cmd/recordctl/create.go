/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create [id] [type] [harvestDate] [owner] [grade]",
		Short: "Create a record",
		Long:  `Create a record. An existing record with the same ID is overwritten unless contract.create.rejectExisting is set.`,
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := parseGrade(args[4])
			if err != nil {
				return err
			}

			var r *record.Record

			err = opts.update(func(mgr *contract.Manager, store api.StateStore) error {
				var e error
				r, e = mgr.Create(store, args[0], args[1], args[2], args[3], grade)
				return e
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, r)
		},
	}
}

func parseGrade(arg string) (int, error) {
	grade, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Errorf("grade must be an integer: [%s]", arg)
	}

	return grade, nil
}
