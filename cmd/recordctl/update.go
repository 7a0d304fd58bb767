/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update [id] [type] [harvestDate] [owner] [grade]",
		Short: "Overwrite an existing record",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade, err := parseGrade(args[4])
			if err != nil {
				return err
			}

			err = opts.update(func(mgr *contract.Manager, store api.StateStore) error {
				return mgr.Update(store, args[0], args[1], args[2], args[3], grade)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])

			return nil
		},
	}
}
