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

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the example records of the family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.update(func(mgr *contract.Manager, store api.StateStore) error {
				return mgr.InitLedger(store)
			})
			if err != nil {
				return err
			}

			family := opts.mgr.Family()
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %d %s\n", len(family.Seeds), family.Plural)

			return nil
		},
	}
}
