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

func newTransferCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [id] [newOwner]",
		Short: "Change the owner of a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.update(func(mgr *contract.Manager, store api.StateStore) error {
				return mgr.Transfer(store, args[0], args[1])
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Transferred %s to %s\n", args[0], args[1])

			return nil
		},
	}
}
