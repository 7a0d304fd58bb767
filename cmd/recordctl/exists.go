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

func newExistsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exists [id]",
		Short: "Print true if the record exists, otherwise false",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var exists bool

			err := opts.view(func(mgr *contract.Manager, store api.StateRetriever) error {
				var e error
				exists, e = mgr.Exists(store, args[0])
				return e
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), exists)

			return nil
		},
	}
}
