/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []*contract.ListEntry{}

			err := opts.view(func(mgr *contract.Manager, store api.StateRetriever) error {
				entries, e := mgr.ListAll(store)
				if e != nil {
					return e
				}

				results = append(results, entries...)

				return nil
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, results)
		},
	}
}
