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

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history [id]",
		Short: "Print every version of a record, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []*contract.HistoryEntry{}

			err := opts.view(func(mgr *contract.Manager, store api.StateRetriever) error {
				entries, e := mgr.GetHistory(store, args[0])
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
