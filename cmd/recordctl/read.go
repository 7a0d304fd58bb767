/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
	"github.com/trustbloc/fabric-record-cc/pkg/state/api"
)

func newReadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read [id]",
		Short: "Read a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r *record.Record

			err := opts.view(func(mgr *contract.Manager, store api.StateRetriever) error {
				var e error
				r, e = mgr.Read(store, args[0])
				return e
			})
			if err != nil {
				return err
			}

			return printJSON(cmd, r)
		},
	}
}
