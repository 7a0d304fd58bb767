/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fabric-record-cc/pkg/contract"
	"github.com/trustbloc/fabric-record-cc/pkg/record"
)

type historyEntry struct {
	TxID     string         `json:"TxId"`
	IsDelete bool           `json:"IsDelete"`
	Value    *record.Record `json:"Value"`
}

type listEntry struct {
	Key    string         `json:"Key"`
	Record *record.Record `json:"Record"`
}

func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append(args, "--db", dbPath))

	err := cmd.Execute()

	return out.String(), err
}

func TestRecordctl_Lifecycle(t *testing.T) {
	defer viper.Reset()

	dbPath := filepath.Join(t.TempDir(), "db")

	out, err := execute(t, dbPath, "create", "P0010", "Mango", "JULY-24", "Amara", "5")
	require.NoError(t, err)

	r := &record.Record{}
	require.NoError(t, json.Unmarshal([]byte(out), r))
	require.Equal(t, &record.Record{ID: "P0010", Type: "Mango", HarvestDate: "JULY-24", Owner: "Amara", Grade: 5, DocType: "produce"}, r)

	out, err = execute(t, dbPath, "exists", "P0010")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)

	out, err = execute(t, dbPath, "transfer", "P0010", "Kofi")
	require.NoError(t, err)
	require.Equal(t, "Transferred P0010 to Kofi\n", out)

	out, err = execute(t, dbPath, "read", "P0010")
	require.NoError(t, err)

	r = &record.Record{}
	require.NoError(t, json.Unmarshal([]byte(out), r))
	require.Equal(t, "Kofi", r.Owner)
	require.Equal(t, "Mango", r.Type)

	_, err = execute(t, dbPath, "delete", "P0010")
	require.NoError(t, err)

	out, err = execute(t, dbPath, "exists", "P0010")
	require.NoError(t, err)
	require.Equal(t, "false\n", out)

	_, err = execute(t, dbPath, "read", "P0010")
	require.Error(t, err)
	require.True(t, contract.IsNotFound(err))

	out, err = execute(t, dbPath, "history", "P0010")
	require.NoError(t, err)

	var history []*historyEntry
	require.NoError(t, json.Unmarshal([]byte(out), &history))
	require.Len(t, history, 3)
	require.Equal(t, "Amara", history[0].Value.Owner)
	require.Equal(t, "Kofi", history[1].Value.Owner)
	require.True(t, history[2].IsDelete)
	require.Nil(t, history[2].Value)

	out, err = execute(t, dbPath, "list")
	require.NoError(t, err)
	require.Equal(t, "[]\n", out)
}

func TestRecordctl_Update(t *testing.T) {
	defer viper.Reset()

	dbPath := filepath.Join(t.TempDir(), "db")

	_, err := execute(t, dbPath, "update", "P0010", "Mango", "JULY-24", "Amara", "5")
	require.True(t, contract.IsNotFound(err))

	_, err = execute(t, dbPath, "create", "P0010", "Mango", "JULY-24", "Amara", "5")
	require.NoError(t, err)

	out, err := execute(t, dbPath, "update", "P0010", "Maize", "AUG-24", "Kofi", "3")
	require.NoError(t, err)
	require.Equal(t, "Updated P0010\n", out)

	out, err = execute(t, dbPath, "read", "P0010")
	require.NoError(t, err)

	r := &record.Record{}
	require.NoError(t, json.Unmarshal([]byte(out), r))
	require.Equal(t, &record.Record{ID: "P0010", Type: "Maize", HarvestDate: "AUG-24", Owner: "Kofi", Grade: 3, DocType: "produce"}, r)
}

func TestRecordctl_Init(t *testing.T) {
	defer viper.Reset()

	t.Run("Produce", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		out, err := execute(t, dbPath, "init")
		require.NoError(t, err)
		require.Equal(t, "Initialized 6 Produce\n", out)

		out, err = execute(t, dbPath, "list")
		require.NoError(t, err)

		var results []*listEntry
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, len(record.Produce.Seeds))
		require.Equal(t, "P0000", results[0].Key)
		require.Equal(t, "Avocado", results[0].Record.Type)
	})

	t.Run("Asset", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		out, err := execute(t, dbPath, "init", "--family", "asset")
		require.NoError(t, err)
		require.Equal(t, "Initialized 6 Assets\n", out)

		out, err = execute(t, dbPath, "read", "asset3", "--family", "asset")
		require.NoError(t, err)

		r := &record.Record{}
		require.NoError(t, json.Unmarshal([]byte(out), r))
		require.Equal(t, "asset", r.DocType)
		require.Equal(t, "Jin Soo", r.Owner)
	})

	t.Run("Unsupported family", func(t *testing.T) {
		_, err := execute(t, filepath.Join(t.TempDir(), "db"), "init", "--family", "livestock")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported record family [livestock]")
	})
}

func TestRecordctl_Import(t *testing.T) {
	defer viper.Reset()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "db")

	t.Run("Success", func(t *testing.T) {
		file := filepath.Join(dir, "records.yaml")
		require.NoError(t, os.WriteFile(file, []byte(`
- id: P0010
  type: Mango
  harvestDate: JULY-24
  owner: Amara
  grade: 5
- id: P0011
  type: Coffee
  harvestDate: JULY-24
  owner: Kofi
  grade: 2
`), 0600))

		out, err := execute(t, dbPath, "import", file)
		require.NoError(t, err)
		require.Equal(t, "Imported 2 records\n", out)

		out, err = execute(t, dbPath, "list")
		require.NoError(t, err)

		var results []*listEntry
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 2)
		require.Equal(t, "P0011", results[1].Key)
		require.Equal(t, "Kofi", results[1].Record.Owner)
	})

	t.Run("Nothing imported on error", func(t *testing.T) {
		file := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(file, []byte(`
- id: P0020
  type: Mango
- id: ""
  type: Coffee
`), 0600))

		_, err := execute(t, dbPath, "import", file)
		require.Error(t, err)
		require.True(t, contract.IsInvalidArgument(err))

		out, err := execute(t, dbPath, "exists", "P0020")
		require.NoError(t, err)
		require.Equal(t, "false\n", out)
	})

	t.Run("Malformed file", func(t *testing.T) {
		file := filepath.Join(dir, "malformed.yaml")
		require.NoError(t, os.WriteFile(file, []byte("id: [P0010"), 0600))

		_, err := execute(t, dbPath, "import", file)
		require.Error(t, err)
		require.Contains(t, err.Error(), "error parsing import file")

		_, err = execute(t, dbPath, "import", filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "error reading import file")
	})
}

func TestRecordctl_InvalidArgs(t *testing.T) {
	defer viper.Reset()

	dbPath := filepath.Join(t.TempDir(), "db")

	_, err := execute(t, dbPath, "create", "P0010", "Mango", "JULY-24", "Amara", "five")
	require.Error(t, err)
	require.Contains(t, err.Error(), "grade must be an integer: [five]")

	_, err = execute(t, dbPath, "create", "P0010", "Mango")
	require.Error(t, err)

	_, err = execute(t, dbPath, "transfer", "P0010", "")
	require.True(t, contract.IsInvalidArgument(err))
}
