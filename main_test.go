// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = "region,sales\nEast,10\nWest,-5\n"

func writeInput(t *testing.T) string {
	t.Helper()
	in := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(in, []byte(salesCSV), 0o666))
	return in
}

func TestQuerychartOutputFile(t *testing.T) {
	in := writeInput(t)
	out := filepath.Join(t.TempDir(), "chart.json")
	var opts options
	opts.Chart.Type = "column"
	opts.Output.Format = "json"
	opts.Output.Path = out

	var stdout bytes.Buffer
	require.NoError(t, querychart(&stdout, in, &opts))
	assert.Zero(t, stdout.Len())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got struct {
		ChartType string            `json:"chartType"`
		Elements  []json.RawMessage `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "column", got.ChartType)
	assert.Len(t, got.Elements, 2)
}

func TestQuerychartOutputErrors(t *testing.T) {
	in := writeInput(t)
	var opts options
	opts.Chart.Type = "column"

	opts.Output.Path = filepath.Join(t.TempDir(), "missing", "chart.svg")
	assert.Error(t, querychart(new(bytes.Buffer), in, &opts))

	opts.Output.Path = ""
	opts.Output.Format = "png"
	assert.ErrorContains(t, querychart(new(bytes.Buffer), in, &opts), "png")

	if _, err := os.Stat("/dev/full"); err == nil {
		opts.Output.Format = "svg"
		opts.Output.Path = "/dev/full"
		err := querychart(new(bytes.Buffer), in, &opts)
		assert.ErrorContains(t, err, "writing svg")
	}
}

func TestQuerychartStdout(t *testing.T) {
	in := writeInput(t)
	var opts options
	opts.Chart.Type = "column"
	opts.Output.Format = "yaml"

	var stdout bytes.Buffer
	require.NoError(t, querychart(&stdout, in, &opts))
	assert.True(t, strings.HasPrefix(stdout.String(), "chartType: column\n"), stdout.String())
}

func TestColumnIndex(t *testing.T) {
	in := writeInput(t)
	var opts options
	tbl, err := readInput(in, &opts, nil)
	require.NoError(t, err)

	for s, want := range map[string]int{"region": 0, "sales": 1, "1": 1} {
		got, err := columnIndex(tbl, s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err = columnIndex(tbl, "profit")
	assert.Error(t, err)
	_, err = columnIndex(tbl, "7")
	assert.Error(t, err)
}
