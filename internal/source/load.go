// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/querychart/internal/table"
)

// A Format is a table file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatBench Format = "bench"
)

// FormatOf guesses the format of a file from its name.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".bench", ".txt":
		return FormatBench, nil
	default:
		return "", fmt.Errorf("unknown table format %q", ext)
	}
}

// Read reads a table in format f. Benchmark input uses default
// [BenchOptions]; use [ReadBench] to control it.
func Read(r io.Reader, name string, f Format, opts *Options) (*table.Table, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r, opts)
	case FormatXLSX:
		return ReadXLSX(r, opts)
	case FormatJSON:
		return ReadJSON(r, opts)
	case FormatYAML:
		return ReadYAML(r, opts)
	case FormatBench:
		return ReadBench(r, name, BenchOptions{Logger: opts.logger()})
	}
	return nil, fmt.Errorf("unknown table format %q", f)
}

// Load reads the table in the named file, guessing its format from the
// file name.
func Load(path string, opts *Options) (*table.Table, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	t, err := Read(file, path, f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
