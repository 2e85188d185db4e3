// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/aclements/querychart/internal/table"
)

// ReadCSV reads a CSV file whose first record is the header. Column
// types are inferred from the cells.
func ReadCSV(r io.Reader, opts *Options) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading CSV: empty input")
	} else if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return build(header, records, opts)
}
