// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"io"
	"slices"

	"github.com/aclements/querychart/internal/table"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReadXLSX reads one sheet of a workbook. The first row of the sheet is
// the header.
func ReadXLSX(r io.Reader, opts *Options) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	if opts != nil && opts.Sheet != "" {
		if !slices.Contains(sheets, opts.Sheet) {
			return nil, fmt.Errorf("workbook has no sheet %q", opts.Sheet)
		}
		sheet = opts.Sheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	opts.logger().Debug("read sheet", zap.String("sheet", sheet), zap.Int("rows", len(rows)-1))
	return build(rows[0], rows[1:], opts)
}
