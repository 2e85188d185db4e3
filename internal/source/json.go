// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// rawColumn is a column as the host sends it. Columns are visible unless
// is_visible says otherwise.
type rawColumn struct {
	Name        string           `json:"name" yaml:"name"`
	DisplayName string           `json:"display_name" yaml:"display_name"`
	Type        table.ColumnType `json:"type" yaml:"type"`
	Visible     *bool            `json:"is_visible" yaml:"is_visible"`
	Groupable   bool             `json:"groupable" yaml:"groupable"`
	Precision   string           `json:"precision" yaml:"precision"`
	AggType     string           `json:"aggType" yaml:"aggType"`
}

type rawTable struct {
	Columns []rawColumn `json:"columns" yaml:"columns"`
	Data    []table.Row `json:"data" yaml:"data"`
}

func (rt *rawTable) table(opts *Options) (*table.Table, error) {
	if len(rt.Columns) == 0 {
		return nil, fmt.Errorf("no columns")
	}
	t := &table.Table{Columns: make([]table.Column, len(rt.Columns)), Rows: rt.Data}
	for i, rc := range rt.Columns {
		col := table.Column{
			Name:        rc.Name,
			DisplayName: rc.DisplayName,
			Type:        table.ColumnType(strings.ToUpper(string(rc.Type))),
			Visible:     rc.Visible == nil || *rc.Visible,
			Groupable:   rc.Groupable,
			AggType:     rc.AggType,
		}
		if p, err := table.ParsePrecision(rc.Precision); err != nil {
			opts.logger().Debug("ignoring column precision",
				zap.String("column", rc.Name), zap.Error(err))
		} else if rc.Precision != "" {
			col.Precision = p
		}
		t.Columns[i] = col
	}
	return t, nil
}

// ReadJSON reads a query response of the form
//
//	{"columns": [{"name": ..., "type": ...}, ...], "data": [[...], ...]}
//
// Numbers are kept as [json.Number].
func ReadJSON(r io.Reader, opts *Options) (*table.Table, error) {
	var rt rawTable
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&rt); err != nil {
		return nil, fmt.Errorf("decoding JSON table: %w", err)
	}
	return rt.table(opts)
}

// ReadYAML reads the same shape as [ReadJSON] written as YAML.
func ReadYAML(r io.Reader, opts *Options) (*table.Table, error) {
	var rt rawTable
	if err := yaml.NewDecoder(r).Decode(&rt); err != nil {
		return nil, fmt.Errorf("decoding YAML table: %w", err)
	}
	return rt.table(opts)
}
