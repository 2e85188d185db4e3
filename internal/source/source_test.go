// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aclements/querychart/internal/plot"
	"github.com/aclements/querychart/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const salesCSV = `region,month,sales,share,count
East,2024-01,"$1,200.50",12%,3
West,2024-02,$800,8.5%,4
East,2024-03,$950.25,10%,n/a
North,2024-04,"-$20",1%,7
West,2024-05,$10,0.5%,1
`

func TestReadCSV(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tbl, err := ReadCSV(strings.NewReader(salesCSV), &Options{
		Groupable: []string{"region"},
		Logger:    zap.New(core),
	})
	require.NoError(t, err)

	want := []table.Column{
		{Name: "region", Type: table.TypeString, Visible: true, Groupable: true},
		{Name: "month", Type: table.TypeDate, Visible: true, Precision: table.PrecisionMonth},
		{Name: "sales", Type: table.TypeDollarAmt, Visible: true},
		{Name: "share", Type: table.TypePercent, Visible: true},
		{Name: "count", Type: table.TypeQuantity, Visible: true},
	}
	assert.Equal(t, want, tbl.Columns)
	require.Len(t, tbl.Rows, 5)
	assert.Equal(t, table.Row{"East", "2024-01", 1200.5, 12.0, 3.0}, tbl.Rows[0])
	assert.Equal(t, -20.0, tbl.Rows[3][2])
	assert.Nil(t, tbl.Rows[2][4])
	assert.Equal(t, 1, logs.FilterMessageSnippet("unparseable").Len())

	cls := table.Classify(tbl.Columns)
	assert.Equal(t, []int{0, 1}, cls.StringColumnIndices)
	assert.Equal(t, []int{2, 3, 4}, cls.NumberColumnIndices)
}

func TestReadCSVOverrides(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(salesCSV), &Options{
		Types:     map[string]table.ColumnType{"count": table.TypeString},
		Precision: map[string]table.Precision{"month": table.PrecisionQuarter},
	})
	require.NoError(t, err)
	assert.Equal(t, table.TypeString, tbl.Columns[4].Type)
	assert.Equal(t, "3", tbl.Rows[0][4])
	assert.Equal(t, table.PrecisionQuarter, tbl.Columns[1].Precision)
	assert.False(t, tbl.Columns[0].Groupable)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), nil)
	assert.Error(t, err)
	_, err = ReadCSV(strings.NewReader("a,\"b\n"), nil)
	assert.Error(t, err)
}

func TestInferColumn(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		typ   table.ColumnType
		prec  table.Precision
	}{
		{"empty", []string{"", " "}, table.TypeString, ""},
		{"names", []string{"ann", "bob"}, table.TypeString, ""},
		{"days", []string{"2024-01-02", "2024-01-03", ""}, table.TypeDate, table.PrecisionDay},
		{"years", []string{"2021", "2022", "2023"}, table.TypeDate, table.PrecisionYear},
		{"not years", []string{"1", "20", "5000"}, table.TypeQuantity, ""},
		{"quarters", []string{"Q1 2024", "2024-Q2"}, table.TypeDate, table.PrecisionQuarter},
		{"mostly numbers", []string{"1", "2", "3", "4", "x"}, table.TypeQuantity, ""},
		{"too few numbers", []string{"1", "2", "x", "y"}, table.TypeString, ""},
		{"euros", []string{"€5", "€6.50"}, table.TypeDollarAmt, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := inferColumn("c", tt.cells)
			assert.Equal(t, tt.typ, col.Type)
			assert.Equal(t, tt.prec, col.Precision)
		})
	}
}

// Every date form the loader types as DATE must also drill down.
func TestInferredDatesFilter(t *testing.T) {
	ref := time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)
	cells := []string{"Q1-2024", "Q1 2024", "2024-Q1", "2024 Q1"}
	for _, l := range table.DateLayouts {
		cells = append(cells, ref.Format(l.Layout))
	}
	const layout = "2006-01-02T15:04:05.000Z07:00"
	for _, cell := range cells {
		t.Run(cell, func(t *testing.T) {
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			require.NoError(t, w.WriteAll([][]string{{"day", "v"}, {cell, "1"}}))
			tbl, err := ReadCSV(&buf, nil)
			require.NoError(t, err)
			col := tbl.Columns[0]
			require.Equal(t, table.TypeDate, col.Type)

			f := plot.BuildFilter(col, tbl.Rows[0][0], plot.DataFormatting{}, nil)
			require.NotNil(t, f)
			p := col.DatePrecision()
			want := plot.StartOf(ref, p).Format(layout) + "," + plot.EndOf(ref, p).Format(layout)
			assert.Equal(t, want, f.Value)
		})
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	for cell, v := range map[string]any{
		"A1": "team", "B1": "points",
		"A2": "red", "B2": 10,
		"A3": "blue", "B3": 2.5,
	} {
		require.NoError(t, f.SetCellValue("Data", cell, v))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	tbl, err := ReadXLSX(bytes.NewReader(buf.Bytes()), &Options{Sheet: "Data"})
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, table.TypeString, tbl.Columns[0].Type)
	assert.Equal(t, table.TypeQuantity, tbl.Columns[1].Type)
	assert.Equal(t, []table.Row{{"red", 10.0}, {"blue", 2.5}}, tbl.Rows)

	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), &Options{Sheet: "Missing"})
	assert.ErrorContains(t, err, "Missing")

	// The default sheet is empty.
	_, err = ReadXLSX(bytes.NewReader(buf.Bytes()), nil)
	assert.Error(t, err)
}

func TestReadJSON(t *testing.T) {
	const in = `{
		"columns": [
			{"name": "cat", "type": "string", "groupable": true},
			{"name": "v", "display_name": "Value", "type": "QUANTITY", "aggType": "sum"},
			{"name": "hidden", "type": "QUANTITY", "is_visible": false},
			{"name": "day", "type": "DATE", "precision": "week"}
		],
		"data": [["a", 1, 2, "2024-01-01"], ["b", 2.5, null, "2024-01-08"]]
	}`
	tbl, err := ReadJSON(strings.NewReader(in), nil)
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 4)
	assert.Equal(t, table.Column{Name: "cat", Type: table.TypeString, Visible: true, Groupable: true}, tbl.Columns[0])
	assert.Equal(t, "Value", tbl.Columns[1].Title())
	assert.True(t, tbl.Columns[1].Visible)
	assert.False(t, tbl.Columns[2].Visible)
	assert.Equal(t, table.PrecisionWeek, tbl.Columns[3].Precision)
	assert.Equal(t, json.Number("1"), tbl.Rows[0][1])
	assert.Nil(t, tbl.Rows[1][2])

	_, err = ReadJSON(strings.NewReader(`{"columns": []}`), nil)
	assert.Error(t, err)
	_, err = ReadJSON(strings.NewReader(`{`), nil)
	assert.Error(t, err)
}

func TestReadYAML(t *testing.T) {
	const in = `
columns:
  - name: cat
    type: STRING
  - name: v
    type: quantity
    is_visible: true
data:
  - [a, 1]
  - [b, 2.5]
`
	tbl, err := ReadYAML(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, table.TypeQuantity, tbl.Columns[1].Type)
	assert.True(t, tbl.Columns[0].Visible)
	require.Len(t, tbl.Rows, 2)
	v, ok := table.Number(tbl.Rows[1][1])
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

const benchInput = `goos: linux
branch: old
BenchmarkA-8   1   100 ns/op
BenchmarkA-8   1   120 ns/op
BenchmarkB-8   1   200 ns/op
branch: new
BenchmarkA-8   1    50 ns/op
BenchmarkA-8   1    60 ns/op
BenchmarkB-8   1   300 ns/op
`

func TestReadBench(t *testing.T) {
	tbl, err := ReadBench(strings.NewReader(benchInput), "bench.txt", BenchOptions{})
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, ".fullname", tbl.Columns[0].Name)
	assert.Equal(t, table.TypeQuantity, tbl.Columns[1].Type)
	// Both branches share a name, so each name is one row.
	require.Len(t, tbl.Rows, 2)

	tbl, err = ReadBench(strings.NewReader(benchInput), "bench.txt", BenchOptions{Series: "branch"})
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 3)
	assert.True(t, tbl.Columns[1].Groupable)
	require.Len(t, tbl.Rows, 4)
	a, _ := table.Number(tbl.Rows[0][2])
	b, _ := table.Number(tbl.Rows[1][2])
	assert.InDelta(t, 110.0/200, a/b, 1e-9, "centers are medians")
	assert.Equal(t, "old", tbl.Rows[0][1])

	// A chart can pivot the series into one column per branch.
	cls := table.Classify(tbl.Columns)
	assert.Equal(t, table.Pivot{Keys: []int{0, 1}}, cls.Shape)
}

func TestReadBenchCompare(t *testing.T) {
	tbl, err := ReadBench(strings.NewReader(benchInput), "bench.txt", BenchOptions{Series: "branch", Compare: true})
	require.NoError(t, err)
	require.Len(t, tbl.Columns, 3)
	assert.Equal(t, table.TypeRatio, tbl.Columns[2].Type)
	assert.True(t, strings.HasSuffix(tbl.Columns[2].Name, " ratio"))
	require.Len(t, tbl.Rows, 2)
	for i, want := range []float64{0.5, 1.5} {
		assert.Equal(t, "new", tbl.Rows[i][1])
		assert.InDelta(t, want, tbl.Rows[i][2], 1e-9)
	}

	// A benchmark missing from the baseline has nothing to compare to.
	extra := benchInput + "BenchmarkC-8   1   70 ns/op\n"
	tbl, err = ReadBench(strings.NewReader(extra), "bench.txt", BenchOptions{Series: "branch", Compare: true})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.NotContains(t, []any{tbl.Rows[0][0], tbl.Rows[1][0]}, "C")
}

func TestReadBenchErrors(t *testing.T) {
	_, err := ReadBench(strings.NewReader(benchInput), "x", BenchOptions{Compare: true})
	assert.Error(t, err)
	_, err = ReadBench(strings.NewReader(benchInput), "x", BenchOptions{Filter: "("})
	assert.Error(t, err)
	_, err = ReadBench(strings.NewReader("goos: linux\n"), "x", BenchOptions{})
	assert.ErrorContains(t, err, "no benchmark results")
	_, err = ReadBench(strings.NewReader(benchInput), "x", BenchOptions{Filter: ".name:C"})
	assert.ErrorContains(t, err, "filtered")
	_, err = ReadBench(strings.NewReader(benchInput), "x", BenchOptions{Units: []string{"B/op"}})
	assert.ErrorContains(t, err, "B/op")
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.csv":       FormatCSV,
		"dir/b.XLSX":  FormatXLSX,
		"c.json":      FormatJSON,
		"d.yml":       FormatYAML,
		"e.yaml":      FormatYAML,
		"old.bench":   FormatBench,
		"results.txt": FormatBench,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("x.parquet")
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(salesCSV), "sales.csv", FormatCSV, nil)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 5)

	tbl, err = Read(strings.NewReader(benchInput), "bench.txt", FormatBench, nil)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 2)

	_, err = Read(strings.NewReader(""), "x", Format("parquet"), nil)
	assert.Error(t, err)
}
