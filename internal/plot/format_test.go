// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aclements/querychart/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, v := range []any{
		"2024-03-15",
		"2024-03-15T00:00:00Z",
		"2024-03-15 00:00:00",
		"Mar 15, 2024",
		float64(want.Unix()),
		json.Number("1710460800"),
		float64(want.UnixMilli()),
		want,
	} {
		got, err := ParseDate(v, "")
		if assert.NoError(t, err, "%v", v) {
			assert.True(t, want.Equal(got), "ParseDate(%v) = %v", v, got)
		}
	}

	got, err := ParseDate("15/03/2024", "02/01/2006")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	for _, q := range []string{"2024-Q2", "2024 Q2", "Q2 2024"} {
		got, err := ParseDate(q, "")
		if assert.NoError(t, err, q) {
			assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), got)
		}
	}

	for _, bad := range []any{"", "soon", nil, true} {
		_, err := ParseDate(bad, "")
		assert.Error(t, err, "%v", bad)
	}
}

func TestStartEndOf(t *testing.T) {
	ts := time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC) // a Friday
	tests := []struct {
		p          table.Precision
		start, end string
	}{
		{table.PrecisionHour, "2024-03-15T13:00:00.000Z", "2024-03-15T13:59:59.999Z"},
		{table.PrecisionDay, "2024-03-15T00:00:00.000Z", "2024-03-15T23:59:59.999Z"},
		{table.PrecisionWeek, "2024-03-11T00:00:00.000Z", "2024-03-17T23:59:59.999Z"},
		{table.PrecisionMonth, "2024-03-01T00:00:00.000Z", "2024-03-31T23:59:59.999Z"},
		{table.PrecisionQuarter, "2024-01-01T00:00:00.000Z", "2024-03-31T23:59:59.999Z"},
		{table.PrecisionYear, "2024-01-01T00:00:00.000Z", "2024-12-31T23:59:59.999Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.start, StartOf(ts, tt.p).Format(filterTimeLayout), "StartOf %s", tt.p)
		assert.Equal(t, tt.end, EndOf(ts, tt.p).Format(filterTimeLayout), "EndOf %s", tt.p)
	}
}

func TestBuildFilter(t *testing.T) {
	day := table.Column{Name: "created", Type: table.TypeDate, Precision: table.PrecisionDay}
	f := BuildFilter(day, "2024-03-15", DataFormatting{}, nil)
	require.NotNil(t, f)
	assert.Equal(t, &Filter{
		Name:       "created",
		Operator:   "between",
		Value:      "2024-03-15T00:00:00.000Z,2024-03-15T23:59:59.999Z",
		ColumnType: table.TypeDate,
	}, f)

	month := table.Column{Name: "m", Type: table.TypeDate, Precision: "month"}
	f = BuildFilter(month, "2024-02-10", DataFormatting{}, nil)
	require.NotNil(t, f)
	assert.Equal(t, "2024-02-01T00:00:00.000Z,2024-02-29T23:59:59.999Z", f.Value)

	str := table.Column{Name: "name", Type: table.TypeString}
	assert.Nil(t, BuildFilter(str, "2024-03-15", DataFormatting{}, nil))
}

func TestBuildFilterBadDate(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	col := table.Column{Name: "created", Type: table.TypeDate}
	assert.Nil(t, BuildFilter(col, "not a date", DataFormatting{}, zap.New(core)))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Contains(t, entry.Message, "cannot parse date")
	assert.Equal(t, "created", entry.ContextMap()["column"])
}

func TestFormatElement(t *testing.T) {
	df := DataFormatting{CurrencyCode: "USD", LanguageCode: "en-US"}
	tests := []struct {
		v    any
		col  table.Column
		want string
	}{
		{nil, table.Column{Type: table.TypeQuantity}, ""},
		{1234.5, table.Column{Type: table.TypeQuantity}, "1,234.5"},
		{"42", table.Column{Type: table.TypeQuantity}, "42"},
		{"n/a", table.Column{Type: table.TypeQuantity}, "n/a"},
		{12.5, table.Column{Type: table.TypePercent}, "12.50%"},
		{0.5, table.Column{Type: table.TypeRatio}, "0.5"},
		{"hello", table.Column{Type: table.TypeString}, "hello"},
		{"2024-03-15", table.Column{Type: table.TypeDate, Precision: table.PrecisionMonth}, "March 2024"},
		{"2024-03-15", table.Column{Type: table.TypeDate, Precision: table.PrecisionYear}, "2024"},
		{"2024-05-15", table.Column{Type: table.TypeDate, Precision: table.PrecisionQuarter}, "2024 Q2"},
		{"2024-03-15", table.Column{Type: table.TypeDate}, "Mar 15, 2024"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElement(tt.v, tt.col, df), "FormatElement(%v, %s)", tt.v, tt.col.Type)
	}
}

func TestFormatElementLoose(t *testing.T) {
	df := DataFormatting{CurrencyCode: "USD", LanguageCode: "en-US"}

	s := FormatElement(-1234.5, table.Column{Type: table.TypeDollarAmt}, df)
	assert.True(t, strings.HasPrefix(s, "-"), s)
	assert.Contains(t, s, "$")
	assert.Contains(t, s, "1,234.50")

	s = FormatElement(123456.0, table.Column{Type: table.TypeQuantity}, df)
	assert.Contains(t, s, "k")
	assert.NotContains(t, s, ",")

	df.NumberFormat = "full"
	assert.Equal(t, "123,456", FormatElement(123456.0, table.Column{Type: table.TypeQuantity}, df))

	df.DateFormat = "2006/01/02"
	assert.Equal(t, "2024/03/15", FormatElement("2024-03-15", table.Column{Type: table.TypeDate}, df))
}
