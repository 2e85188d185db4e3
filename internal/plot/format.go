// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/aclements/querychart/internal/table"
	"golang.org/x/perf/benchunit"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// A Formatter renders a cell of column col as a label.
type Formatter func(v any, col table.Column, df DataFormatting) string

// compactThreshold is the magnitude at which quantities switch to SI
// prefixes.
const compactThreshold = 10000

// FormatElement is the default [Formatter]. Measures are formatted for
// df.LanguageCode, currency amounts in df.CurrencyCode, and dates at the
// column's precision. Values that do not parse as their column type are
// rendered as-is.
func FormatElement(v any, col table.Column, df DataFormatting) string {
	if v == nil {
		return ""
	}
	switch col.Type {
	case table.TypeDate:
		t, err := ParseDate(v, df.DateFormat)
		if err != nil {
			return table.String(v)
		}
		return formatDate(t, col.DatePrecision(), df.DateFormat)
	case table.TypeQuantity, table.TypeDollarAmt, table.TypePercent, table.TypeRatio:
		f, ok := table.Number(v)
		if !ok {
			return table.String(v)
		}
		return formatNumber(f, col.Type, df)
	}
	return table.String(v)
}

func formatNumber(f float64, typ table.ColumnType, df DataFormatting) string {
	p := message.NewPrinter(languageTag(df.LanguageCode))
	switch typ {
	case table.TypeDollarAmt:
		unit, err := currency.ParseISO(df.CurrencyCode)
		if err != nil {
			unit = currency.USD
		}
		sym := strings.TrimSpace(p.Sprint(currency.Symbol(unit)))
		s := p.Sprint(number.Decimal(math.Abs(f), number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		if f < 0 {
			return "-" + sym + s
		}
		return sym + s
	case table.TypePercent:
		return p.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + "%"
	case table.TypeRatio:
		return fmt.Sprintf("%.4g", f)
	}
	if math.Abs(f) >= compactThreshold && df.NumberFormat != "full" {
		return benchunit.Scale(f, benchunit.Decimal)
	}
	return p.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

func languageTag(code string) language.Tag {
	if code == "" {
		return language.AmericanEnglish
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// ellipsis is appended to truncated labels.
const ellipsis = "…"

// TruncateLabel shortens s to max runes followed by an ellipsis. It
// reports whether s was shortened. A non-positive max disables
// truncation.
func TruncateLabel(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + ellipsis, true
		}
		n++
	}
	return s, false
}
