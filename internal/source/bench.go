// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/querychart/internal/table"
	"go.uber.org/zap"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
)

// BenchOptions control how benchmark results become a table.
type BenchOptions struct {
	// Filter is a benchfilter query. Empty means "*".
	Filter string
	// X is the projection whose values become the categorical column.
	// Empty means ".fullname".
	X string
	// Series, if set, is the projection whose values become a second
	// groupable column, drawn as one series per value.
	Series string
	// Units keeps only the named units. Empty keeps all.
	Units []string
	// Confidence is the confidence level of the summaries. Zero means
	// 0.95.
	Confidence float64
	// Compare replaces each value by its ratio to the first Series
	// value at the same X. It requires Series.
	Compare bool

	Logger *zap.Logger
}

// A benchReader is [benchfmt.Reader] or [benchfmt.Files].
type benchReader interface {
	Scan() bool
	Result() benchfmt.Record
	Err() error
}

// ReadBench reads Go benchmark results from r.
func ReadBench(r io.Reader, name string, opts BenchOptions) (*table.Table, error) {
	return readBench(benchfmt.NewReader(r, name), opts)
}

// ReadBenchFiles reads Go benchmark results from the named files. "-"
// is standard input.
func ReadBenchFiles(paths []string, opts BenchOptions) (*table.Table, error) {
	return readBench(&benchfmt.Files{Paths: paths, AllowStdin: true, AllowLabels: true}, opts)
}

// benchGroup collects the samples of one (x, series, unit) cell.
type benchGroup struct {
	x, series benchproc.Key
	unit      string
	values    []float64
}

func readBench(br benchReader, opts BenchOptions) (*table.Table, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Compare && opts.Series == "" {
		return nil, fmt.Errorf("comparing benchmarks requires a series projection")
	}
	query := opts.Filter
	if query == "" {
		query = "*"
	}
	filter, err := benchproc.NewFilter(query)
	if err != nil {
		return nil, fmt.Errorf("parsing filter: %w", err)
	}
	xSpec := opts.X
	if xSpec == "" {
		xSpec = ".fullname"
	}
	var parser benchproc.ProjectionParser
	xProj, err := parser.Parse(xSpec, filter)
	if err != nil {
		return nil, fmt.Errorf("parsing x projection: %w", err)
	}
	var seriesProj *benchproc.Projection
	if opts.Series != "" {
		seriesProj, err = parser.Parse(opts.Series, filter)
		if err != nil {
			return nil, fmt.Errorf("parsing series projection: %w", err)
		}
	}
	var keepUnits map[string]bool
	if len(opts.Units) > 0 {
		keepUnits = make(map[string]bool)
		for _, u := range opts.Units {
			keepUnits[u] = true
		}
	}

	type groupKey struct {
		x, series benchproc.Key
		unit      string
	}
	groups := make(map[groupKey]*benchGroup)
	var order []*benchGroup
	var units []string
	seenUnit := make(map[string]bool)
	var nParsed, nFiltered int
	for br.Scan() {
		switch rec := br.Result().(type) {
		case *benchfmt.SyntaxError:
			log.Warn("skipping malformed benchmark line", zap.Error(rec))
		case *benchfmt.Result:
			nParsed++
			if ok, err := filter.Apply(rec); !ok {
				nFiltered++
				if err != nil {
					log.Debug("result rejected by filter", zap.Error(err))
				}
				continue
			}
			x := xProj.Project(rec)
			var series benchproc.Key
			if seriesProj != nil {
				series = seriesProj.Project(rec)
			}
			for _, val := range rec.Values {
				if keepUnits != nil && !keepUnits[val.Unit] && (val.OrigUnit == "" || !keepUnits[val.OrigUnit]) {
					continue
				}
				k := groupKey{x, series, val.Unit}
				g := groups[k]
				if g == nil {
					g = &benchGroup{x: x, series: series, unit: val.Unit}
					groups[k] = g
					order = append(order, g)
				}
				g.values = append(g.values, val.Value)
				if !seenUnit[val.Unit] {
					seenUnit[val.Unit] = true
					units = append(units, val.Unit)
				}
			}
		}
	}
	if err := br.Err(); err != nil {
		return nil, err
	}
	switch {
	case nParsed == 0:
		return nil, fmt.Errorf("no benchmark results")
	case nFiltered == nParsed:
		return nil, fmt.Errorf("all benchmark results filtered")
	case len(order) == 0:
		return nil, fmt.Errorf("no results have units %s", strings.Join(opts.Units, ","))
	}
	log.Debug("read benchmarks", zap.Int("results", nParsed), zap.Int("filtered", nFiltered), zap.Int("groups", len(order)))

	conf := opts.Confidence
	if conf == 0 {
		conf = 0.95
	}
	centers := make(map[*benchGroup]float64, len(order))
	for _, g := range order {
		sample := benchmath.NewSample(g.values, &benchmath.DefaultThresholds)
		centers[g] = benchmath.AssumeNothing.Summary(sample, conf).Center
	}
	if opts.Compare {
		compare(order, centers)
	}
	return benchTable(xSpec, opts, order, centers, units), nil
}

// compare divides each center by the center of the first series at the
// same x and unit. Cells with no baseline, and the baseline itself, are
// dropped.
func compare(order []*benchGroup, centers map[*benchGroup]float64) {
	type baseKey struct {
		x    benchproc.Key
		unit string
	}
	base := make(map[baseKey]float64)
	first := order[0].series
	for _, g := range order {
		if g.series == first {
			base[baseKey{g.x, g.unit}] = centers[g]
		}
	}
	for _, g := range order {
		b, ok := base[baseKey{g.x, g.unit}]
		if !ok || b == 0 || g.series == first {
			delete(centers, g)
			continue
		}
		centers[g] /= b
	}
}

// benchTable lays out one row per (x, series) and one column per unit.
func benchTable(xSpec string, opts BenchOptions, order []*benchGroup, centers map[*benchGroup]float64, units []string) *table.Table {
	t := &table.Table{}
	t.Columns = append(t.Columns, table.Column{Name: xSpec, Type: table.TypeString, Visible: true, Groupable: opts.Series != ""})
	nKeys := 1
	if opts.Series != "" {
		t.Columns = append(t.Columns, table.Column{Name: opts.Series, Type: table.TypeString, Visible: true, Groupable: true})
		nKeys = 2
	}
	typ := table.TypeQuantity
	if opts.Compare {
		typ = table.TypeRatio
	}
	unitCol := make(map[string]int)
	for _, u := range units {
		unitCol[u] = len(t.Columns)
		name := u
		if opts.Compare {
			name = u + " ratio"
		}
		t.Columns = append(t.Columns, table.Column{Name: name, Type: typ, Visible: true, AggType: "avg"})
	}

	type rowKey struct{ x, series benchproc.Key }
	rows := make(map[rowKey]int)
	for _, g := range order {
		v, ok := centers[g]
		if !ok {
			continue
		}
		k := rowKey{g.x, g.series}
		i, ok := rows[k]
		if !ok {
			i = len(t.Rows)
			rows[k] = i
			row := make(table.Row, len(t.Columns))
			row[0] = g.x.StringValues()
			if nKeys == 2 {
				row[1] = g.series.StringValues()
			}
			t.Rows = append(t.Rows, row)
		}
		t.Rows[i][unitCol[g.unit]] = v
	}
	return t
}
