// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Querychart lays out a chart of a table and writes it as SVG, or as the
// computed scales and geometry in JSON or YAML.
//
// Usage:
//
//	querychart [flags] input
//
// The input format is chosen by extension: .csv, .xlsx, .json, .yaml or
// Go benchmark output (.bench, .txt, or - for standard input).
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/querychart/internal/plot"
	"github.com/aclements/querychart/internal/source"
	"github.com/aclements/querychart/internal/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// options is the command configuration, from flags and the config file.
type options struct {
	Chart struct {
		Type    string   `mapstructure:"type"`
		Width   float64  `mapstructure:"width"`
		Height  float64  `mapstructure:"height"`
		X       string   `mapstructure:"x"`
		Legend  string   `mapstructure:"legend"`
		Hide    []string `mapstructure:"hide"`
		Scaled  bool     `mapstructure:"scaled"`
		Average bool     `mapstructure:"average"`
		Titles  []string `mapstructure:"titles"`
	} `mapstructure:"chart"`
	DataFormatting plot.DataFormatting `mapstructure:"dataFormatting"`
	Source         struct {
		Sheet     string   `mapstructure:"sheet"`
		Groupable []string `mapstructure:"groupable"`
	} `mapstructure:"source"`
	Bench struct {
		Filter  string   `mapstructure:"filter"`
		X       string   `mapstructure:"x"`
		Series  string   `mapstructure:"series"`
		Units   []string `mapstructure:"units"`
		Compare bool     `mapstructure:"compare"`
	} `mapstructure:"bench"`
	Output struct {
		Format string `mapstructure:"format"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"output"`
	LogLevel string `mapstructure:"logLevel"`
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "querychart [flags] input",
		Short: "Lay out a chart of a table",
		Long: `Querychart classifies the columns of a table, derives scales, fits the
margins to the measured tick labels and writes the chart geometry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config: %w", err)
				}
			}
			var opts options
			if err := v.Unmarshal(&opts); err != nil {
				return fmt.Errorf("decoding config: %w", err)
			}
			return querychart(cmd.OutOrStdout(), args[0], &opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&cfgFile, "config", "", "read settings from YAML `file`")

	fl.String("type", string(plot.ChartColumn), "chart `type`")
	fl.Float64("width", 600, "chart width in pixels")
	fl.Float64("height", 400, "chart height in pixels")
	fl.String("x", "", "`column` (name or index) for the categorical axis")
	fl.String("legend", "", "second categorical `column` to draw as series")
	fl.StringSlice("hide", nil, "hide the series of the named `columns`")
	fl.Bool("scaled", false, "zoom the measure axis to the data instead of including zero")
	fl.Bool("average", false, "draw the average of the series")
	fl.StringSlice("title", nil, "override an axis title, as `axis=title` (axes x, y, y2)")

	fl.String("currency", "USD", "ISO 4217 currency `code` for DOLLAR_AMT columns")
	fl.String("language", "en-US", "BCP 47 language `tag` for number formatting")
	fl.String("number-format", "", `"full" to disable compact numbers`)
	fl.String("date-format", "", "Go time `layout` for date labels")

	fl.String("sheet", "", "XLSX `sheet` to read")
	fl.StringSlice("groupable", nil, "mark the named `columns` as keys of pre-aggregated rows")

	fl.String("bench-filter", "*", "use only benchmarks matching benchfilter `query`")
	fl.String("bench-x", ".fullname", "benchmark `projection` for the categorical axis")
	fl.String("bench-series", "", "benchmark `projection` to draw as series")
	fl.StringSlice("bench-unit", nil, "benchmark `units` to show")
	fl.Bool("compare", false, "normalize benchmark values to the first series")

	fl.String("format", "svg", "output `format`: svg, json or yaml")
	fl.StringP("out", "o", "", "write output to `file` instead of standard output")
	fl.String("log-level", "warn", "log `level`: debug, info, warn or error")

	for key, flag := range map[string]string{
		"chart.type":                  "type",
		"chart.width":                 "width",
		"chart.height":                "height",
		"chart.x":                     "x",
		"chart.legend":                "legend",
		"chart.hide":                  "hide",
		"chart.scaled":                "scaled",
		"chart.average":               "average",
		"chart.titles":                "title",
		"dataFormatting.currencyCode": "currency",
		"dataFormatting.languageCode": "language",
		"dataFormatting.numberFormat": "number-format",
		"dataFormatting.dateFormat":   "date-format",
		"source.sheet":                "sheet",
		"source.groupable":            "groupable",
		"bench.filter":                "bench-filter",
		"bench.x":                     "bench-x",
		"bench.series":                "bench-series",
		"bench.units":                 "bench-unit",
		"bench.compare":               "compare",
		"output.format":               "format",
		"output.path":                 "out",
		"logLevel":                    "log-level",
	} {
		_ = v.BindPFlag(key, fl.Lookup(flag))
	}
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zap.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("bad log level %q: %w", level, err)
		}
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func querychart(w io.Writer, input string, opts *options) error {
	log, err := newLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tbl, err := readInput(input, opts, log)
	if err != nil {
		return err
	}

	cfg := plot.NewConfig()
	cfg.Logger = log
	if cfg.ChartType, err = plot.ParseChartType(opts.Chart.Type); err != nil {
		return err
	}
	if opts.Chart.Width > 0 {
		cfg.Width = opts.Chart.Width
	}
	if opts.Chart.Height > 0 {
		cfg.Height = opts.Chart.Height
	}
	cfg.DataFormatting = opts.DataFormatting
	cfg.Scaled = opts.Chart.Scaled
	cfg.ShowAverage = opts.Chart.Average
	if opts.Chart.X != "" {
		if cfg.StringColumnIndex, err = columnIndex(tbl, opts.Chart.X); err != nil {
			return fmt.Errorf("--x: %w", err)
		}
	}
	if opts.Chart.Legend != "" {
		if cfg.LegendColumnIndex, err = columnIndex(tbl, opts.Chart.Legend); err != nil {
			return fmt.Errorf("--legend: %w", err)
		}
	}
	for _, t := range opts.Chart.Titles {
		name, title, ok := strings.Cut(t, "=")
		axis, known := plot.AxisFromName(name)
		if !ok || !known {
			return fmt.Errorf("bad axis title %q, want axis=title", t)
		}
		cfg.SetAxisTitle(axis, title)
	}

	chart, err := plot.NewChart(tbl, cfg)
	if err != nil {
		return err
	}
	for _, name := range opts.Chart.Hide {
		col, err := columnIndex(chart.Table(), name)
		if err != nil {
			return fmt.Errorf("--hide: %w", err)
		}
		cfg.SetSeriesHidden(col, true)
	}

	r, err := chart.Render(plot.BasicMeasurer{})
	if err != nil {
		return err
	}

	if opts.Output.Path == "" {
		return writeRendered(w, r, opts.Output.Format)
	}
	f, err := os.Create(opts.Output.Path)
	if err != nil {
		return err
	}
	if err := writeRendered(f, r, opts.Output.Format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeRendered(w io.Writer, r *plot.Rendered, format string) error {
	var err error
	switch format {
	case "", "svg":
		err = r.SVG(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(r)
		if err == nil {
			err = enc.Close()
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	return nil
}

func readInput(input string, opts *options, log *zap.Logger) (*table.Table, error) {
	format := source.FormatBench
	if input != "-" {
		f, err := source.FormatOf(input)
		if err != nil {
			return nil, err
		}
		format = f
	}
	if format == source.FormatBench {
		return source.ReadBenchFiles([]string{input}, source.BenchOptions{
			Filter:  opts.Bench.Filter,
			X:       opts.Bench.X,
			Series:  opts.Bench.Series,
			Units:   opts.Bench.Units,
			Compare: opts.Bench.Compare,
			Logger:  log,
		})
	}
	return source.Load(input, &source.Options{
		Sheet:     opts.Source.Sheet,
		Groupable: opts.Source.Groupable,
		Logger:    log,
	})
}

// columnIndex resolves a column given by name, display name or index.
func columnIndex(t *table.Table, s string) (int, error) {
	if i := slices.IndexFunc(t.Columns, func(c table.Column) bool {
		return c.Name == s || c.DisplayName == s
	}); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("no column %q", s)
	}
	if _, err := t.Column(i); err != nil {
		return 0, err
	}
	return i, nil
}
