// Command blsdata extracts counts from a BLS measurement file and prints the
// reshaped result as JSON.
//
//	blsdata scan.h5 --geometry line-scan --length 20 --policy range --low 4.5 --high 6
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/GIGAluckman/blsdata/internal/bls"
	"github.com/GIGAluckman/blsdata/internal/config"
	"github.com/GIGAluckman/blsdata/internal/processing"
	"github.com/GIGAluckman/blsdata/internal/selector"
	"github.com/GIGAluckman/blsdata/pkg/models"
)

type options struct {
	file     string
	geometry string
	policy   string
	low      float64
	high     float64
	length   float64
	length2  float64
	pretty   bool
	fs       *pflag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := pflag.NewFlagSet("blsdata", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: blsdata <file.h5> [flags]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVarP(&o.geometry, "geometry", "g", string(models.GeometryRFSweep), "rf-sweep, field-sweep, line-scan or map-2d")
	fs.StringVarP(&o.policy, "policy", "p", "interactive", "interactive, full or range")
	fs.Float64Var(&o.low, "low", 0, "lower band frequency in GHz (range policy)")
	fs.Float64Var(&o.high, "high", 0, "upper band frequency in GHz (range policy)")
	fs.Float64Var(&o.length, "length", 0, "physical length of the first scan axis")
	fs.Float64Var(&o.length2, "length2", 0, "physical length of the second scan axis")
	fs.BoolVar(&o.pretty, "pretty", false, "indent the JSON output")
	fs.String("plot", "", "where the interactive spectrum plot is written")
	fs.String("current-tag", "", "marker text of the field sweep current entry")
	fs.String("log-level", "", "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errors.New("exactly one measurement file is required")
	}
	o.file = fs.Arg(0)
	o.fs = fs

	if o.policy == "range" && !(fs.Changed("low") && fs.Changed("high")) {
		return nil, errors.New("--low and --high are required with --policy range")
	}
	return &o, nil
}

// measurement describes the file on the command line the way the catalog
// describes a stored one.
func (o *options) measurement() (*models.Measurement, error) {
	m := &models.Measurement{
		ID:       filepath.Base(o.file),
		Name:     o.file,
		Geometry: models.Geometry(o.geometry),
		FileKey:  o.file,
	}
	if !m.Geometry.Valid() {
		return nil, fmt.Errorf("unknown geometry %q", o.geometry)
	}
	if o.fs.Changed("length") {
		m.Length1 = &o.length
	}
	if o.fs.Changed("length2") {
		m.Length2 = &o.length2
	}
	return m, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(o.fs)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(cfg.LogLevel).With().Timestamp().Logger()

	m, err := o.measurement()
	if err != nil {
		return err
	}
	policy, err := bls.ParsePolicy(o.policy, o.low, o.high)
	if err != nil {
		return err
	}

	prompt := &selector.Prompt{In: stdin, Out: stderr, PlotPath: cfg.BLS.PlotPath, Log: logger}
	f, err := bls.Open(o.file,
		bls.WithLogger(logger),
		bls.WithCurrentTag(cfg.BLS.CurrentTag),
		bls.WithSelector(prompt),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := processing.Run(ctx, f, m, policy)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, pflag.ErrHelp):
	case errors.Is(err, bls.ErrSelectionCancelled):
		fmt.Fprintln(os.Stderr, "blsdata: selection cancelled")
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "blsdata: %v\n", err)
		os.Exit(1)
	}
}
