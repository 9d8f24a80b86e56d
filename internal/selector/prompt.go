package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/GIGAluckman/blsdata/internal/bls"
)

// Prompt lets an operator narrow the band from a terminal. Each round the
// spectrum is re-rendered to PlotPath (when set) and one command is read:
//
//	<low> <high>  move the band, snapping each bound to the nearest bin
//	y <max>       change the plot's y ceiling
//	ok            accept the current band
//	q             cancel
type Prompt struct {
	In       io.Reader
	Out      io.Writer
	PlotPath string
	Log      zerolog.Logger
}

var _ bls.BandSelector = (*Prompt)(nil)

func (p *Prompt) SelectRange(ctx context.Context, intensity, axis []float64) (bls.Band, error) {
	if len(axis) == 0 {
		return bls.Band{}, errors.New("empty bin axis")
	}
	band := bandOf(axis, 0, len(axis)-1)

	ymax := 1.0
	if len(intensity) > 0 {
		if m := floats.Max(intensity); m > 0 {
			ymax = m * 1.05
		}
	}

	sc := bufio.NewScanner(p.In)
	for {
		if err := ctx.Err(); err != nil {
			return bls.Band{}, err
		}

		if p.PlotPath != "" {
			if err := RenderSpectrum(p.PlotPath, axis, intensity, band, ymax); err != nil {
				p.Log.Warn().Err(err).Str("path", p.PlotPath).Msg("Could not render spectrum")
			} else {
				fmt.Fprintf(p.Out, "Spectrum written to %s\n", p.PlotPath)
			}
		}
		fmt.Fprintf(p.Out, "Band %g to %g GHz (bins %d-%d). Enter \"<low> <high>\", \"y <max>\", \"ok\" or \"q\": ",
			band.Low, band.High, band.LowIndex, band.HighIndex)

		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return bls.Band{}, fmt.Errorf("failed to read selection: %w", err)
			}
			return bls.Band{}, bls.ErrSelectionCancelled
		}

		fields := strings.Fields(sc.Text())
		switch {
		case len(fields) == 1 && strings.EqualFold(fields[0], "ok"):
			p.Log.Debug().Float64("low", band.Low).Float64("high", band.High).Msg("Band accepted")
			return band, nil

		case len(fields) == 1 && (fields[0] == "q" || fields[0] == "quit"):
			return bls.Band{}, bls.ErrSelectionCancelled

		case len(fields) == 2 && fields[0] == "y":
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || v <= 0 {
				fmt.Fprintln(p.Out, "y ceiling must be a positive number")
				continue
			}
			ymax = v

		case len(fields) == 2:
			lo, err1 := strconv.ParseFloat(fields[0], 64)
			hi, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				fmt.Fprintln(p.Out, "bounds must be numbers")
				continue
			}
			band = bandOf(axis, nearest(axis, lo), nearest(axis, hi))

		default:
			fmt.Fprintln(p.Out, "unrecognised input")
		}
	}
}

// nearest returns the index of the axis sample closest to v.
func nearest(axis []float64, v float64) int {
	best, dist := 0, math.Inf(1)
	for i, x := range axis {
		if d := math.Abs(x - v); d < dist {
			best, dist = i, d
		}
	}
	return best
}
