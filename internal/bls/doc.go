// Package bls reads Brillouin Light Scattering measurement files.
//
// A measurement file has two top-level groups. "scan_definition" holds one
// key/value table per scan parameter; the cell at row 1, column 1 of each
// table carries a tag such as "Acquire spectrum" or "ScanDimension_1" that
// gives the entry its meaning. "measurement" holds, under the same entry
// identifier, the recorded "data" matrix (samples × frequency bins) and its
// "scale" (bin origin, bin increment).
//
// A File locates the spectrum record by tag, rebuilds the axes implied by the
// scan definitions and reduces the intensity matrix according to a Policy:
//
//	f, err := bls.Open("scan.h5", bls.WithSelector(sel))
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	res, err := f.LineScan(ctx, 5.0, bls.ExplicitRange(0.10, 0.20))
package bls
