package bls

import (
	"context"
	"fmt"
)

// PolicyKind selects how the frequency bin axis is treated.
type PolicyKind int

const (
	// PolicyInteractive asks a BandSelector for the band to sum over.
	PolicyInteractive PolicyKind = iota
	// PolicyFull keeps every bin.
	PolicyFull
	// PolicyRange sums over a band given by exact bin frequencies.
	PolicyRange
)

// Policy is a frequency selection policy. The zero value is Interactive.
type Policy struct {
	Kind PolicyKind
	Low  float64
	High float64
}

// Interactive returns the policy that lets the user choose the band.
func Interactive() Policy { return Policy{Kind: PolicyInteractive} }

// Full returns the policy that keeps every frequency bin.
func Full() Policy { return Policy{Kind: PolicyFull} }

// ExplicitRange returns the policy that sums the bins from low to high. Both
// values must equal bin axis samples exactly.
func ExplicitRange(low, high float64) Policy {
	return Policy{Kind: PolicyRange, Low: low, High: high}
}

// ParsePolicy builds a policy from its name: "interactive", "full" or "range".
func ParsePolicy(name string, low, high float64) (Policy, error) {
	switch name {
	case "interactive", "choose":
		return Interactive(), nil
	case "full", "all":
		return Full(), nil
	case "range":
		return ExplicitRange(low, high), nil
	}
	return Policy{}, fmt.Errorf("unknown policy %q", name)
}

func (p Policy) String() string {
	switch p.Kind {
	case PolicyInteractive:
		return "interactive"
	case PolicyFull:
		return "full"
	case PolicyRange:
		return fmt.Sprintf("range[%g, %g]", p.Low, p.High)
	}
	return fmt.Sprintf("PolicyKind(%d)", int(p.Kind))
}

// Band is a frequency band chosen on the bin axis. Both ends are included.
type Band struct {
	LowIndex  int
	HighIndex int
	Low       float64
	High      float64
}

// BandSelector lets a user pick a band on a spectrum. intensity is the
// spectrum summed over all samples and axis the matching bin frequencies.
// Implementations block until the user confirms and return
// ErrSelectionCancelled when the dialog is dismissed.
type BandSelector interface {
	SelectRange(ctx context.Context, intensity, axis []float64) (Band, error)
}
