// Public domain.

package iod

import (
	"fmt"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/elements"
)

// Stage tells how far the Gauss solution got.
type Stage int

const (
	// PrelimOrbit is the f-and-g series solution, returned when the
	// velocity refinement did not converge.
	PrelimOrbit Stage = iota
	// CorrectedOrbit includes the converged universal-variable
	// refinement with light-time correction.
	CorrectedOrbit
)

func (s Stage) String() string {
	if s == CorrectedOrbit {
		return "corrected"
	}
	return "preliminary"
}

// GaussResult is the chosen best candidate orbit for one trajectory.
type GaussResult struct {
	Stage    Stage
	Elements elements.Elements

	// RMS is the root-mean-square angular residual of the accepted
	// candidate against the observations in its evaluation window,
	// radians.
	RMS float64

	// Root is the accepted root of the distance polynomial: the
	// heliocentric distance at the central epoch, AU.  Rho2 is the
	// matching topocentric distance.
	Root float64
	Rho2 float64

	// State vectors at the (light-time corrected) central epoch.
	Epoch    float64
	Pos, Vel coord.Cart
}

func (g GaussResult) String() string {
	return fmt.Sprintf("%s %v rms %.3g rad", g.Stage, g.Elements, g.RMS)
}
