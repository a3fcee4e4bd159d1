// Public domain.

package iodsolver

import (
	"math"
	"math/cmplx"
)

// polyRoots finds all complex roots of the real polynomial
// c[0] + c[1]x + ... + c[n]xⁿ by Aberth–Ehrlich simultaneous iteration.
//
// Starting points sit on a circle of the Cauchy bound radius, offset off
// the real axis so conjugate pairs cannot lock the iteration.  Iteration
// stops when every correction step is below eps or after maxIter
// passes; whatever the approximations are at that point is returned, so
// the caller's acceptance filters see a full set either way.
func polyRoots(c []float64, maxIter int, eps float64) []complex128 {
	n := len(c) - 1

	// Cauchy bound on root magnitude
	var bound float64
	for i := 0; i < n; i++ {
		if a := math.Abs(c[i] / c[n]); a > bound {
			bound = a
		}
	}
	r := 1 + bound

	z := make([]complex128, n)
	for k := range z {
		th := 2*math.Pi*float64(k)/float64(n) + math.Pi/(2*float64(n))
		z[k] = cmplx.Rect(r, th)
	}

	for it := 0; it < maxIter; it++ {
		var maxStep float64
		for k := range z {
			p, dp := hornerD(c, z[k])
			if cmplx.Abs(p) == 0 {
				continue
			}
			if dp == 0 {
				// landed on a critical point; nudge off and retry
				// next pass
				z[k] += complex(eps, eps)
				maxStep = math.Inf(1)
				continue
			}
			ratio := p / dp
			var sum complex128
			for j := range z {
				if j != k {
					sum += 1 / (z[k] - z[j])
				}
			}
			w := ratio / (1 - ratio*sum)
			z[k] -= w
			if s := cmplx.Abs(w); s > maxStep {
				maxStep = s
			}
		}
		if maxStep < eps {
			break
		}
	}
	return z
}

// hornerD evaluates the polynomial and its derivative at z.
func hornerD(c []float64, z complex128) (p, dp complex128) {
	for i := len(c) - 1; i >= 0; i-- {
		dp = dp*z + p
		p = p*z + complex(c[i], 0)
	}
	return
}
