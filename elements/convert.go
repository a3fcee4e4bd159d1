// Public domain.

package elements

import (
	"errors"
	"math"
)

// ErrParabolic is returned by conversions undefined at e = 1.
var ErrParabolic = errors.New("elements: conversion undefined for parabolic orbit")

// anomaly solver tolerances.  Kepler's equation converges quadratically
// under Newton here, so the caps are generous.
const (
	anomalyEps   = 1e-13
	anomalyMaxIt = 60
)

// Equinoctial converts Keplerian elements to the equinoctial set.
func (k Keplerian) Equinoctial() Equinoctial {
	lonPeri := k.Node + k.Peri
	th := math.Tan(k.I / 2)
	sn, cn := math.Sincos(k.Node)
	sl, cl := math.Sincos(lonPeri)
	return Equinoctial{
		Epoch:  k.Epoch,
		A:      k.A,
		H:      k.E * sl,
		K:      k.E * cl,
		P:      th * sn,
		Q:      th * cn,
		Lambda: mod2pi(lonPeri + k.M),
	}
}

// Keplerian converts equinoctial elements back to the Keplerian set.
func (q Equinoctial) Keplerian() Keplerian {
	e := math.Hypot(q.H, q.K)
	i := 2 * math.Atan(math.Hypot(q.P, q.Q))
	var node, lonPeri float64
	if q.P != 0 || q.Q != 0 {
		node = math.Atan2(q.P, q.Q)
	}
	if q.H != 0 || q.K != 0 {
		lonPeri = math.Atan2(q.H, q.K)
	}
	return Keplerian{
		Epoch: q.Epoch,
		A:     q.A,
		E:     e,
		I:     i,
		Node:  mod2pi(node),
		Peri:  mod2pi(lonPeri - node),
		M:     mod2pi(q.Lambda - lonPeri),
	}
}

// Cometary converts Keplerian elements to the cometary set.  The true
// anomaly is recovered from the mean anomaly through Kepler's equation.
func (k Keplerian) Cometary() Cometary {
	return Cometary{
		Epoch: k.Epoch,
		PeriQ: k.A * (1 - k.E),
		E:     k.E,
		I:     k.I,
		Node:  k.Node,
		Peri:  k.Peri,
		Nu:    trueFromMean(k.M, k.E),
	}
}

// Keplerian converts cometary elements to the Keplerian set.
// ErrParabolic for e = 1, where a and M are undefined.
func (c Cometary) Keplerian() (Keplerian, error) {
	if c.E == 1 {
		return Keplerian{}, ErrParabolic
	}
	return Keplerian{
		Epoch: c.Epoch,
		A:     c.PeriQ / (1 - c.E),
		E:     c.E,
		I:     c.I,
		Node:  c.Node,
		Peri:  c.Peri,
		M:     meanFromTrue(c.Nu, c.E),
	}, nil
}

// Equinoctial converts cometary elements to the equinoctial set, via
// Keplerian.  ErrParabolic for e = 1.
func (c Cometary) Equinoctial() (Equinoctial, error) {
	k, err := c.Keplerian()
	if err != nil {
		return Equinoctial{}, err
	}
	return k.Equinoctial(), nil
}

// trueFromMean solves Kepler's equation for the given mean anomaly and
// returns the true anomaly.  For e >= 1 the hyperbolic equation is used.
func trueFromMean(m, e float64) float64 {
	if e < 1 {
		ea := eccentricFromMean(m, e)
		s, c := math.Sincos(ea)
		return math.Atan2(math.Sqrt(1-e*e)*s, c-e)
	}
	h := hyperbolicFromMean(m, e)
	return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(h/2))
}

// meanFromTrue is the inverse of trueFromMean.
func meanFromTrue(nu, e float64) float64 {
	if e < 1 {
		ea := 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(nu/2))
		return mod2pi(ea - e*math.Sin(ea))
	}
	h := 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(nu/2))
	return e*math.Sinh(h) - h
}

// eccentricFromMean, Newton iteration on Kepler's equation, elliptic case.
func eccentricFromMean(m, e float64) float64 {
	m = mod2pi(m)
	ea := m
	if e > .8 {
		ea = math.Pi
	}
	for i := 0; i < anomalyMaxIt; i++ {
		d := (ea - e*math.Sin(ea) - m) / (1 - e*math.Cos(ea))
		ea -= d
		if math.Abs(d) < anomalyEps {
			break
		}
	}
	return ea
}

// hyperbolicFromMean, Newton iteration on the hyperbolic Kepler equation.
func hyperbolicFromMean(m, e float64) float64 {
	h := math.Asinh(m / e)
	for i := 0; i < anomalyMaxIt; i++ {
		d := (e*math.Sinh(h) - h - m) / (e*math.Cosh(h) - 1)
		h -= d
		if math.Abs(d) < anomalyEps {
			break
		}
	}
	return h
}

func mod2pi(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x
}
