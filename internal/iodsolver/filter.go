// Public domain.

package iodsolver

// plausible rejects candidate orbits that cannot correspond to a real
// solar-system object: runaway eccentricity, perihelion far beyond any
// observed population, or a topocentric distance inside the telescope.
func (e *estimation) plausible(c *candidate) bool {
	p := e.s.p
	switch {
	case c.ecc > p.MaxEcc:
		return false
	case c.perihelion > p.MaxPerihelionAU:
		return false
	case c.rho2 < p.MinRho2AU:
		return false
	}
	return true
}
