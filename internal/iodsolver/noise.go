// Public domain.

package iodsolver

// skyPos is one (possibly perturbed) angular position, radians.
type skyPos struct {
	ra, dec float64
}

// perturb returns the three angular positions of triplet tp for noise
// realization n.  Realization 0 is always the unperturbed nominal
// triplet, preserving a deterministic baseline candidate.  Higher
// realizations add independent Gaussian noise with std
// sigma × NoiseScale per coordinate.
func (e *estimation) perturb(tp triplet, n int) [3]skyPos {
	o := e.tr.Obs
	scale := e.s.p.NoiseScale
	var sky [3]skyPos
	for x, ix := range [3]int{tp.i, tp.j, tp.k} {
		m := o[ix]
		sky[x] = skyPos{ra: m.RA.Rad(), dec: m.Dec.Rad()}
		if n > 0 && scale > 0 {
			sky[x].ra += e.rnd.NormFloat64() * m.SigmaRA.Rad() * scale
			sky[x].dec += e.rnd.NormFloat64() * m.SigmaDec.Rad() * scale
		}
	}
	return sky
}
