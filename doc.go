/*
Package outfit computes preliminary orbits for solar system objects
from short arcs of angle-only astrometric observations.

Input is a set of trajectories, each a time-ordered sequence of
observations of one object: right ascension, declination, epoch and
per-coordinate uncertainty, tied to an observing site.  Output is, per
object, a best preliminary orbit in Keplerian, equinoctial or cometary
elements together with the rms of its angular residuals, or a reason
the object could not be solved.

Algorithm outline

1.  For each trajectory, candidate observation triplets are enumerated
under time-window constraints and ranked by how evenly and how widely
they sample the arc.

2.  Each retained triplet is fanned out into a number of noise
realizations: the nominal astrometry plus normal draws scaled by the
reported uncertainties.  This Monte-Carlo resampling makes the result
robust to individual bad measurements.

3.  For each realization the classical method of Gauss reduces the
three lines of sight to a degree-8 polynomial in the central
heliocentric distance.  All roots are found simultaneously with the
Aberth-Ehrlich iteration; real roots in a physical distance range each
yield a candidate orbit.

4.  Candidate velocities are first approximated by truncated f and g
series, then refined by iterating the exact universal-variable
Lagrange coefficients, solving the universal Kepler equation at each
step and correcting the observation times for light travel.

5.  Candidates with runaway eccentricity, absurd perihelion distance
or a topocentric distance inside the telescope are discarded.  The
survivors are scored by propagating the orbit to every observation in
an evaluation window around the triplet and computing the rms of the
angular residuals.  The lowest rms wins.

Batches run either sequentially or on a worker pool.  Per-trajectory
random substreams are derived from the batch seed with SplitMix64 over
the sorted object ids, so a fixed seed gives bit-identical results in
both modes.  Cancellation through the context is cooperative at
trajectory granularity and returns the outcomes committed so far.

The command line program is in the gaussiod directory.  Observations
in the MPC 80 column format are ingested through package mpcingest,
observatory positions come from an MPC obscode.dat file, and solar
positions from a built-in analytic ephemeris.

Public domain.
*/
package outfit
