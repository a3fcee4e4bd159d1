// Public domain.

package iod

import "errors"

// Per-trajectory failure taxonomy.  All of these are recorded in the
// batch failure map and never abort a run.  Wrapped failures unwrap to
// these sentinels, so callers can errors.Is against them.
var (
	// ErrNoFeasibleTriplets: fewer than 3 observations, or no triplet
	// satisfies the time-span constraints.
	ErrNoFeasibleTriplets = errors.New("no feasible triplets")

	// ErrNonFiniteScore: a polynomial coefficient, root or residual
	// became NaN or Inf during solving.
	ErrNonFiniteScore = errors.New("non-finite value during solving")

	// ErrNoPlausibleCandidate: every candidate orbit was rejected by the
	// geometric or physical filters.
	ErrNoPlausibleCandidate = errors.New("no plausible candidate orbit")

	// ErrNoObservationsInWindow: the rms evaluation window was empty for
	// every candidate, leaving only infinite scores.
	ErrNoObservationsInWindow = errors.New("no observations in rms window")
)
