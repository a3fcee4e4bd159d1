/*
Command gaussiod determines preliminary orbits from files of MPC-format
astrometric observations.

Input is a file of 80 column MPC-format observations, sorted first by
designation and then by time of observation, with at least three
observations per object.  Output is one line per object: either the
best preliminary orbit with the rms of its angular residuals in arc
seconds, or the reason no orbit could be determined.

Usage:

  Usage: gaussiod [options] <obsfile>   Determine orbits from file.
         gaussiod [options] -           Determine orbits from stdin.
         gaussiod -v                    Display version and copyright.

  Options:
       -c <config-file>
       -o <obscode-file>
       -s <seed>
       -p

Observatory positions are read from an MPC obscode.dat file, by default
from the working directory.  If the file is missing a copy is
downloaded from the Minor Planet Center.

The -s option fixes the batch random seed.  Two runs with the same seed,
observations and configuration produce identical output, in sequential
and in parallel mode alike.  Without -s the Monte-Carlo resampling is
seeded from the clock.

The -p option distributes trajectories across a worker pool.

The optional YAML configuration file adjusts the estimation parameters,
per-site astrometric accuracies, the ephemeris backend and logging.
All settings are optional.  Example:

  logging:
    level: debug
  ephemeris: meeus
  accuracy:
    defaultArcsec: 1.0
    siteArcsec:
      F51: 0.3
      703: 1.0
  iod:
    noiseRealizations: 30
    maxTriplets: 12
    parallel: true
    workers: 8

An interrupt (control-C) stops the run at the next trajectory boundary
and prints the results determined so far.

Public domain.
*/
package main
