// Package aeff computes the effective collection area of an imaging
// air-Cherenkov telescope as a function of energy and zenith distance.
//
// The effective area in a (zenith, energy) bin is the ratio of analyzed
// Monte-Carlo events surviving the event selection to the number of thrown
// simulation events in that bin, scaled by the area over which the
// simulation throws photons.  Event files are read through go-hep, count
// matrices are gonum matrices, and results are cached on disk as .npy
// arrays.
package aeff
